package middlewares

import (
	"context"
	"log/slog"

	"tattler-go/onebot"
)

type logMsgMiddleware struct {
	*MiddlewareContext
}

func NewLogMsgMiddleware(base *MiddlewareContext) Middleware {
	return &logMsgMiddleware{
		MiddlewareContext: base,
	}
}

func (l *logMsgMiddleware) OnEvent(ctx context.Context, ev *onebot.Event) bool {
	// heartbeats are noise
	if ev.PostType() == "meta_event" {
		return false
	}
	logger.Debug("Received event",
		slog.String("PostType", ev.PostType()),
		slog.String("NoticeType", ev.NoticeType()),
		slog.String("SubType", ev.SubType()),
		slog.Int64("GroupId", ev.GroupID()),
		slog.Int64("UserId", ev.UserID()),
	)
	return false
}
