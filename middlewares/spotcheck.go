package middlewares

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"tattler-go/onebot"
)

type spotCheckMiddleware struct {
	*MiddlewareContext
}

func NewSpotCheckMiddleware(base *MiddlewareContext) Middleware {
	return &spotCheckMiddleware{
		MiddlewareContext: base,
	}
}

func (s *spotCheckMiddleware) OnEvent(ctx context.Context, ev *onebot.Event) bool {
	fs := onebot.ToFlagSet(ev, "抽查")
	if fs == nil {
		return false
	}
	if !s.access.IsAdmin(strconv.FormatInt(ev.UserID(), 10)) {
		return false
	}
	if help := fs.Parse(); help != "" {
		s.reply(ctx, ev, help)
		return true
	}
	groupID, err := strconv.ParseInt(fs.Rest(), 10, 64)
	if err != nil {
		s.reply(ctx, ev, "用法: #抽查 <群号>")
		return true
	}
	if err := s.history.SpotCheck(ctx, groupID); err != nil {
		logger.Error("Spot check failed",
			slog.Int64("GroupId", groupID),
			slog.Any("error", err))
		s.reply(ctx, ev, fmt.Sprintf("抽查群(%d)消息失败: %v", groupID, err))
	}
	return true
}
