package middlewares

import (
	"context"
	"log/slog"

	"tattler-go/notice"
	"tattler-go/onebot"
)

type noticeMiddleware struct {
	*MiddlewareContext
	toggles notice.Toggles
}

func NewNoticeMiddleware(base *MiddlewareContext) Middleware {
	return &noticeMiddleware{
		MiddlewareContext: base,
		toggles: notice.Toggles{
			Ban:    base.cfg.Notice.BanNotice,
			Admin:  base.cfg.Notice.AdminNotice,
			Member: base.cfg.Notice.MemberNotice,
		},
	}
}

func (n *noticeMiddleware) OnEvent(ctx context.Context, ev *onebot.Event) bool {
	nt := notice.Classify(ev, ev.SelfID(), n.toggles)
	if nt == nil {
		return false
	}
	if err := n.alerter.Report(ctx, nt); err != nil {
		logger.Error("Failed to report notice",
			slog.String("category", nt.Category.String()),
			slog.Int64("GroupId", nt.GroupID),
			slog.Any("error", err))
		return false
	}
	// The alert already went out; a failed spot check must not undo it.
	if err := n.history.SpotCheck(ctx, nt.GroupID); err != nil {
		logger.Warn("Failed to forward group history",
			slog.Int64("GroupId", nt.GroupID),
			slog.Any("error", err))
	}
	return true
}
