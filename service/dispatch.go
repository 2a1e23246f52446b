package service

import (
	"context"
	"log/slog"
	"strconv"

	"tattler-go/config"
	"tattler-go/onebot"
	"tattler-go/slogger"
)

var logger = slogger.New("service")

type sender interface {
	SendGroupMsg(ctx context.Context, groupID int64, text string) error
	SendPrivateMsg(ctx context.Context, userID int64, text string) error
	SendGroupForwardMsg(ctx context.Context, groupID int64, nodes []onebot.ForwardNode) error
	SendPrivateForwardMsg(ctx context.Context, userID int64, nodes []onebot.ForwardNode) error
}

// Dispatcher delivers supervisor messages. A configured manage group always
// takes priority; otherwise delivery fans out to the admin list one private
// message at a time, each recipient independent of the others. With neither
// configured, delivery is a silent no-op.
type Dispatcher struct {
	api         sender
	manageGroup int64
	admins      []string
}

func NewDispatcher(api sender, cfg *config.Config) *Dispatcher {
	return &Dispatcher{
		api:         api,
		manageGroup: cfg.Notice.ManageGroup,
		admins:      cfg.App.Admins,
	}
}

// SendText delivers one text message to the supervisor target.
func (d *Dispatcher) SendText(ctx context.Context, text string) error {
	if d.manageGroup > 0 {
		return d.api.SendGroupMsg(ctx, d.manageGroup, text)
	}
	for _, admin := range d.admins {
		userID, err := strconv.ParseInt(admin, 10, 64)
		if err != nil {
			continue
		}
		if err := d.api.SendPrivateMsg(ctx, userID, text); err != nil {
			logger.Warn("Failed to send alert to admin",
				slog.String("admin", admin),
				slog.Any("error", err))
		}
	}
	return nil
}

// SendForward delivers a forward bundle to the supervisor target.
func (d *Dispatcher) SendForward(ctx context.Context, nodes []onebot.ForwardNode) error {
	if d.manageGroup > 0 {
		return d.api.SendGroupForwardMsg(ctx, d.manageGroup, nodes)
	}
	for _, admin := range d.admins {
		userID, err := strconv.ParseInt(admin, 10, 64)
		if err != nil {
			continue
		}
		if err := d.api.SendPrivateForwardMsg(ctx, userID, nodes); err != nil {
			logger.Warn("Failed to forward messages to admin",
				slog.String("admin", admin),
				slog.Any("error", err))
		}
	}
	return nil
}
