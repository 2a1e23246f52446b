package middlewares

import (
	"context"
	"fmt"
	"log/slog"

	"tattler-go/config"
	"tattler-go/db"
	"tattler-go/onebot"
	"tattler-go/scheduler"
	"tattler-go/service"
	"tattler-go/slogger"
)

var logger = slogger.New("middlewares")

type Middleware interface {
	OnEvent(ctx context.Context, ev *onebot.Event) bool
	Start() error
	Stop() error
}

// replyAPI is the slice of the platform API that command middlewares need
// to answer the invoking user in place.
type replyAPI interface {
	SendGroupMsg(ctx context.Context, groupID int64, text string) error
	SendPrivateMsg(ctx context.Context, userID int64, text string) error
}

type MiddlewareContext struct {
	redis      *db.Redis
	cron       *scheduler.CronTask
	cfg        *config.Config
	access     *service.AccessService
	ctx        context.Context
	client     *onebot.Client
	api        replyAPI
	dispatcher *service.Dispatcher
	alerter    *service.Alerter
	history    *service.History
}

func NewMiddlewareContext(ctx context.Context, client *onebot.Client, api *onebot.API, cfg *config.Config, redis *db.Redis) *MiddlewareContext {
	cron := scheduler.NewCronTask(redis)
	access := service.NewAccessService(cfg.App.Admins)
	dispatcher := service.NewDispatcher(api, cfg)
	roster := service.NewRoster(api, redis)
	// init
	cron.Start()
	return &MiddlewareContext{
		redis:      redis,
		cron:       cron,
		cfg:        cfg,
		access:     access,
		ctx:        ctx,
		client:     client,
		api:        api,
		dispatcher: dispatcher,
		alerter:    service.NewAlerter(roster, dispatcher),
		history:    service.NewHistory(api, dispatcher, cfg.Notice.HistoryLimit),
	}
}

func (m *MiddlewareContext) Close() {
	m.cron.Stop()
}

func (m *MiddlewareContext) OnEvent(ctx context.Context, ev *onebot.Event) bool {
	return false
}

func (m *MiddlewareContext) Start() error {
	return nil
}

func (m *MiddlewareContext) Stop() error {
	return nil
}

// reply answers the invoker of a command event where it came from.
func (m *MiddlewareContext) reply(ctx context.Context, ev *onebot.Event, text string) {
	var err error
	if ev.IsGroup() {
		err = m.api.SendGroupMsg(ctx, ev.GroupID(), text)
	} else {
		err = m.api.SendPrivateMsg(ctx, ev.UserID(), text)
	}
	if err != nil {
		logger.Warn("Failed to reply", slog.Any("error", err))
	}
}

type RootMiddleware struct {
	*MiddlewareContext
	middlewares []Middleware
}

func NewRootMiddleware(
	mctx *MiddlewareContext,
) *RootMiddleware {
	return &RootMiddleware{
		MiddlewareContext: mctx,
	}
}

func (r *RootMiddleware) AddMiddlewares(middlewares ...func(m *MiddlewareContext) Middleware) {
	for _, mw := range middlewares {
		instance := mw(r.MiddlewareContext)
		if instance != nil {
			r.middlewares = append(r.middlewares, instance)
		}
	}
}

func (r *RootMiddleware) Start() error {
	for _, mw := range r.middlewares {
		if r.client != nil {
			r.client.AddEventHandler(mw.OnEvent)
		}
		if err := mw.Start(); err != nil {
			return err
		}
		logger.Info("Middleware started", slog.String("type", fmt.Sprintf("%T", mw)))
	}
	return nil
}

func (r *RootMiddleware) Stop() error {
	for _, mw := range r.middlewares {
		if err := mw.Stop(); err != nil {
			return err
		}
	}
	return nil
}
