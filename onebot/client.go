package onebot

import (
	"context"
	"log/slog"
	"sync"
	"time"

	cfg "tattler-go/config"
)

// EventHandler consumes one event. Returning true marks the event as
// handled and stops propagation to the remaining handlers.
type EventHandler func(ctx context.Context, ev *Event) bool

// Client maintains the event stream connection and fans events out to the
// registered handlers in registration order.
type Client struct {
	ws       *WebSocketClient
	handlers []EventHandler
}

func NewClient(cfg *cfg.OneBotConfig) *Client {
	return &Client{
		ws: NewWebSocket(cfg.Server, cfg.Token),
	}
}

func (c *Client) AddEventHandler(handler EventHandler) {
	c.handlers = append(c.handlers, handler)
}

func (c *Client) Start(ctx context.Context) {
	ready := make(chan struct{})
	var readyOnce sync.Once
	go func() {
		for {
			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, exiting")
				c.ws.Close()
				// release Start even when no connection was ever made
				readyOnce.Do(func() { close(ready) })
				return
			case <-time.After(3 * time.Second):
				// Try to connect if not connected
				err := c.ws.Connect()
				if err != nil {
					logger.Error("Failed to connect to event stream", slog.Any("error", err))
					continue
				}
				readyOnce.Do(func() { close(ready) })
				logger.Info("Connected to event stream", slog.Any("url", c.ws.Url))
				// looping to listen
				listenCtx, cancel := context.WithCancel(ctx)
				for data := range c.ws.Listen(listenCtx) {
					ev := ParseEvent(data)
					if ev == nil {
						logger.Warn("Discarding malformed event payload")
						continue
					}
					for _, handler := range c.handlers {
						if handler(ctx, ev) {
							break
						}
					}
				}
				// If Listen returns, the connection is broken, so reconnect
				logger.Warn("Event stream connection lost, attempting to reconnect")
				cancel()
				c.ws.Close()
			}
		}
	}()
	<-ready
}

func (c *Client) Stop() {
	c.ws.Stop()
}
