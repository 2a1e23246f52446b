package onebot

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"tattler-go/slogger"
)

var logger = slogger.New("onebot")

// A websocket client for the OneBot event stream
type WebSocketClient struct {
	Conn  *websocket.Conn
	Url   string
	token string
}

// NewWebSocket creates a new WebSocket client for the given event endpoint
func NewWebSocket(url string, token string) *WebSocketClient {
	return &WebSocketClient{
		Url:   url,
		token: token,
	}
}

// Connect connects to the websocket server
func (c *WebSocketClient) Connect() error {
	logger.Info("Connecting to event stream", slog.String("url", c.Url))
	header := http.Header{}
	if c.token != "" {
		header.Set("Authorization", "Bearer "+c.token)
	}
	conn, _, err := websocket.DefaultDialer.Dial(c.Url, header)
	if err != nil {
		return err
	}
	c.Conn = conn
	return nil
}

func (c *WebSocketClient) Close() {
	if c.Conn != nil {
		c.Conn.Close()
		c.Conn = nil
	}
}

func (c *WebSocketClient) Stop() {
	c.Close()
}

// Listen reads raw event payloads until the context is cancelled or the
// connection breaks. Payloads stay as bytes; event shapes are heterogeneous
// and get decoded lazily by Event accessors.
func (c *WebSocketClient) Listen(ctx context.Context) chan []byte {
	received := make(chan []byte, 10)
	// pin the connection, Close may nil out c.Conn concurrently
	conn := c.Conn
	go func() {
		defer close(received)
		if conn == nil {
			logger.Warn("Connection is nil, not listening")
			return
		}
		for {
			select {
			case <-ctx.Done():
				logger.Info("Context canceled, stopping listening")
				return
			default:
				_, data, err := conn.ReadMessage()
				if err != nil {
					logger.Error("Failed to read event", slog.Any("error", err))
					// a failed read leaves the connection unusable, the
					// owner decides whether to reconnect
					return
				}
				received <- data
			}
		}
	}()
	return received
}
