package live

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"time"

	"restodash/dashboard-svc/internal/domain"
	"restodash/dashboard-svc/internal/service"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var newline = []byte{'\n'}

// Client is one dashboard connection.
type Client struct {
	hub            *Hub
	conn           *websocket.Conn
	send           chan []byte
	OrganizationID int
	UserID         int

	watcher *ChatWatcher
	log     logrus.FieldLogger

	mu      sync.Mutex
	closed  bool
	watches map[int]context.CancelFunc
}

func NewClient(hub *Hub, conn *websocket.Conn, organizationID, userID int, watcher *ChatWatcher, log logrus.FieldLogger) *Client {
	return &Client{
		hub:            hub,
		conn:           conn,
		send:           make(chan []byte, 256),
		OrganizationID: organizationID,
		UserID:         userID,
		watcher:        watcher,
		log:            log.WithFields(logrus.Fields{"component": "ws", "user_id": userID}),
		watches:        map[int]context.CancelFunc{},
	}
}

// enqueue reports false when the client's buffer is full.
func (c *Client) enqueue(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return true
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	for id, cancel := range c.watches {
		cancel()
		delete(c.watches, id)
	}
	close(c.send)
}

func (c *Client) sendJSON(msgType string, payload any) {
	data, err := encode(msgType, payload)
	if err != nil {
		c.log.WithError(err).Warn("failed to encode message")
		return
	}
	if !c.enqueue(data) {
		c.log.Warn("send buffer full, dropping message")
	}
}

// Handle applies one dashboard command.
func (c *Client) Handle(ctx context.Context, raw []byte) {
	var cmd Command
	if err := json.Unmarshal(raw, &cmd); err != nil {
		c.sendJSON(TypeError, map[string]string{"message": "invalid command"})
		return
	}

	switch cmd.Type {
	case TypeWatchChat:
		if cmd.ChatID <= 0 {
			c.sendJSON(TypeError, map[string]string{"message": "chat_id is required"})
			return
		}
		c.watch(ctx, cmd.ChatID, cmd.AfterID)
		c.sendJSON(TypeSubscribed, map[string]int{"chat_id": cmd.ChatID})
	case TypeUnwatchChat:
		c.unwatch(cmd.ChatID)
	default:
		c.sendJSON(TypeError, map[string]string{"message": "unknown command " + cmd.Type})
	}
}

func (c *Client) watch(ctx context.Context, chatID, afterID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.watcher == nil {
		return
	}
	if cancel, ok := c.watches[chatID]; ok {
		cancel()
	}
	watchCtx, cancel := context.WithCancel(ctx)
	c.watches[chatID] = cancel

	go c.watcher.Run(watchCtx, chatID, afterID, func(messages []domain.ChatMessage) {
		c.sendJSON(TypeChatMessages, map[string]any{"chat_id": chatID, "messages": messages})
	})
}

func (c *Client) unwatch(chatID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cancel, ok := c.watches[chatID]; ok {
		cancel()
		delete(c.watches, chatID)
	}
}

// Watching reports the number of active chat watchers.
func (c *Client) Watching() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.watches)
}

func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.WithError(err).Info("websocket closed unexpectedly")
			}
			return
		}
		c.Handle(ctx, bytes.TrimSpace(raw))
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write(newline)
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Serve registers the client and runs its pumps until the connection closes.
func (c *Client) Serve(ctx context.Context) {
	c.hub.Register(c)
	go c.WritePump()
	c.ReadPump(ctx)
}

// ChatWatcher polls one chat for new messages on behalf of a dashboard.
type ChatWatcher struct {
	Source   service.MessageSource
	Interval time.Duration
	log      logrus.FieldLogger
}

func NewChatWatcher(source service.MessageSource, interval time.Duration, log logrus.FieldLogger) *ChatWatcher {
	return &ChatWatcher{Source: source, Interval: interval, log: log.WithField("component", "chat_watcher")}
}

// Run emits batches of messages newer than afterID until ctx is cancelled.
func (w *ChatWatcher) Run(ctx context.Context, chatID, afterID int, emit func([]domain.ChatMessage)) {
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	lastID := afterID
	for {
		messages, err := w.Source.ListChatMessages(ctx, chatID, lastID)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.log.WithError(err).WithField("chat_id", chatID).Warn("poll failed")
		}

		fresh := messages[:0:0]
		for _, m := range messages {
			if m.ID > lastID {
				fresh = append(fresh, m)
			}
		}
		if len(fresh) > 0 {
			for _, m := range fresh {
				if m.ID > lastID {
					lastID = m.ID
				}
			}
			emit(fresh)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
