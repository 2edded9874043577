package live

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait    = 5 * time.Second
	maxFrameSize = 4096
)

var ErrClosed = errors.New("live connection closed")

// Conn wraps a websocket for one dashboard session. A single goroutine reads;
// writes are serialized so the close path never interleaves with a frame.
type Conn struct {
	ws     *websocket.Conn
	mu     sync.Mutex
	closed bool
}

func NewConn(ws *websocket.Conn) *Conn {
	ws.SetReadLimit(maxFrameSize)
	return &Conn{ws: ws}
}

// Send writes v as one JSON text frame.
func (c *Conn) Send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}

	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("send failed: set deadline: %w", err)
	}
	if err := c.ws.WriteJSON(v); err != nil {
		return fmt.Errorf("send failed: %w", err)
	}
	return nil
}

// Receive blocks for the next JSON frame and decodes it into v.
func (c *Conn) Receive(v any) error {
	return c.ws.ReadJSON(v)
}

// Close sends a normal-closure frame and closes the socket. Safe to call twice.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	_ = c.ws.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait),
	)
	return c.ws.Close()
}

// IsDisconnect reports whether err means the peer went away rather than sent a bad frame.
func IsDisconnect(err error) bool {
	if err == nil {
		return false
	}
	var ce *websocket.CloseError
	if errors.As(err, &ce) {
		return true
	}
	return !isDecodeError(err)
}
