package http

import (
	"context"
	"errors"
	"sync"
	"time"

	"paysplit/internal/core/scan"
)

var errAckTimeout = errors.New("camera did not start in time")

// wsCapture drives the browser camera over the socket
// Start asks the client to open the camera and waits for it to confirm or refuse
type wsCapture struct {
	conn       *wsConn
	ackTimeout time.Duration

	mu       sync.Mutex
	handlers scan.Handlers
	pending  chan error
}

func (c *wsCapture) Start(ctx context.Context, cfg scan.Config, h scan.Handlers) error {
	ack := make(chan error, 1)
	c.mu.Lock()
	c.handlers = h
	c.pending = ack
	c.mu.Unlock()

	if err := c.conn.send(serverMessage{Type: msgStart, Config: &cfg}); err != nil {
		c.clear()
		return err
	}

	select {
	case err := <-ack:
		if err != nil {
			c.clear()
		}
		return err
	case <-time.After(c.ackTimeout):
		c.clear()
		return errAckTimeout
	case <-c.conn.done:
		c.clear()
		return errConnClosed
	case <-ctx.Done():
		c.clear()
		return ctx.Err()
	}
}

func (c *wsCapture) Stop() error {
	c.clear()
	if err := c.conn.send(serverMessage{Type: msgStop}); err != nil && !errors.Is(err, errConnClosed) {
		return err
	}
	return nil
}

// acknowledge resolves a pending Start; nil err means the camera is running
func (c *wsCapture) acknowledge(err error) {
	c.mu.Lock()
	ack := c.pending
	c.pending = nil
	c.mu.Unlock()
	if ack != nil {
		ack <- err
	}
}

func (c *wsCapture) text(s string) {
	c.mu.Lock()
	h := c.handlers
	c.mu.Unlock()
	if h.OnText != nil {
		h.OnText(s)
	}
}

func (c *wsCapture) misread(err error) {
	c.mu.Lock()
	h := c.handlers
	c.mu.Unlock()
	if h.OnError != nil {
		h.OnError(err)
	}
}

func (c *wsCapture) clear() {
	c.mu.Lock()
	c.handlers = scan.Handlers{}
	c.pending = nil
	c.mu.Unlock()
}
