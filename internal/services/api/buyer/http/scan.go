package http

import (
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"sync"
	"time"

	"paysplit/internal/core/descriptor"
	"paysplit/internal/core/scan"
	perr "paysplit/internal/platform/errors"
	"paysplit/internal/platform/logger"
	"paysplit/internal/services/api/buyer/domain"

	"github.com/gorilla/websocket"
)

// client to server
const (
	msgFrame    = "frame"    // decoded QR text from the camera
	msgMisread  = "error"    // camera side scan error, never fatal
	msgStarted  = "started"  // camera is running
	msgDenied   = "denied"   // camera could not be opened
	msgReset    = "reset"    // scan again
	msgQuantity = "quantity" // raw quantity input
)

// both directions
const (
	msgStart = "start"
	msgStop  = "stop"
)

// server to client
const (
	msgState    = "state"
	msgDecoded  = "decoded"
	msgRejected = "rejected"
	msgTotals   = "totals"
	msgFailed   = "failed"
)

const maxClientMessageBytes = 64 << 10

var errConnClosed = errors.New("scan connection closed")

type clientMessage struct {
	Type    string `json:"type"`
	Text    string `json:"text,omitempty"`
	Message string `json:"message,omitempty"`
	Value   string `json:"value,omitempty"`
}

type serverMessage struct {
	Type       string                 `json:"type"`
	SessionID  string                 `json:"sessionId,omitempty"`
	State      string                 `json:"state,omitempty"`
	Status     string                 `json:"status,omitempty"`
	Config     *scan.Config           `json:"config,omitempty"`
	Error      *perr.Wire             `json:"error,omitempty"`
	Descriptor *descriptor.Descriptor `json:"descriptor,omitempty"`
	Totals     *descriptor.Totals     `json:"totals,omitempty"`
	Frames     int                    `json:"frames,omitempty"`
}

// wsConn serialises writes; gorilla allows one concurrent writer
type wsConn struct {
	ws           *websocket.Conn
	writeTimeout time.Duration

	mu     sync.Mutex
	closed bool
	done   chan struct{}
	once   sync.Once
}

func (c *wsConn) send(m serverMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errConnClosed
	}
	_ = c.ws.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	return c.ws.WriteJSON(m)
}

func (c *wsConn) ping() error {
	return c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(c.writeTimeout))
}

func (c *wsConn) close() {
	c.once.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()
		close(c.done)
		_ = c.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
		_ = c.ws.Close()
	})
}

func wireOf(err error) *perr.Wire {
	if err == nil {
		return nil
	}
	w := perr.WireFrom(err)
	return &w
}

type scanHandler struct {
	svc      domain.ServicePort
	opts     domain.ScanOptions
	upgrader websocket.Upgrader
}

func newScanHandler(s domain.ServicePort) *scanHandler {
	o := s.ScanOptions()
	h := &scanHandler{
		svc:  s,
		opts: o,
		upgrader: websocket.Upgrader{
			HandshakeTimeout: 10 * time.Second,
			ReadBufferSize:   4096,
			WriteBufferSize:  4096,
		},
	}
	if len(o.AllowedOrigins) > 0 {
		h.upgrader.CheckOrigin = originChecker(o.AllowedOrigins)
	}
	return h
}

func originChecker(allowed []string) func(*stdhttp.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	return func(r *stdhttp.Request) bool {
		if _, ok := set["*"]; ok {
			return true
		}
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}

// swagger:route GET /buyer/scan Buyer buyerScan
// @Summary Live QR scan session over a websocket
// @Description Client messages: start, started, denied, frame, error, stop, reset, quantity.
// @Description Server messages: state, start, stop, decoded, rejected, totals, failed.
// @Tags Buyer
// @Success 101 "switching protocols"
// @Router /buyer/scan [get]
func (h *scanHandler) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already replied with an http error
		logger.C(r.Context()).Warn().Err(err).Msg("scan upgrade failed")
		return
	}

	conn := &wsConn{ws: ws, writeTimeout: h.opts.WriteTimeout, done: make(chan struct{})}
	sc := &scanConn{
		conn:     conn,
		capture:  &wsCapture{conn: conn, ackTimeout: h.opts.AckTimeout},
		opts:     h.opts,
		log:      logger.C(r.Context()),
		quantity: 1,
	}
	sc.sess = h.svc.NewSession(sc.capture, scan.Observer{OnChange: sc.changed, OnFrame: sc.frameSeen})

	// the session outlives the upgrade request deadline and ends with the socket
	ctx, cancel := context.WithCancel(context.WithoutCancel(r.Context()))
	defer sc.wg.Wait()
	defer sc.sess.Close()
	defer cancel()
	defer conn.close()
	sc.serve(ctx)
}

// scanConn is one socket bound to one scan session
type scanConn struct {
	conn    *wsConn
	capture *wsCapture
	sess    *scan.Session
	opts    domain.ScanOptions
	log     *logger.Logger
	wg      sync.WaitGroup

	mu       sync.Mutex
	quantity int
}

func (sc *scanConn) serve(ctx context.Context) {
	ws := sc.conn.ws
	ws.SetReadLimit(maxClientMessageBytes)
	_ = ws.SetReadDeadline(time.Now().Add(sc.opts.ReadTimeout))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(sc.opts.ReadTimeout))
	})

	sc.wg.Add(1)
	go sc.pingLoop()

	cfg := sc.sess.Config()
	_ = sc.conn.send(serverMessage{
		Type:      msgState,
		SessionID: sc.sess.ID(),
		State:     scan.StateIdle.String(),
		Status:    scan.StatusPending.String(),
		Config:    &cfg,
	})
	sc.log.Info().Str("session_id", sc.sess.ID()).Msg("scan socket opened")

	for {
		_, raw, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				sc.log.Debug().Err(err).Msg("scan socket closed unexpectedly")
			}
			return
		}
		_ = ws.SetReadDeadline(time.Now().Add(sc.opts.ReadTimeout))

		var m clientMessage
		if err := json.Unmarshal(raw, &m); err != nil {
			sc.fail(perr.Wrap(err, perr.ErrorCodeJSON, "message is not valid JSON"))
			continue
		}
		sc.handle(ctx, m)
	}
}

func (sc *scanConn) handle(ctx context.Context, m clientMessage) {
	switch m.Type {
	case msgStart:
		// Start blocks until the client acknowledges, which arrives on this read loop
		sc.wg.Add(1)
		go func() {
			defer sc.wg.Done()
			if err := sc.sess.Start(ctx); err != nil && !perr.IsCode(err, perr.ErrorCodeCaptureUnavailable) {
				sc.fail(err)
			}
		}()
	case msgStarted:
		sc.capture.acknowledge(nil)
	case msgDenied:
		msg := m.Message
		if msg == "" {
			msg = "camera access denied"
		}
		sc.capture.acknowledge(errors.New(msg))
	case msgFrame:
		sc.capture.text(m.Text)
	case msgMisread:
		sc.capture.misread(errors.New(m.Message))
	case msgStop:
		sc.sess.Stop()
	case msgReset:
		sc.sess.Reset()
	case msgQuantity:
		sc.mu.Lock()
		sc.quantity = descriptor.ClampQuantity(m.Value, sc.quantity)
		q := sc.quantity
		sc.mu.Unlock()

		snap := sc.sess.Snapshot()
		if snap.Result.Status != scan.StatusDecoded {
			return
		}
		if t, err := descriptor.Project(snap.Result.Descriptor, q); err == nil {
			_ = sc.conn.send(serverMessage{Type: msgTotals, SessionID: snap.ID, Totals: &t})
		}
	default:
		sc.fail(perr.InvalidInputf("unknown message type %q", m.Type))
	}
}

func (sc *scanConn) changed(snap scan.Snapshot) {
	_ = sc.conn.send(serverMessage{
		Type:      msgState,
		SessionID: snap.ID,
		State:     snap.State.String(),
		Status:    snap.Result.Status.String(),
		Error:     wireOf(snap.Result.Reason),
		Frames:    snap.Frames,
	})
	if snap.Result.Status != scan.StatusDecoded {
		return
	}

	sc.mu.Lock()
	q := sc.quantity
	sc.mu.Unlock()
	d := snap.Result.Descriptor
	msg := serverMessage{Type: msgDecoded, SessionID: snap.ID, Descriptor: &d}
	if t, err := descriptor.Project(d, q); err == nil {
		msg.Totals = &t
	}
	_ = sc.conn.send(msg)
}

func (sc *scanConn) frameSeen(err error) {
	if err == nil {
		return
	}
	_ = sc.conn.send(serverMessage{Type: msgRejected, SessionID: sc.sess.ID(), Error: wireOf(err)})
}

func (sc *scanConn) fail(err error) {
	_ = sc.conn.send(serverMessage{Type: msgFailed, SessionID: sc.sess.ID(), Error: wireOf(err)})
}

func (sc *scanConn) pingLoop() {
	defer sc.wg.Done()
	t := time.NewTicker(sc.opts.PingInterval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			if err := sc.conn.ping(); err != nil {
				return
			}
		case <-sc.conn.done:
			return
		}
	}
}
