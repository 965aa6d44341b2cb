// Package transport owns the real-time connection to the chat backend.
package transport

import (
	"encoding/base64"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	apierrors "github.com/chattatrader/chattacli/internal/errors"
	"github.com/chattatrader/chattacli/internal/models"
)

// Reconnection policy: bounded attempts with a fixed delay, no backoff.
// Past the bound the adapter stays silently disconnected.
const (
	maxReconnectAttempts = 5
	reconnectDelay       = time.Second
)

// seenRingSize bounds the inbound de-duplication window. The underlying
// transport is at-least-once across reconnects, so recently seen message
// ids are dropped.
const seenRingSize = 128

// Adapter manages the socket lifecycle for one mounted chat view: dialed
// when the view opens, closed on every exit path. Inbound frames are
// parsed, de-duplicated and handed to the registered callback; malformed
// payloads are dropped and logged.
type Adapter struct {
	endpoint string
	dialer   Dialer
	log      zerolog.Logger

	mu      sync.Mutex
	conn    Conn
	handler func(models.Message)
	closed  bool

	seen    []string
	seenIdx int

	done chan struct{}
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithDialer substitutes the socket dialer. Used by tests.
func WithDialer(d Dialer) Option {
	return func(a *Adapter) { a.dialer = d }
}

// WithLogger sets the adapter's logger.
func WithLogger(log zerolog.Logger) Option {
	return func(a *Adapter) { a.log = log }
}

// Dial connects to the endpoint and starts the receive loop.
func Dial(endpoint string, opts ...Option) (*Adapter, error) {
	a := &Adapter{
		endpoint: endpoint,
		dialer:   DialWebsocket,
		log:      zerolog.Nop(),
		seen:     make([]string, 0, seenRingSize),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}

	conn, err := a.dialer(endpoint)
	if err != nil {
		return nil, apierrors.NewTransportError("dial", err.Error())
	}
	a.conn = conn
	a.log.Debug().Str("endpoint", endpoint).Msg("socket connected")

	go a.readLoop()
	return a, nil
}

// OnMessage registers the inbound message callback. Only one callback is
// active; registering replaces the previous one.
func (a *Adapter) OnMessage(fn func(models.Message)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.handler = fn
}

// Send transmits a message. Attachment payloads are base64-encoded into the
// wire content and routed to their kind's event; everything else goes out
// as a plain message event.
func (a *Adapter) Send(msg models.Message) error {
	a.mu.Lock()
	conn := a.conn
	a.mu.Unlock()

	if conn == nil {
		return apierrors.NewTransportError("send", "socket is not open")
	}

	event := EventMessage
	wire := msg
	if att := msg.Attachment; att != nil {
		switch att.Kind {
		case models.AttachmentAudio:
			event = EventAudio
		case models.AttachmentImage:
			event = EventImage
		}
		wire.Content = base64.StdEncoding.EncodeToString(att.Data)
		wire.Attachment = nil
	}

	payload, err := json.Marshal(wire)
	if err != nil {
		return apierrors.NewTransportError("send", err.Error())
	}
	// The backend expects the message JSON-stringified inside the frame.
	data, err := json.Marshal(string(payload))
	if err != nil {
		return apierrors.NewTransportError("send", err.Error())
	}

	if err := conn.WriteFrame(Frame{Event: event, Data: data}); err != nil {
		return apierrors.NewTransportError("send", err.Error())
	}
	return nil
}

// Connected reports whether the adapter currently holds a live connection.
func (a *Adapter) Connected() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.conn != nil && !a.closed
}

// Close tears the connection down. Safe to call on every exit path.
func (a *Adapter) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	conn := a.conn
	a.conn = nil
	a.mu.Unlock()

	var err error
	if conn != nil {
		err = conn.Close()
	}
	<-a.done
	a.log.Debug().Msg("socket closed")
	return err
}

func (a *Adapter) readLoop() {
	defer close(a.done)

	for {
		a.mu.Lock()
		conn := a.conn
		closed := a.closed
		a.mu.Unlock()

		if closed {
			return
		}
		if conn == nil {
			if !a.reconnect() {
				return
			}
			continue
		}

		frame, err := conn.ReadFrame()
		if err != nil {
			a.mu.Lock()
			closed = a.closed
			if a.conn == conn {
				a.conn = nil
			}
			a.mu.Unlock()
			if closed {
				return
			}
			a.log.Warn().Err(err).Msg("socket read failed")
			_ = conn.Close()
			continue
		}

		a.dispatch(frame)
	}
}

// reconnect redials up to the attempt bound. Returns false when the bound
// is exhausted or the adapter was closed meanwhile.
func (a *Adapter) reconnect() bool {
	for attempt := 1; attempt <= maxReconnectAttempts; attempt++ {
		time.Sleep(reconnectDelay)

		a.mu.Lock()
		if a.closed {
			a.mu.Unlock()
			return false
		}
		a.mu.Unlock()

		conn, err := a.dialer(a.endpoint)
		if err != nil {
			a.log.Warn().Err(err).Int("attempt", attempt).Msg("reconnect failed")
			continue
		}

		a.mu.Lock()
		if a.closed {
			a.mu.Unlock()
			_ = conn.Close()
			return false
		}
		a.conn = conn
		a.mu.Unlock()
		a.log.Info().Int("attempt", attempt).Msg("socket reconnected")
		return true
	}

	a.log.Error().Int("attempts", maxReconnectAttempts).Msg("reconnect attempts exhausted")
	return false
}

// dispatch parses a response frame and hands the message to the callback.
// Anything malformed is dropped here; nothing propagates past the adapter.
func (a *Adapter) dispatch(frame Frame) {
	if frame.Event != EventResponse {
		return
	}

	raw := []byte(frame.Data)
	// Payload may arrive JSON-stringified like the outbound direction.
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			a.log.Warn().Err(err).Msg("dropping malformed response payload")
			return
		}
		raw = []byte(s)
	}

	if id := gjson.GetBytes(raw, "id").String(); id != "" && a.alreadySeen(id) {
		a.log.Debug().Str("id", id).Msg("dropping duplicate message")
		return
	}

	msg, err := models.DecodeMessage(raw)
	if err != nil {
		a.log.Warn().Err(err).Msg("dropping malformed response payload")
		return
	}

	a.mu.Lock()
	handler := a.handler
	a.mu.Unlock()
	if handler != nil {
		handler(msg)
	}
}

// alreadySeen records the id and reports whether it was in the window.
func (a *Adapter) alreadySeen(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, seen := range a.seen {
		if seen == id {
			return true
		}
	}
	if len(a.seen) < seenRingSize {
		a.seen = append(a.seen, id)
	} else {
		a.seen[a.seenIdx] = id
		a.seenIdx = (a.seenIdx + 1) % seenRingSize
	}
	return false
}
