package transport

import (
	"encoding/json"
	"net/url"
	"strings"

	"golang.org/x/net/websocket"
)

// Frame is the event envelope exchanged on the socket. The payload is the
// JSON-stringified message, mirroring the backend's event protocol:
// outbound "message"/"audio"/"image", inbound "response".
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Outbound and inbound event names.
const (
	EventMessage  = "message"
	EventAudio    = "audio"
	EventImage    = "image"
	EventResponse = "response"
)

// Conn is the minimal socket surface the adapter needs. The production
// implementation wraps a websocket connection; tests substitute a fake.
type Conn interface {
	ReadFrame() (Frame, error)
	WriteFrame(Frame) error
	Close() error
}

// Dialer opens a Conn to the endpoint. Swappable for tests.
type Dialer func(endpoint string) (Conn, error)

type wsConn struct {
	ws *websocket.Conn
}

func (c *wsConn) ReadFrame() (Frame, error) {
	var f Frame
	err := websocket.JSON.Receive(c.ws, &f)
	return f, err
}

func (c *wsConn) WriteFrame(f Frame) error {
	return websocket.JSON.Send(c.ws, f)
}

func (c *wsConn) Close() error {
	return c.ws.Close()
}

// DialWebsocket is the default Dialer, forcing a plain websocket transport.
func DialWebsocket(endpoint string) (Conn, error) {
	origin, err := originFor(endpoint)
	if err != nil {
		return nil, err
	}

	ws, err := websocket.Dial(endpoint, "", origin)
	if err != nil {
		return nil, err
	}
	return &wsConn{ws: ws}, nil
}

func originFor(endpoint string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", err
	}
	scheme := "http"
	if strings.EqualFold(u.Scheme, "wss") {
		scheme = "https"
	}
	return scheme + "://" + u.Host, nil
}
