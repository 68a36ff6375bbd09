// Package wscalc serves calculator sessions over websockets.
//
// Each connection gets its own evaluation context. A client sends text
// messages holding a JSON Request, and the server answers every message with
// one JSON Response.
package wscalc

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/krotik/common/logutil"

	"github.com/zephyrtronium/scicalc"
)

// ProtocolError is the error kind of responses to messages that are not
// valid requests.
const ProtocolError = "Protocol error"

// Request is a message from a client.
type Request struct {
	Expr string `json:"expr"`
}

// Response is the reply to one message. Result is formatted as a string
// because JSON has no representation for infinities or NaN values.
type Response struct {
	Input  string `json:"input"`
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
	Kind   string `json:"kind,omitempty"`
}

var upgrader = websocket.Upgrader{
	Subprotocols:    []string{"scicalc"},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Handler upgrades requests to websocket calculator sessions.
type Handler struct {
	// Format is the fmt verb for results.
	Format string
	// Log receives connection events. It may be nil.
	Log logutil.Logger

	opts []scicalc.ContextOption
}

// NewHandler creates a handler whose sessions use contexts created with opts.
func NewHandler(opts ...scicalc.ContextOption) *Handler {
	return &Handler{Format: "%g", opts: opts}
}

// ServeHTTP runs a session until the client disconnects.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error.
		h.info("upgrade from ", r.RemoteAddr, " failed: ", err)
		return
	}
	defer conn.Close()
	h.info("session opened for ", r.RemoteAddr)
	s := &session{conn: conn, ctx: scicalc.NewContext(h.opts...), format: h.Format}
	if err := s.run(); err != nil {
		h.info("session for ", r.RemoteAddr, " closed: ", err)
		return
	}
	h.info("session for ", r.RemoteAddr, " closed")
}

func (h *Handler) info(msg ...interface{}) {
	if h.Log != nil {
		h.Log.Info(msg...)
	}
}

type session struct {
	conn   *websocket.Conn
	ctx    *scicalc.Context
	format string
}

// run reads and answers messages until the connection fails. A normal
// closure returns nil.
func (s *session) run() error {
	for {
		req, fatal, err := s.read()
		if fatal {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}
		resp := Response{Input: req.Expr}
		if err != nil {
			resp.Error = err.Error()
			resp.Kind = ProtocolError
		} else {
			s.eval(&resp)
		}
		if err := s.write(&resp); err != nil {
			return err
		}
	}
}

// read reads one request. fatal reports whether the error came from the
// connection rather than the message.
func (s *session) read() (req Request, fatal bool, err error) {
	_, msg, err := s.conn.ReadMessage()
	if err != nil {
		return req, true, err
	}
	err = json.Unmarshal(msg, &req)
	return req, false, err
}

func (s *session) eval(resp *Response) {
	r, err := scicalc.Evaluate(resp.Input, s.ctx)
	if err != nil {
		resp.Error = err.Error()
		resp.Kind = scicalc.KindOf(err).String()
		return
	}
	format := s.format
	if format == "" {
		format = "%g"
	}
	resp.Result = fmt.Sprintf(format, r)
}

func (s *session) write(resp *Response) error {
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	s.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return s.conn.WriteMessage(websocket.TextMessage, b)
}
