package wscalc

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/zephyrtronium/scicalc"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("could not open websocket: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func roundTrip(t *testing.T, c *websocket.Conn, msg string) Response {
	t.Helper()
	if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
		t.Fatalf("could not send %q: %v", msg, err)
	}
	var resp Response
	if err := c.ReadJSON(&resp); err != nil {
		t.Fatalf("could not read reply to %q: %v", msg, err)
	}
	return resp
}

func TestSession(t *testing.T) {
	srv := httptest.NewServer(NewHandler())
	defer srv.Close()
	c := dial(t, srv)
	cases := []struct {
		msg  string
		want Response
	}{
		{`{"expr": "x = 2"}`, Response{Input: "x = 2", Result: "2"}},
		{`{"expr": "x*inf"}`, Response{Input: "x*inf", Result: "+Inf"}},
		{`{"expr": "y"}`, Response{Input: "y", Error: `undefined variable: "y"`, Kind: "Undefined variable"}},
		{`{"expr": "ans"}`, Response{Input: "ans", Result: "+Inf"}},
		{`{"expr": "nan"}`, Response{Input: "nan", Result: "NaN"}},
		{`{"expr": "x ="}`, Response{Input: "x =", Error: "4: no expression at end", Kind: "Syntax error"}},
		{`{"expr": "pi = 3"}`, Response{Input: "pi = 3", Error: `can't assign value to constant "pi"`, Kind: "Assignment error"}},
	}
	for _, tc := range cases {
		if got := roundTrip(t, c, tc.msg); got != tc.want {
			t.Errorf("%s: want %+v, got %+v", tc.msg, tc.want, got)
		}
	}
}

func TestSessionMalformed(t *testing.T) {
	srv := httptest.NewServer(NewHandler())
	defer srv.Close()
	c := dial(t, srv)
	for _, msg := range []string{`{`, `"1+1"`, `[]`} {
		resp := roundTrip(t, c, msg)
		if resp.Kind != ProtocolError || resp.Error == "" || resp.Result != "" {
			t.Errorf("%s: wrong response %+v", msg, resp)
		}
	}
	// The connection is still usable.
	if resp := roundTrip(t, c, `{"expr": "1+1"}`); resp.Result != "2" {
		t.Errorf("after malformed messages: %+v", resp)
	}
}

func TestSessionsIsolated(t *testing.T) {
	srv := httptest.NewServer(NewHandler(scicalc.SetVar("k", 5)))
	defer srv.Close()
	a, b := dial(t, srv), dial(t, srv)
	if resp := roundTrip(t, a, `{"expr": "k = k + 1"}`); resp.Result != "6" {
		t.Errorf("first session: %+v", resp)
	}
	if resp := roundTrip(t, b, `{"expr": "k"}`); resp.Result != "5" {
		t.Errorf("second session sees %+v", resp)
	}
	if resp := roundTrip(t, b, `{"expr": "ans"}`); resp.Result != "5" {
		t.Errorf("second session has ans %+v", resp)
	}
}

func TestHandlerFormat(t *testing.T) {
	h := NewHandler()
	h.Format = "%.3f"
	srv := httptest.NewServer(h)
	defer srv.Close()
	c := dial(t, srv)
	if resp := roundTrip(t, c, `{"expr": "pi"}`); resp.Result != "3.142" {
		t.Errorf("wrong formatted result %+v", resp)
	}
}
