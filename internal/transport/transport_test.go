package transport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"chat-widget/internal/config"
	"chat-widget/internal/domain"
)

func TestJSONTransportSend_Success(t *testing.T) {
	var gotBody map[string]json.RawMessage
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":"hola!","memory":[{"role":"assistant","content":"hola!"}]}`))
	}))
	defer srv.Close()

	tr := NewJSONTransport(srv.URL, srv.Client(), zap.NewNop())
	reply, err := tr.Send(context.Background(), "hola", domain.NewMemory(json.RawMessage(`[{"role":"user","content":"prev"}]`)))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gotContentType != "application/json" {
		t.Fatalf("expected json content type, got %q", gotContentType)
	}
	if string(gotBody["user_input"]) != `"hola"` {
		t.Fatalf("unexpected user_input: %s", gotBody["user_input"])
	}
	if string(gotBody["memory"]) != `[{"role":"user","content":"prev"}]` {
		t.Fatalf("memory not sent verbatim: %s", gotBody["memory"])
	}
	if _, ok := gotBody["mem_size"]; ok {
		t.Fatalf("mem_size should be omitted when zero")
	}
	if reply.Text != "hola!" {
		t.Fatalf("unexpected reply text %q", reply.Text)
	}
	if string(reply.Memory.Raw()) != `[{"role":"assistant","content":"hola!"}]` {
		t.Fatalf("unexpected reply memory %s", reply.Memory.Raw())
	}
}

func TestJSONTransportSend_SendsMemSize(t *testing.T) {
	var gotBody map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		_, _ = w.Write([]byte(`{"response":"ok","memory":[]}`))
	}))
	defer srv.Close()

	tr := NewJSONTransport(srv.URL, srv.Client(), nil)
	tr.MemSize = 20
	if _, err := tr.Send(context.Background(), "hola", domain.Memory{}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if string(gotBody["mem_size"]) != "20" {
		t.Fatalf("expected mem_size=20, got %s", gotBody["mem_size"])
	}
	if string(gotBody["memory"]) != "[]" {
		t.Fatalf("expected empty memory array, got %s", gotBody["memory"])
	}
}

func TestJSONTransportSend_ResendsReturnedMemory(t *testing.T) {
	cases := []struct {
		name       string
		firstReply string
		wantResent string
	}{
		{"memory omitted", `{"response":"uno"}`, `[]`},
		{"memory null", `{"response":"uno","memory":null}`, `null`},
		{"memory object", `{"response":"uno","memory":{"turn":1}}`, `{"turn":1}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var bodies []map[string]json.RawMessage
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var body map[string]json.RawMessage
				raw, _ := io.ReadAll(r.Body)
				_ = json.Unmarshal(raw, &body)
				bodies = append(bodies, body)
				if len(bodies) == 1 {
					_, _ = w.Write([]byte(c.firstReply))
					return
				}
				_, _ = w.Write([]byte(`{"response":"dos","memory":[]}`))
			}))
			defer srv.Close()

			tr := NewJSONTransport(srv.URL, srv.Client(), zap.NewNop())
			first, err := tr.Send(context.Background(), "hola", domain.Memory{})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if _, err := tr.Send(context.Background(), "otra", first.Memory); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(bodies) != 2 {
				t.Fatalf("expected 2 requests, got %d", len(bodies))
			}
			if got := string(bodies[1]["memory"]); got != c.wantResent {
				t.Fatalf("expected memory %s on the next request, got %s", c.wantResent, got)
			}
		})
	}
}

func TestJSONTransportSend_Errors(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":"boom"}`))
			},
		},
		{
			name: "invalid json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`<html>nope</html>`))
			},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			srv := httptest.NewServer(c.handler)
			defer srv.Close()

			tr := NewJSONTransport(srv.URL, srv.Client(), zap.NewNop())
			if _, err := tr.Send(context.Background(), "hola", domain.Memory{}); !errors.Is(err, ErrTransport) {
				t.Fatalf("expected ErrTransport, got %v", err)
			}
		})
	}
}

func TestJSONTransportSend_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	tr := NewJSONTransport(url, nil, nil)
	if _, err := tr.Send(context.Background(), "hola", domain.Memory{}); !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestLegacyTransportSend(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"response field", `{"response":"r1"}`, "r1"},
		{"ai_response field", `{"ai_response":"r2"}`, "r2"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var gotInput, gotContentType string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotContentType = r.Header.Get("Content-Type")
				_ = r.ParseForm()
				gotInput = r.PostForm.Get("user_input")
				_, _ = w.Write([]byte(c.body))
			}))
			defer srv.Close()

			mem := domain.NewMemory(json.RawMessage(`{"keep":true}`))
			tr := NewLegacyTransport(srv.URL, srv.Client(), zap.NewNop())
			reply, err := tr.Send(context.Background(), "que tal", mem)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if gotContentType != "application/x-www-form-urlencoded" {
				t.Fatalf("expected form content type, got %q", gotContentType)
			}
			if gotInput != "que tal" {
				t.Fatalf("unexpected user_input %q", gotInput)
			}
			if reply.Text != c.want {
				t.Fatalf("expected %q, got %q", c.want, reply.Text)
			}
			if !reply.Memory.Equal(mem) {
				t.Fatalf("expected memory echoed back, got %s", reply.Memory.Raw())
			}
		})
	}
}

func TestLegacyTransportSend_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	tr := NewLegacyTransport(srv.URL, srv.Client(), nil)
	if _, err := tr.Send(context.Background(), "hola", domain.Memory{}); !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestNewPicksImplementation(t *testing.T) {
	if _, ok := New(config.ClientConfig{Endpoint: "http://x/chat", MemSize: 7}, nil, nil).(*JSONTransport); !ok {
		t.Fatalf("expected JSONTransport by default")
	}
	jt := New(config.ClientConfig{Endpoint: "http://x/chat", MemSize: 7}, nil, nil).(*JSONTransport)
	if jt.MemSize != 7 {
		t.Fatalf("expected mem size carried over, got %d", jt.MemSize)
	}
	if _, ok := New(config.ClientConfig{Legacy: true, LegacyEndpoint: "http://x/legacy"}, nil, nil).(*LegacyTransport); !ok {
		t.Fatalf("expected LegacyTransport when legacy enabled")
	}
}
