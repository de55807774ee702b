package domain

import (
	"encoding/json"
	"testing"
)

func TestMemory_ZeroEncodesAsEmptyArray(t *testing.T) {
	var m Memory
	if !m.IsZero() {
		t.Fatalf("expected zero memory")
	}
	out, err := json.Marshal(ChatRequest{UserInput: "hola", Memory: m})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"user_input":"hola","memory":[]}` {
		t.Fatalf("unexpected body: %s", out)
	}
}

func TestMemory_RoundTripsVerbatim(t *testing.T) {
	body := `{"response":"hi","memory":[{"role":"user","content":"x","extra":{"k":1}}]}`
	var resp ChatResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := `[{"role":"user","content":"x","extra":{"k":1}}]`
	if string(resp.Memory.Raw()) != want {
		t.Fatalf("expected verbatim memory, got %s", resp.Memory.Raw())
	}

	out, err := json.Marshal(ChatRequest{UserInput: "again", Memory: resp.Memory})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"user_input":"again","memory":`+want+`}` {
		t.Fatalf("memory not resent verbatim: %s", out)
	}
}

func TestMemory_ObjectAndEqual(t *testing.T) {
	a := NewMemory(json.RawMessage(`{"turns":3}`))
	b := NewMemory(json.RawMessage(`{"turns":3}`))
	if !a.Equal(b) {
		t.Fatalf("expected equal memories")
	}
	if a.Equal(Memory{}) {
		t.Fatalf("expected object memory to differ from empty")
	}
	if !(Memory{}).Equal(NewMemory(json.RawMessage(`[]`))) {
		t.Fatalf("expected zero memory to equal []")
	}
}

func TestMemory_DoesNotAliasInput(t *testing.T) {
	raw := json.RawMessage(`[1]`)
	m := NewMemory(raw)
	raw[1] = '2'
	if string(m.Raw()) != `[1]` {
		t.Fatalf("memory aliased caller buffer: %s", m.Raw())
	}
}

func TestLegacyResponseText(t *testing.T) {
	cases := []struct {
		in   LegacyResponse
		want string
	}{
		{LegacyResponse{Response: "a"}, "a"},
		{LegacyResponse{AIResponse: "b"}, "b"},
		{LegacyResponse{Response: "a", AIResponse: "b"}, "a"},
		{LegacyResponse{}, ""},
	}
	for i, c := range cases {
		if got := c.in.Text(); got != c.want {
			t.Fatalf("case %d: expected %q, got %q", i, c.want, got)
		}
	}
}
