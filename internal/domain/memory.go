package domain

import (
	"bytes"
	"encoding/json"
)

// Memory es el token de continuacion opaco que define el servidor.
// El cliente lo guarda y lo reenvia tal cual; nunca lo inspecciona.
type Memory struct {
	raw json.RawMessage
}

var emptyMemory = json.RawMessage(`[]`)

// NewMemory envuelve el valor crudo recibido del servidor.
func NewMemory(raw json.RawMessage) Memory {
	if raw == nil {
		return Memory{}
	}
	cp := make(json.RawMessage, len(raw))
	copy(cp, raw)
	return Memory{raw: cp}
}

// Raw devuelve el valor a reenviar. La memoria vacia se envia como [].
func (m Memory) Raw() json.RawMessage {
	if len(m.raw) == 0 {
		return emptyMemory
	}
	return m.raw
}

func (m Memory) IsZero() bool { return len(m.raw) == 0 }

func (m Memory) Equal(other Memory) bool {
	return bytes.Equal(m.Raw(), other.Raw())
}

func (m Memory) MarshalJSON() ([]byte, error) {
	return m.Raw(), nil
}

func (m *Memory) UnmarshalJSON(data []byte) error {
	*m = NewMemory(data)
	return nil
}

// MemoryEntry es como el servidor interpreta su propia memoria.
type MemoryEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
