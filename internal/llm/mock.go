package llm

import "context"

// MockClient permite tests sin llamar a un LLM real. Si Script tiene
// respuestas se consumen en orden; despues se usa Response.
type MockClient struct {
	Response string
	Err      error
	Script   []Completion

	Calls     int
	LastSent  []Message
	LastTools []Tool
	Sent      [][]Message
}

func (m *MockClient) Complete(_ context.Context, messages []Message, tools []Tool) (Completion, error) {
	m.Calls++
	m.LastSent = append([]Message(nil), messages...)
	m.LastTools = tools
	m.Sent = append(m.Sent, m.LastSent)
	if m.Err != nil {
		return Completion{}, m.Err
	}
	if len(m.Script) > 0 {
		next := m.Script[0]
		m.Script = m.Script[1:]
		return next, nil
	}
	return Completion{Content: m.Response}, nil
}
