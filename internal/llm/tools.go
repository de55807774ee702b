package llm

import (
	"encoding/json"

	"chat-widget/internal/domain"
)

const RoleTool = "tool"

// Message es un mensaje de chat completions. Ademas de role/content lleva
// los campos de tool calling, que nunca se guardan en la memoria del cliente.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	Name       string     `json:"name,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
}

// Tool es la definicion de una funcion que el modelo puede pedir.
type Tool struct {
	Type     string       `json:"type"`
	Function ToolFunction `json:"function"`
}

type ToolFunction struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters,omitempty"`
}

// ToolCall es un pedido del modelo para ejecutar una funcion.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Completion es el primer choice de la respuesta. Content vacio puede venir
// junto con ToolCalls.
type Completion struct {
	Content   string
	ToolCalls []ToolCall
}

// NewFunctionTool arma una Tool de tipo function.
func NewFunctionTool(name, description string, parameters json.RawMessage) Tool {
	return Tool{
		Type: "function",
		Function: ToolFunction{
			Name:        name,
			Description: description,
			Parameters:  parameters,
		},
	}
}

// FromMemory convierte la memoria del servidor en mensajes para el modelo.
func FromMemory(entries []domain.MemoryEntry) []Message {
	out := make([]Message, 0, len(entries))
	for _, e := range entries {
		out = append(out, Message{Role: e.Role, Content: e.Content})
	}
	return out
}
