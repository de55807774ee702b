package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"chat-widget/internal/llm"
)

// ToolFunc ejecuta una funcion pedida por el modelo. args son los argumentos
// JSON tal como los mando el modelo.
type ToolFunc func(ctx context.Context, args json.RawMessage) (string, error)

// ToolRegistry guarda las funciones que se ofrecen al modelo, en orden de
// registro.
type ToolRegistry struct {
	defs  []llm.Tool
	funcs map[string]ToolFunc
}

func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{funcs: map[string]ToolFunc{}}
}

// Register agrega o reemplaza una funcion.
func (r *ToolRegistry) Register(def llm.Tool, fn ToolFunc) {
	name := def.Function.Name
	if _, ok := r.funcs[name]; !ok {
		r.defs = append(r.defs, def)
	} else {
		for i := range r.defs {
			if r.defs[i].Function.Name == name {
				r.defs[i] = def
			}
		}
	}
	r.funcs[name] = fn
}

// Definitions devuelve nil si no hay funciones, asi el request no lleva tools.
func (r *ToolRegistry) Definitions() []llm.Tool {
	if r == nil || len(r.defs) == 0 {
		return nil
	}
	return append([]llm.Tool(nil), r.defs...)
}

// Call ejecuta el pedido y siempre devuelve un texto para el mensaje "tool":
// el modelo necesita una respuesta por cada tool_call_id, aun si fallo.
func (r *ToolRegistry) Call(ctx context.Context, call llm.ToolCall) string {
	name := call.Function.Name
	fn, ok := r.lookup(name)
	if !ok {
		return fmt.Sprintf("Function %s is not available.", name)
	}
	args := json.RawMessage(strings.TrimSpace(call.Function.Arguments))
	if len(args) == 0 {
		args = json.RawMessage(`{}`)
	}
	if !json.Valid(args) {
		return fmt.Sprintf("Invalid arguments for %s.", name)
	}
	out, err := fn(ctx, args)
	if err != nil {
		return fmt.Sprintf("Function %s failed: %v", name, err)
	}
	if out == "" {
		return "No response received from the function."
	}
	return out
}

func (r *ToolRegistry) lookup(name string) (ToolFunc, bool) {
	if r == nil {
		return nil, false
	}
	fn, ok := r.funcs[name]
	return fn, ok
}

const DateTimeToolName = "get_current_date_time"

// NewCoreTools registra las funciones que solo usan la maquina local.
// now y loc se inyectan para los tests; nil usa time.Now y time.Local.
func NewCoreTools(now func() time.Time, loc *time.Location) *ToolRegistry {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	r := NewToolRegistry()
	r.Register(
		llm.NewFunctionTool(DateTimeToolName, "Get the current date and time from the local machine.", nil),
		func(context.Context, json.RawMessage) (string, error) {
			t := now().In(loc)
			return "The current date and time is " + t.Format("January 02, 2006, 03:04 PM MST") + ".", nil
		},
	)
	return r
}
