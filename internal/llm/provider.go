package llm

import "context"

// ChatCompleter define la interfaz para pedir una respuesta a un LLM a
// partir de una lista de mensajes y, opcionalmente, funciones disponibles.
type ChatCompleter interface {
	Complete(ctx context.Context, messages []Message, tools []Tool) (Completion, error)
}
