package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"chat-widget/internal/domain"
	"chat-widget/internal/llm"
)

// FallbackReply se usa cuando el modelo no devuelve contenido.
const FallbackReply = "I'm not sure how to respond to that."

var (
	ErrServiceNotConfigured = errors.New("conversation service not configured")
	ErrInvalidInput         = errors.New("user input is required")
	ErrInvalidMemory        = errors.New("memory must be a list of messages")
)

// ConversationOptions fija el prompt de sistema y los limites de la ventana.
type ConversationOptions struct {
	SystemPrompt      string
	MemSize           int
	ContextTokenLimit int
	// Tools se ofrecen al modelo en la primera llamada; nil desactiva la
	// ronda de funciones.
	Tools *ToolRegistry
}

// ConversationService arma la ventana de memoria, llama al LLM y devuelve
// la memoria actualizada. No guarda estado: la memoria viaja con el cliente.
type ConversationService struct {
	llm     llm.ChatCompleter
	counter TokenCounter
	opts    ConversationOptions
	logger  *zap.Logger
}

func NewConversationService(client llm.ChatCompleter, counter TokenCounter, opts ConversationOptions, logger *zap.Logger) *ConversationService {
	if counter == nil {
		counter = RuneCounter{}
	}
	if opts.MemSize <= 0 {
		opts.MemSize = 200
	}
	if opts.ContextTokenLimit <= 0 {
		opts.ContextTokenLimit = 128000
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConversationService{
		llm:     client,
		counter: counter,
		opts:    opts,
		logger:  logger,
	}
}

// Tools lista las funciones que se ofrecen al modelo.
func (s *ConversationService) Tools() []domain.ToolInfo {
	if s == nil {
		return []domain.ToolInfo{}
	}
	defs := s.opts.Tools.Definitions()
	out := make([]domain.ToolInfo, 0, len(defs))
	for _, d := range defs {
		out = append(out, domain.ToolInfo{Name: d.Function.Name, Description: d.Function.Description})
	}
	return out
}

// DecodeMemory interpreta la memoria que mando el cliente. Vacia o null
// equivale a una conversacion nueva.
func DecodeMemory(m domain.Memory) ([]domain.MemoryEntry, error) {
	if m.IsZero() {
		return nil, nil
	}
	raw := strings.TrimSpace(string(m.Raw()))
	if raw == "" || raw == "null" {
		return nil, nil
	}
	var entries []domain.MemoryEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMemory, err)
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return entries, nil
}

// EncodeMemory empaqueta la memoria para devolverla al cliente.
func EncodeMemory(entries []domain.MemoryEntry) (domain.Memory, error) {
	if entries == nil {
		entries = []domain.MemoryEntry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return domain.Memory{}, fmt.Errorf("encode memory: %w", err)
	}
	return domain.NewMemory(raw), nil
}

// Reply agrega el mensaje del usuario a la memoria, recorta lo mas viejo si
// se pasa del limite de tokens y manda los ultimos memSize mensajes al LLM.
// memSize <= 0 usa el valor configurado.
func (s *ConversationService) Reply(ctx context.Context, userInput string, memory []domain.MemoryEntry, memSize int) (string, []domain.MemoryEntry, error) {
	if s == nil || s.llm == nil {
		return "", nil, ErrServiceNotConfigured
	}
	userInput = strings.TrimSpace(userInput)
	if userInput == "" {
		return "", nil, ErrInvalidInput
	}
	if memSize <= 0 {
		memSize = s.opts.MemSize
	}

	s.logger.Info("starting conversation", zap.Int("memory_len", len(memory)), zap.Int("mem_size", memSize))

	mem := make([]domain.MemoryEntry, 0, len(memory)+2)
	if len(memory) == 0 {
		mem = append(mem, domain.MemoryEntry{Role: domain.RoleSystem, Content: s.opts.SystemPrompt})
	} else {
		mem = append(mem, memory...)
	}
	mem = append(mem, domain.MemoryEntry{Role: domain.RoleUser, Content: userInput})

	for len(mem) > 1 && s.counter.Count(joinContents(mem)) > s.opts.ContextTokenLimit {
		mem = mem[1:]
		s.logger.Debug("removed oldest message due to context limit")
	}

	window := mem
	if len(window) > memSize {
		window = window[len(window)-memSize:]
	}

	content, err := s.complete(ctx, userInput, window)
	if err != nil {
		return "", nil, err
	}
	if strings.TrimSpace(content) == "" {
		s.logger.Warn("expected content not available in response")
		content = FallbackReply
	}

	mem = append(mem, domain.MemoryEntry{Role: domain.RoleAssistant, Content: content})
	return content, mem, nil
}

// complete hace la llamada al modelo. Si el modelo pide funciones, las
// ejecuta y hace una segunda llamada con los resultados; esa segunda
// respuesta es la que se devuelve. Los mensajes de la ronda de funciones no
// entran en la memoria.
func (s *ConversationService) complete(ctx context.Context, userInput string, window []domain.MemoryEntry) (string, error) {
	msgs := llm.FromMemory(window)
	first, err := s.llm.Complete(ctx, msgs, s.opts.Tools.Definitions())
	if err != nil {
		return "", fmt.Errorf("llm complete: %w", err)
	}
	if len(first.ToolCalls) == 0 {
		return first.Content, nil
	}

	msgs = append(msgs, llm.Message{Role: domain.RoleAssistant, Content: first.Content, ToolCalls: first.ToolCalls})
	for _, call := range first.ToolCalls {
		result := s.opts.Tools.Call(ctx, call)
		s.logger.Info("tool call executed",
			zap.String("tool", call.Function.Name),
			zap.String("tool_call_id", call.ID),
		)
		msgs = append(msgs, llm.Message{
			Role:       llm.RoleTool,
			Name:       call.Function.Name,
			ToolCallID: call.ID,
			Content:    result,
		})
	}
	followUp := "Using the data received from the tool calls, answer the original request: " + strconv.Quote(userInput)
	msgs = append(msgs, llm.Message{Role: domain.RoleUser, Content: followUp})

	// Sin tools en la segunda llamada: una sola ronda por mensaje.
	second, err := s.llm.Complete(ctx, msgs, nil)
	if err != nil {
		return "", fmt.Errorf("llm complete after tools: %w", err)
	}
	if strings.TrimSpace(second.Content) == "" {
		return first.Content, nil
	}
	return second.Content, nil
}

func joinContents(entries []domain.MemoryEntry) string {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(e.Content)
		b.WriteString("\n")
	}
	return b.String()
}
