package widget

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"chat-widget/internal/domain"
	"chat-widget/internal/transport"
)

// ErrorText es el mensaje fijo que se muestra cuando falla un envio.
const ErrorText = "Error: Unable to get a response from the assistant."

var ErrWidgetNotConfigured = errors.New("chat widget not configured")

// Request es un envio pendiente: se arma en el loop de UI y viaja a Fetch.
type Request struct {
	Input    string
	Memory   domain.Memory
	TypingID string
}

// Result vuelve al loop de UI para aplicarse con Resolve.
type Result struct {
	Request Request
	Reply   transport.Reply
	Err     error
}

// Widget conecta la vista con el transporte y guarda la memoria.
// No es seguro para uso concurrente: Submit, Resolve y Clear deben
// llamarse desde el mismo loop. Fetch no toca estado.
type Widget struct {
	view      View
	transport transport.Transport
	logger    *zap.Logger
	memory    domain.Memory
	now       func() time.Time
}

func New(view View, tr transport.Transport, logger *zap.Logger) *Widget {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Widget{
		view:      view,
		transport: tr,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (w *Widget) Memory() domain.Memory { return w.memory }

// Submit aplica la parte sincrona de un envio. Devuelve false si el texto
// queda vacio tras recortar; en ese caso no toca la vista.
func (w *Widget) Submit(raw string) (Request, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Request{}, false
	}

	w.view.AppendMessage(domain.Message{
		ID:        uuid.NewString(),
		Author:    domain.AuthorUser,
		Text:      text,
		CreatedAt: w.now(),
	})
	w.view.ClearInput()

	req := Request{Input: text, Memory: w.memory, TypingID: uuid.NewString()}
	w.view.ShowTyping(req.TypingID)
	w.view.ScrollToBottom()
	return req, true
}

// Fetch hace la unica llamada de red del envio.
func (w *Widget) Fetch(ctx context.Context, req Request) Result {
	if w.transport == nil {
		return Result{Request: req, Err: ErrWidgetNotConfigured}
	}
	reply, err := w.transport.Send(ctx, req.Input, req.Memory)
	return Result{Request: req, Reply: reply, Err: err}
}

// Resolve aplica la respuesta. En error la memoria no cambia.
func (w *Widget) Resolve(res Result) {
	w.view.RemoveTyping(res.Request.TypingID)

	if res.Err != nil {
		w.logger.Error("Error: Unable to get a response from the assistant.", zap.Error(res.Err))
		w.view.AppendMessage(domain.Message{
			ID:        uuid.NewString(),
			Author:    domain.AuthorAssistant,
			Text:      ErrorText,
			Error:     true,
			CreatedAt: w.now(),
		})
		w.view.ScrollToBottom()
		return
	}

	w.view.AppendMessage(domain.Message{
		ID:        uuid.NewString(),
		Author:    domain.AuthorAssistant,
		Text:      res.Reply.Text,
		CreatedAt: w.now(),
	})
	w.memory = res.Reply.Memory
	w.view.ScrollToBottom()
}

// Send hace un envio completo de forma sincrona. Devuelve false si no hubo
// envio y el error del transporte si lo hubo.
func (w *Widget) Send(ctx context.Context, raw string) (bool, error) {
	req, ok := w.Submit(raw)
	if !ok {
		return false, nil
	}
	res := w.Fetch(ctx, req)
	w.Resolve(res)
	return true, res.Err
}

// Clear limpia la vista. La memoria se conserva.
func (w *Widget) Clear() {
	w.view.Clear()
}
