package widget

import "chat-widget/internal/domain"

// View abstrae las operaciones de interfaz que necesita el widget.
type View interface {
	AppendMessage(msg domain.Message)
	ShowTyping(id string)
	RemoveTyping(id string)
	ClearInput()
	ScrollToBottom()
	// Clear quita todos los mensajes e indicadores.
	Clear()
}
