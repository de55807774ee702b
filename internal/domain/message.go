package domain

import "time"

type Author string

const (
	AuthorUser      Author = "user"
	AuthorAssistant Author = "assistant"
)

// Message es un mensaje renderizado en la vista; no se persiste.
type Message struct {
	ID        string
	Author    Author
	Text      string
	Error     bool // burbuja de error estatica
	CreatedAt time.Time
}
