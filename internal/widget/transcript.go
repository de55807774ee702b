package widget

import "chat-widget/internal/domain"

type ElementKind int

const (
	ElementMessage ElementKind = iota
	ElementTyping
)

// Element es un nodo de la lista renderizada.
type Element struct {
	Kind     ElementKind
	Message  domain.Message
	TypingID string
}

// Transcript es una View en memoria: lista ordenada de elementos, buffer de
// entrada y offset de scroll. La usa la TUI como modelo y los tests.
type Transcript struct {
	elements []Element
	input    string
	offset   int
	changes  int
}

func NewTranscript() *Transcript {
	return &Transcript{}
}

func (t *Transcript) AppendMessage(msg domain.Message) {
	t.elements = append(t.elements, Element{Kind: ElementMessage, Message: msg})
	t.changes++
}

func (t *Transcript) ShowTyping(id string) {
	t.elements = append(t.elements, Element{Kind: ElementTyping, TypingID: id})
	t.changes++
}

func (t *Transcript) RemoveTyping(id string) {
	for i, el := range t.elements {
		if el.Kind == ElementTyping && el.TypingID == id {
			t.elements = append(t.elements[:i], t.elements[i+1:]...)
			if t.offset > len(t.elements) {
				t.offset = len(t.elements)
			}
			t.changes++
			return
		}
	}
}

func (t *Transcript) ClearInput() {
	if t.input == "" {
		return
	}
	t.input = ""
	t.changes++
}

// ScrollToBottom lleva el offset al maximo (el ultimo elemento).
func (t *Transcript) ScrollToBottom() {
	t.offset = len(t.elements)
}

func (t *Transcript) Clear() {
	if len(t.elements) == 0 {
		return
	}
	t.elements = nil
	t.offset = 0
	t.changes++
}

func (t *Transcript) SetInput(s string) { t.input = s }
func (t *Transcript) Input() string     { return t.input }
func (t *Transcript) Offset() int       { return t.offset }
func (t *Transcript) AtBottom() bool    { return t.offset == len(t.elements) }

// Changes cuenta las mutaciones visibles; sirve para saber si re-renderizar.
func (t *Transcript) Changes() int { return t.changes }

func (t *Transcript) Elements() []Element {
	out := make([]Element, len(t.elements))
	copy(out, t.elements)
	return out
}

// Messages devuelve solo los mensajes, sin indicadores.
func (t *Transcript) Messages() []domain.Message {
	out := make([]domain.Message, 0, len(t.elements))
	for _, el := range t.elements {
		if el.Kind == ElementMessage {
			out = append(out, el.Message)
		}
	}
	return out
}

func (t *Transcript) Typing() bool {
	for _, el := range t.elements {
		if el.Kind == ElementTyping {
			return true
		}
	}
	return false
}
