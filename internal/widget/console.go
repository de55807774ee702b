package widget

import (
	"fmt"
	"io"

	"chat-widget/internal/domain"
)

// ConsoleView escribe el chat linea por linea. Scroll e input no aplican:
// la terminal ya avanza sola y la linea leida se descarta al enviarla.
type ConsoleView struct {
	out           io.Writer
	assistantName string
}

func NewConsoleView(out io.Writer, assistantName string) *ConsoleView {
	if assistantName == "" {
		assistantName = "Assistant"
	}
	return &ConsoleView{out: out, assistantName: assistantName}
}

// AppendMessage no reimprime al usuario: su linea ya quedo en pantalla.
func (v *ConsoleView) AppendMessage(msg domain.Message) {
	if msg.Author == domain.AuthorUser {
		return
	}
	if msg.Error {
		fmt.Fprintf(v.out, "! %s\n", msg.Text)
		return
	}
	fmt.Fprintf(v.out, "%s > %s\n", v.assistantName, msg.Text)
}

func (v *ConsoleView) ShowTyping(string) {
	fmt.Fprint(v.out, "...\n")
}

func (v *ConsoleView) RemoveTyping(string) {}
func (v *ConsoleView) ClearInput()         {}
func (v *ConsoleView) ScrollToBottom()     {}

func (v *ConsoleView) Clear() {
	// ANSI: limpia pantalla y vuelve el cursor al inicio.
	fmt.Fprint(v.out, "\033[H\033[2J")
}

// Prompt imprime el prompt de entrada.
func (v *ConsoleView) Prompt() {
	fmt.Fprint(v.out, "You > ")
}
