package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"chat-widget/internal/domain"
	"chat-widget/internal/transport"
	"chat-widget/internal/widget"
)

const (
	headerHeight = 1
	footerHeight = 3
)

// Options configura el front end de terminal.
type Options struct {
	Title         string
	AssistantName string
	// Markdown activa el render con glamour de las respuestas.
	Markdown bool
}

// replyMsg trae el resultado de la llamada de red de vuelta al loop.
type replyMsg struct {
	result widget.Result
}

// Model es el modelo bubbletea del chat. Implementa widget.View sobre un
// Transcript y sincroniza el viewport cuando cambia.
type Model struct {
	ctx        context.Context
	opts       Options
	styles     Styles
	logger     *zap.Logger
	widget     *widget.Widget
	transcript *widget.Transcript

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer

	width    int
	height   int
	ready    bool
	pending  int
	rendered int
	scroll   bool
}

func NewModel(ctx context.Context, tr transport.Transport, logger *zap.Logger, opts Options) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Title == "" {
		opts.Title = "Chat"
	}
	if opts.AssistantName == "" {
		opts.AssistantName = "Assistant"
	}
	styles := DefaultStyles()

	ti := textinput.New()
	ti.Placeholder = "Type a message... (Enter to send, Ctrl+L to clear, Ctrl+C to exit)"
	ti.Focus()
	ti.Prompt = "> "
	ti.CharLimit = 4096
	ti.Width = 80
	ti.PromptStyle = styles.Prompt

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Typing

	vp := viewport.New(80, 20)
	vp.SetContent("")

	m := &Model{
		ctx:        ctx,
		opts:       opts,
		styles:     styles,
		logger:     logger,
		transcript: widget.NewTranscript(),
		input:      ti,
		viewport:   vp,
		spinner:    sp,
		rendered:   -1,
	}
	m.widget = widget.New(m, tr, logger)
	if opts.Markdown {
		m.renderer = newRenderer(80)
	}
	return m
}

func newRenderer(width int) *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	return r
}

// Widget expone el widget para quien necesite la memoria.
func (m *Model) Widget() *widget.Widget { return m.widget }

func (m *Model) Transcript() *widget.Transcript { return m.transcript }

// --- widget.View ---

func (m *Model) AppendMessage(msg domain.Message) { m.transcript.AppendMessage(msg) }
func (m *Model) ShowTyping(id string)             { m.transcript.ShowTyping(id) }
func (m *Model) RemoveTyping(id string)           { m.transcript.RemoveTyping(id) }

func (m *Model) ClearInput() {
	m.input.Reset()
	m.transcript.ClearInput()
}

func (m *Model) ScrollToBottom() {
	m.transcript.ScrollToBottom()
	m.scroll = true
}

func (m *Model) Clear() { m.transcript.Clear() }

// --- tea.Model ---

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyCtrlL:
			m.widget.Clear()
		case tea.KeyEnter:
			m.transcript.SetInput(m.input.Value())
			if req, ok := m.widget.Submit(m.input.Value()); ok {
				m.pending++
				cmds = append(cmds, m.fetch(req))
				if m.pending == 1 {
					cmds = append(cmds, m.spinner.Tick)
				}
			}
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			cmds = append(cmds, cmd)
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			m.transcript.SetInput(m.input.Value())
			cmds = append(cmds, cmd)
		}

	case replyMsg:
		m.widget.Resolve(msg.result)
		if m.pending > 0 {
			m.pending--
		}

	case spinner.TickMsg:
		if m.pending > 0 {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
			m.rendered = -1
		}

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.sync()
	return m, tea.Batch(cmds...)
}

func (m *Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	var b strings.Builder
	b.WriteString(m.styles.Header.Render(m.opts.Title))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("enter send • ctrl+l clear • pgup/pgdown scroll • ctrl+c quit"))
	return b.String()
}

// fetch corre fuera del loop; solo lee la Request.
func (m *Model) fetch(req widget.Request) tea.Cmd {
	w := m.widget
	ctx := m.ctx
	return func() tea.Msg {
		return replyMsg{result: w.Fetch(ctx, req)}
	}
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	vh := height - headerHeight - footerHeight
	if vh < 1 {
		vh = 1
	}
	if !m.ready {
		m.viewport = viewport.New(width, vh)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = vh
	}
	m.input.Width = width - len(m.input.Prompt) - 1
	if m.opts.Markdown {
		m.renderer = newRenderer(width - 4)
	}
	m.rendered = -1
	m.scroll = true
}

// sync re-renderiza el historial si el transcript cambio.
func (m *Model) sync() {
	if m.rendered != m.transcript.Changes() {
		m.viewport.SetContent(m.renderHistory())
		m.rendered = m.transcript.Changes()
	}
	if m.scroll {
		m.viewport.GotoBottom()
		m.scroll = false
	}
}

func (m *Model) renderHistory() string {
	var b strings.Builder
	for _, el := range m.transcript.Elements() {
		switch el.Kind {
		case widget.ElementTyping:
			b.WriteString(m.styles.Typing.Render(m.opts.AssistantName+": ") + m.spinner.View())
		case widget.ElementMessage:
			b.WriteString(m.renderMessage(el.Message))
		}
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderMessage(msg domain.Message) string {
	switch {
	case msg.Error:
		return m.styles.Error.Render(msg.Text)
	case msg.Author == domain.AuthorUser:
		return m.styles.User.Render("You: ") + msg.Text
	default:
		text := msg.Text
		if m.renderer != nil {
			if out, err := m.renderer.Render(text); err == nil {
				text = strings.TrimSpace(out)
			} else {
				m.logger.Warn("markdown render failed", zap.Error(err))
			}
		}
		return m.styles.Assistant.Render(m.opts.AssistantName+": ") + text
	}
}
