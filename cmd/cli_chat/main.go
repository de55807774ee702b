package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"chat-widget/internal/config"
	"chat-widget/internal/transport"
	"chat-widget/internal/tui"
	"chat-widget/internal/widget"
)

type options struct {
	endpoint       string
	legacy         bool
	legacyEndpoint string
	memSize        int
	plain          bool
	markdown       bool
	assistantName  string
	logFile        string
}

func main() {
	_ = godotenv.Load()

	cmd, err := newRootCmd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd toma los defaults de los flags del entorno; un entorno invalido
// corta antes de arrancar.
func newRootCmd() (*cobra.Command, error) {
	cfg, err := config.LoadClientConfig()
	if err != nil {
		return nil, fmt.Errorf("load client config: %w", err)
	}

	opts := options{
		endpoint:       cfg.Endpoint,
		legacy:         cfg.Legacy,
		legacyEndpoint: cfg.LegacyEndpoint,
		memSize:        cfg.MemSize,
	}

	cmd := &cobra.Command{
		Use:   "cli_chat",
		Short: "Chat with the assistant server from the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
		SilenceUsage: true,
	}

	f := cmd.Flags()
	f.StringVar(&opts.endpoint, "endpoint", opts.endpoint, "chat endpoint (JSON)")
	f.BoolVar(&opts.legacy, "legacy", opts.legacy, "use the form-encoded legacy endpoint")
	f.StringVar(&opts.legacyEndpoint, "legacy-endpoint", opts.legacyEndpoint, "legacy chat endpoint")
	f.IntVar(&opts.memSize, "mem-size", opts.memSize, "memory window sent as mem_size (0 = server default)")
	f.BoolVar(&opts.plain, "plain", false, "line mode instead of the full-screen UI")
	f.BoolVar(&opts.markdown, "markdown", true, "render assistant replies as markdown")
	f.StringVar(&opts.assistantName, "name", "Assistant", "assistant display name")
	f.StringVar(&opts.logFile, "log-file", "", "write logs to this file")
	return cmd, nil
}

func run(ctx context.Context, opts options) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logger, err := newLogger(opts.logFile)
	if err != nil {
		return err
	}
	defer logger.Sync()

	tr := transport.New(config.ClientConfig{
		Endpoint:       opts.endpoint,
		Legacy:         opts.legacy,
		LegacyEndpoint: opts.legacyEndpoint,
		MemSize:        opts.memSize,
	}, &http.Client{}, logger)

	if opts.plain {
		return runPlain(ctx, tr, logger, opts)
	}

	model := tui.NewModel(ctx, tr, logger, tui.Options{
		Title:         "Chat · " + opts.assistantName,
		AssistantName: opts.assistantName,
		Markdown:      opts.markdown,
	})
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

// runPlain es el modo linea: lee del stdin, "/clear" limpia y "exit" sale.
func runPlain(ctx context.Context, tr transport.Transport, logger *zap.Logger, opts options) error {
	view := widget.NewConsoleView(os.Stdout, opts.assistantName)
	w := widget.New(view, tr, logger)

	fmt.Println("---- Chat (type 'exit' to quit, '/clear' to clear) ----")
	return chatLoop(ctx, os.Stdin, view, w)
}

// chatLoop procesa lineas hasta "exit" o EOF. Una ultima linea sin salto
// final tambien se envia.
func chatLoop(ctx context.Context, in io.Reader, view *widget.ConsoleView, w *widget.Widget) error {
	reader := bufio.NewReader(in)
	for {
		view.Prompt()
		text, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read input: %w", err)
		}
		eof := err != nil

		switch strings.TrimSpace(strings.ToLower(text)) {
		case "exit", "quit":
			return nil
		case "/clear":
			w.Clear()
		default:
			// el error ya quedo en pantalla y en el log
			_, _ = w.Send(ctx, text)
		}
		if eof {
			return nil
		}
	}
}

func newLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
