package transport

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"chat-widget/internal/config"
	"chat-widget/internal/domain"
)

// ErrTransport agrupa cualquier fallo de red, de servidor o de parseo.
var ErrTransport = errors.New("chat transport failed")

// Reply es lo que el widget necesita de una respuesta exitosa.
type Reply struct {
	Text   string
	Memory domain.Memory
}

// Transport envia un mensaje del usuario y la memoria actual al servidor.
type Transport interface {
	Send(ctx context.Context, input string, memory domain.Memory) (Reply, error)
}

// New elige la implementacion segun la configuracion del cliente.
func New(cfg config.ClientConfig, httpClient *http.Client, logger *zap.Logger) Transport {
	if cfg.Legacy {
		return NewLegacyTransport(cfg.LegacyEndpoint, httpClient, logger)
	}
	t := NewJSONTransport(cfg.Endpoint, httpClient, logger)
	t.MemSize = cfg.MemSize
	return t
}

func orDefault(c *http.Client) *http.Client {
	if c == nil {
		return &http.Client{}
	}
	return c
}

func orNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
