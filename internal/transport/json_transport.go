package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"chat-widget/internal/domain"
)

// JSONTransport implementa Transport contra POST /chat con cuerpo JSON.
type JSONTransport struct {
	endpoint string
	client   *http.Client
	logger   *zap.Logger

	// MemSize se envia como mem_size cuando es mayor que cero.
	MemSize int
}

func NewJSONTransport(endpoint string, httpClient *http.Client, logger *zap.Logger) *JSONTransport {
	return &JSONTransport{
		endpoint: endpoint,
		client:   orDefault(httpClient),
		logger:   orNop(logger),
	}
}

func (t *JSONTransport) Send(ctx context.Context, input string, memory domain.Memory) (Reply, error) {
	bodyBytes, err := json.Marshal(domain.ChatRequest{
		UserInput: input,
		Memory:    memory,
		MemSize:   t.MemSize,
	})
	if err != nil {
		return Reply{}, fmt.Errorf("%w: marshal request: %v", ErrTransport, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return Reply{}, fmt.Errorf("%w: create request: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return Reply{}, fmt.Errorf("%w: do request: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Reply{}, fmt.Errorf("%w: read response: %v", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		t.logger.Warn("chat endpoint error",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(respBody)),
		)
		return Reply{}, fmt.Errorf("%w: status=%d", ErrTransport, resp.StatusCode)
	}

	var cr domain.ChatResponse
	if err := json.Unmarshal(respBody, &cr); err != nil {
		return Reply{}, fmt.Errorf("%w: unmarshal response: %v", ErrTransport, err)
	}

	return Reply{Text: cr.Response, Memory: cr.Memory}, nil
}
