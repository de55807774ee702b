package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"chat-widget/internal/domain"
)

// LegacyTransport envia user_input como formulario al endpoint viejo.
// No maneja memoria: la respuesta devuelve la misma que se envio.
type LegacyTransport struct {
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

func NewLegacyTransport(endpoint string, httpClient *http.Client, logger *zap.Logger) *LegacyTransport {
	return &LegacyTransport{
		endpoint: endpoint,
		client:   orDefault(httpClient),
		logger:   orNop(logger),
	}
}

func (t *LegacyTransport) Send(ctx context.Context, input string, memory domain.Memory) (Reply, error) {
	form := url.Values{}
	form.Set("user_input", input)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return Reply{}, fmt.Errorf("%w: create request: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
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
		t.logger.Warn("legacy chat endpoint error",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(respBody)),
		)
		return Reply{}, fmt.Errorf("%w: status=%d", ErrTransport, resp.StatusCode)
	}

	var lr domain.LegacyResponse
	if err := json.Unmarshal(respBody, &lr); err != nil {
		return Reply{}, fmt.Errorf("%w: unmarshal response: %v", ErrTransport, err)
	}

	return Reply{Text: lr.Text(), Memory: memory}, nil
}
