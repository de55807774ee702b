package domain

// ChatRequest es el cuerpo JSON de POST /chat.
type ChatRequest struct {
	UserInput string `json:"user_input"`
	Memory    Memory `json:"memory"`
	MemSize   int    `json:"mem_size,omitempty"`
}

// ChatResponse es la respuesta de POST /chat.
type ChatResponse struct {
	Response string `json:"response"`
	Memory   Memory `json:"memory"`
}

// LegacyResponse cubre las dos variantes del endpoint de formulario.
type LegacyResponse struct {
	Response   string `json:"response,omitempty"`
	AIResponse string `json:"ai_response,omitempty"`
}

// Text prefiere "response" sobre "ai_response".
func (r LegacyResponse) Text() string {
	if r.Response != "" {
		return r.Response
	}
	return r.AIResponse
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// ToolInfo describe una funcion disponible en GET /tools.
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ToolsResponse struct {
	Tools []ToolInfo `json:"tools"`
}
