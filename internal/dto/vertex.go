package dto

import "context"

type VertexGenerateRequest struct {
	Model           string
	System          string
	History         []VertexMessage
	UserMessage     string
	Tools           []VertexTool
	ToolExecutor    VertexToolExecutor
	Temperature     *float32
	MaxOutputTokens *int32
}

// VertexToolExecutor answers a function call requested by the model.
type VertexToolExecutor func(ctx context.Context, call VertexToolCall) (map[string]any, error)

type VertexMessage struct {
	Role string // "user" or "model"
	Text string
}

type VertexGenerateResponse struct {
	Text      string
	ToolCalls []VertexToolCall
	Citations []VertexCitation
	Raw       any
}

type VertexCitation struct {
	URI   string `json:"uri"`
	Title string `json:"title,omitempty"`
}

type VertexTool struct {
	Name        string
	Description string
	Parameters  *VertexSchema
}

type VertexToolCall struct {
	Name string
	Args map[string]any
}

type VertexSchema struct {
	Type        string
	Description string
	Enum        []string
	Properties  map[string]*VertexSchema
	Required    []string
	Items       *VertexSchema
}
