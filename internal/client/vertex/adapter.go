package vertexclient

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/vertexai/genai"

	"github.com/GregMSThompson/nirvor-backend/internal/dto"
)

// maxToolRounds bounds how many function-call round trips one request may take.
const maxToolRounds = 2

type Adapter struct {
	client *genai.Client
	model  string
	log    *slog.Logger
}

func NewAdapter(ctx context.Context, log *slog.Logger, projectID, region, model string) (*Adapter, error) {
	client, err := genai.NewClient(ctx, projectID, region)
	if err != nil {
		return nil, err
	}

	return &Adapter{
		client: client,
		model:  model,
		log:    log,
	}, nil
}

func (a *Adapter) Close() error {
	err := a.client.Close()
	if err != nil && a.log != nil {
		a.log.Error("vertex adapter close failed", "error", err)
	}
	return err
}

func (a *Adapter) GenerateContent(ctx context.Context, req dto.VertexGenerateRequest) (dto.VertexGenerateResponse, error) {
	out := dto.VertexGenerateResponse{}

	modelName := req.Model
	if modelName == "" {
		modelName = a.model
	}
	if modelName == "" {
		return out, fmt.Errorf("vertex model is required")
	}
	if req.UserMessage == "" {
		return out, fmt.Errorf("vertex generate request has no content")
	}

	model := a.client.GenerativeModel(modelName)
	if req.System != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.System)},
		}
	}
	if req.Temperature != nil {
		model.SetTemperature(*req.Temperature)
	}
	if req.MaxOutputTokens != nil {
		model.SetMaxOutputTokens(*req.MaxOutputTokens)
	}
	if len(req.Tools) > 0 {
		model.Tools = toGenaiTools(req.Tools)
	}

	chat := model.StartChat()
	chat.History = toGenaiHistory(req.History)

	resp, err := chat.SendMessage(ctx, genai.Text(req.UserMessage))
	if err != nil {
		return out, err
	}

	for round := 0; round < maxToolRounds && req.ToolExecutor != nil; round++ {
		_, calls := parseContentResponse(resp)
		if len(calls) == 0 {
			break
		}

		parts := make([]genai.Part, 0, len(calls))
		for _, call := range calls {
			result, err := req.ToolExecutor(ctx, call)
			if err != nil {
				result = map[string]any{"error": err.Error()}
			}
			out.ToolCalls = append(out.ToolCalls, call)
			parts = append(parts, genai.FunctionResponse{Name: call.Name, Response: result})
		}

		resp, err = chat.SendMessage(ctx, parts...)
		if err != nil {
			return out, err
		}
	}

	out.Raw = resp
	out.Text, _ = parseContentResponse(resp)
	out.Citations = parseCitations(resp)
	return out, nil
}

func toGenaiHistory(history []dto.VertexMessage) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		if msg.Text == "" {
			continue
		}
		role := "user"
		if msg.Role == "model" {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Text)},
		})
	}
	return contents
}

func parseContentResponse(resp *genai.GenerateContentResponse) (string, []dto.VertexToolCall) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", nil
	}

	var text string
	var calls []dto.VertexToolCall
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			switch p := part.(type) {
			case genai.Text:
				text += string(p)
			case genai.FunctionCall:
				calls = append(calls, dto.VertexToolCall{Name: p.Name, Args: p.Args})
			case *genai.FunctionCall:
				calls = append(calls, dto.VertexToolCall{Name: p.Name, Args: p.Args})
			}
		}
	}

	return text, calls
}

func parseCitations(resp *genai.GenerateContentResponse) []dto.VertexCitation {
	if resp == nil {
		return nil
	}

	seen := make(map[string]struct{})
	var out []dto.VertexCitation
	for _, candidate := range resp.Candidates {
		if candidate.CitationMetadata == nil {
			continue
		}
		for _, c := range candidate.CitationMetadata.Citations {
			if c == nil || c.URI == "" {
				continue
			}
			if _, ok := seen[c.URI]; ok {
				continue
			}
			seen[c.URI] = struct{}{}
			out = append(out, dto.VertexCitation{URI: c.URI, Title: c.Title})
		}
	}
	return out
}

func toGenaiTools(tools []dto.VertexTool) []*genai.Tool {
	if len(tools) == 0 {
		return nil
	}

	decls := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, tool := range tools {
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        tool.Name,
			Description: tool.Description,
			Parameters:  toGenaiSchema(tool.Parameters),
		})
	}

	return []*genai.Tool{
		{FunctionDeclarations: decls},
	}
}

func toGenaiSchema(schema *dto.VertexSchema) *genai.Schema {
	if schema == nil {
		return nil
	}

	out := &genai.Schema{
		Type:        toGenaiType(schema.Type),
		Description: schema.Description,
		Enum:        schema.Enum,
		Required:    schema.Required,
	}

	if schema.Items != nil {
		out.Items = toGenaiSchema(schema.Items)
	}
	if len(schema.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(schema.Properties))
		for key, value := range schema.Properties {
			out.Properties[key] = toGenaiSchema(value)
		}
	}

	return out
}

func toGenaiType(schemaType string) genai.Type {
	switch schemaType {
	case "object":
		return genai.TypeObject
	case "array":
		return genai.TypeArray
	case "string":
		return genai.TypeString
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	default:
		return genai.TypeUnspecified
	}
}
