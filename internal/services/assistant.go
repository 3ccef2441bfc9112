package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/GregMSThompson/nirvor-backend/internal/dto"
	"github.com/GregMSThompson/nirvor-backend/internal/errs"
	"github.com/GregMSThompson/nirvor-backend/internal/models"
	"github.com/GregMSThompson/nirvor-backend/pkg/helpers"
	"github.com/GregMSThompson/nirvor-backend/pkg/logger"
)

const (
	flashModel     = "gemini-2.5-flash"
	flashLiteModel = "gemini-2.5-flash-lite"

	helplineTool   = "lookup_local_helplines"
	maxHistoryTurn = 8
)

type vertexClient interface {
	GenerateContent(ctx context.Context, req dto.VertexGenerateRequest) (dto.VertexGenerateResponse, error)
}

type helplineDirectory interface {
	Resolve(district, upazila string) (models.Location, bool)
	Helplines(loc models.Location) (models.LocalHelpline, bool)
}

type assistantService struct {
	vertex    vertexClient
	directory helplineDirectory
	language  languageSource
	model     string
}

func NewAssistantService(vertex vertexClient, directory helplineDirectory, language languageSource, model string) *assistantService {
	return &assistantService{
		vertex:    vertex,
		directory: directory,
		language:  language,
		model:     model,
	}
}

func (s *assistantService) Query(ctx context.Context, req dto.AssistantQueryRequest) (dto.AssistantQueryResponse, error) {
	log := logger.FromContext(ctx)

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return dto.AssistantQueryResponse{}, errs.NewValidationError("prompt is required")
	}
	mode := req.Mode
	if mode == "" {
		mode = dto.AssistantChat
	}

	lang := s.language.Language()
	if req.Language != nil {
		lang = models.Language(*req.Language)
		if !lang.Valid() {
			return dto.AssistantQueryResponse{}, errs.NewValidationError(fmt.Sprintf("unsupported language %q", *req.Language))
		}
	}

	genReq, err := s.buildRequest(mode, lang, prompt, req)
	if err != nil {
		return dto.AssistantQueryResponse{}, err
	}

	resp, err := s.vertex.GenerateContent(ctx, genReq)
	if err != nil {
		log.Error("assistant generation failed", "mode", mode, "error", err)
		return dto.AssistantQueryResponse{}, errs.NewExternalServiceError("vertex", unavailableMessage(lang), true, err)
	}
	answer := strings.TrimSpace(resp.Text)
	if answer == "" {
		return dto.AssistantQueryResponse{}, errs.NewExternalServiceError("vertex", "Empty response from AI", true, nil)
	}

	out := dto.AssistantQueryResponse{
		Answer:  answer,
		Mode:    mode,
		Sources: resp.Citations,
	}
	for _, call := range resp.ToolCalls {
		out.ToolsUsed = append(out.ToolsUsed, call.Name)
	}

	log.Info("assistant query completed", "mode", mode, "model", genReq.Model, "tools", len(out.ToolsUsed))
	return out, nil
}

func (s *assistantService) buildRequest(mode dto.AssistantMode, lang models.Language, prompt string, req dto.AssistantQueryRequest) (dto.VertexGenerateRequest, error) {
	genReq := dto.VertexGenerateRequest{
		System:       systemInstruction(lang, mode),
		History:      toVertexHistory(req.History),
		UserMessage:  prompt,
		Tools:        assistantTools(),
		ToolExecutor: s.executeTool,
	}

	switch mode {
	case dto.AssistantChat:
		genReq.Model = s.model
	case dto.AssistantThink:
		genReq.Model = s.model
		genReq.Temperature = helpers.Ptr[float32](0.2)
		genReq.MaxOutputTokens = helpers.Ptr[int32](8192)
	case dto.AssistantSearch:
		genReq.Model = flashModel
	case dto.AssistantMaps:
		genReq.Model = flashModel
		genReq.UserMessage = withPlace(prompt, req)
	case dto.AssistantFast:
		genReq.Model = flashLiteModel
		genReq.Tools = nil
		genReq.ToolExecutor = nil
		genReq.MaxOutputTokens = helpers.Ptr[int32](1024)
	default:
		return dto.VertexGenerateRequest{}, errs.NewValidationError(fmt.Sprintf("unsupported mode %q", mode))
	}
	return genReq, nil
}

func systemInstruction(lang models.Language, mode dto.AssistantMode) string {
	reply := "Reply in English."
	if lang == models.LanguageBN {
		reply = "Reply in Bengali (Bangla) unless requested otherwise."
	}

	var b strings.Builder
	b.WriteString("You are 'Nirvor AI', a helpful assistant for a Bangladeshi app named Nirvor.\n")
	b.WriteString("Your goal is to help users with emergency, health, legal, and government service queries in Bangladesh.\n")
	b.WriteString(reply + "\n")
	b.WriteString("Keep answers concise, easy to understand for rural people, and empathetic.\n")
	b.WriteString("If the query is a life-threatening emergency, strictly advise them to call 999 immediately.\n")
	b.WriteString("Use " + helplineTool + " when the user asks for police, fire service, UNO or hospital numbers in a named district or upazila.\n")
	switch mode {
	case dto.AssistantThink:
		b.WriteString("Reason through the problem step by step before answering, then give only the final answer.\n")
	case dto.AssistantSearch:
		b.WriteString("Prefer official Bangladesh government sources and name them when you rely on them.\n")
	case dto.AssistantMaps:
		b.WriteString("The user wants nearby places. Describe how to reach them from the given location.\n")
	}
	return b.String()
}

func unavailableMessage(lang models.Language) string {
	if lang == models.LanguageBN {
		return "AI সেবা বর্তমানে অনুপলব্ধ। কিছুক্ষণ পর চেষ্টা করুন।"
	}
	return "AI service unavailable. Try again later."
}

func withPlace(prompt string, req dto.AssistantQueryRequest) string {
	var place []string
	if req.Location != nil {
		place = append(place, fmt.Sprintf("coordinates %.5f, %.5f", req.Location.Latitude, req.Location.Longitude))
	}
	if req.Upazila != "" {
		place = append(place, "upazila "+req.Upazila)
	}
	if req.District != "" {
		place = append(place, "district "+req.District)
	}
	if len(place) == 0 {
		return prompt
	}
	return prompt + "\n\n(User location: " + strings.Join(place, ", ") + ")"
}

func toVertexHistory(turns []dto.AssistantTurn) []dto.VertexMessage {
	if len(turns) > maxHistoryTurn {
		turns = turns[len(turns)-maxHistoryTurn:]
	}
	out := make([]dto.VertexMessage, 0, len(turns))
	for _, turn := range turns {
		text := strings.TrimSpace(turn.Text)
		if text == "" {
			continue
		}
		role := "user"
		if turn.Role == "model" || turn.Role == "assistant" {
			role = "model"
		}
		out = append(out, dto.VertexMessage{Role: role, Text: text})
	}
	return out
}

func assistantTools() []dto.VertexTool {
	return []dto.VertexTool{
		{
			Name:        helplineTool,
			Description: "Returns the police, fire service, UNO office and hospital phone numbers for a district and upazila of Bangladesh.",
			Parameters: &dto.VertexSchema{
				Type: "object",
				Properties: map[string]*dto.VertexSchema{
					"district": {Type: "string", Description: "District name, e.g. Dhaka"},
					"upazila":  {Type: "string", Description: "Upazila or thana name, e.g. Savar"},
				},
				Required: []string{"district", "upazila"},
			},
		},
	}
}

type helplineArgs struct {
	District string `json:"district"`
	Upazila  string `json:"upazila"`
}

func (s *assistantService) executeTool(ctx context.Context, call dto.VertexToolCall) (map[string]any, error) {
	logger.FromContext(ctx).Debug("executing tool", "tool", call.Name)

	switch call.Name {
	case helplineTool:
		args, err := decodeArgs[helplineArgs](call.Args)
		if err != nil {
			return nil, errs.NewValidationError(fmt.Sprintf("invalid arguments for %s", call.Name))
		}
		loc, ok := s.directory.Resolve(args.District, args.Upazila)
		if !ok {
			return map[string]any{"found": false, "reason": "unknown district or upazila"}, nil
		}
		lines, local := s.directory.Helplines(loc)
		return map[string]any{
			"found":    true,
			"local":    local,
			"district": loc.District,
			"upazila":  loc.Upazila,
			"police":   lines.Police,
			"fire":     lines.Fire,
			"uno":      lines.UNO,
			"hospital": lines.Hospital,
		}, nil
	default:
		return nil, errs.NewValidationError(fmt.Sprintf("unsupported tool: %s", call.Name))
	}
}

func decodeArgs[T any](args map[string]any) (T, error) {
	var out T
	if len(args) == 0 {
		return out, nil
	}
	raw, err := json.Marshal(args)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, err
	}
	return out, nil
}
