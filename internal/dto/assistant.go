package dto

type AssistantMode string

const (
	AssistantChat   AssistantMode = "chat"
	AssistantThink  AssistantMode = "think"
	AssistantSearch AssistantMode = "search"
	AssistantMaps   AssistantMode = "maps"
	AssistantFast   AssistantMode = "fast"
)

type AssistantCoordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type AssistantQueryRequest struct {
	Prompt   string                `json:"prompt"`
	Mode     AssistantMode         `json:"mode"`
	Language *string               `json:"language,omitempty"`
	History  []AssistantTurn       `json:"history,omitempty"`
	Location *AssistantCoordinates `json:"location,omitempty"`
	District string                `json:"district,omitempty"`
	Upazila  string                `json:"upazila,omitempty"`
}

type AssistantTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type AssistantQueryResponse struct {
	Answer    string           `json:"answer"`
	Mode      AssistantMode    `json:"mode"`
	Sources   []VertexCitation `json:"sources,omitempty"`
	ToolsUsed []string         `json:"toolsUsed,omitempty"`
}
