package model

// ChatMessage is one turn of the user/assistant conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the request body for POST /v1/chat.
type ChatRequest struct {
	CharacterID      string           `json:"characterId"`
	CharacterProfile CharacterProfile `json:"characterProfile"`
	Messages         []ChatMessage    `json:"messages"`
}

// ChatResponse is the reply to a chat turn.
type ChatResponse struct {
	Success          bool       `json:"success"`
	AssistantMessage string     `json:"assistantMessage"`
	ToolCalls        []ToolCall `json:"toolCalls"`
	Error            string     `json:"error,omitempty"`
}

// ToolCall is one action the agent asked to run against the user's record.
type ToolCall struct {
	Name string                 `json:"name"`
	Args map[string]interface{} `json:"args"`
}

// AgentResult is the structured output of a single agent step.
type AgentResult struct {
	AssistantMessage string     `json:"assistantMessage"`
	ToolCalls        []ToolCall `json:"toolCalls"`
	MemorySummary    string     `json:"memorySummary"`
}
