package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"innerparts/internal/config"
	"innerparts/internal/model"
)

// AgentService runs the in-character chat agent against an
// OpenAI-compatible chat completions API
type AgentService struct {
	config *config.AIConfig
	client *http.Client
}

// NewAgentService creates a new agent service
func NewAgentService() *AgentService {
	cfg := config.DefaultAIConfig()
	return &AgentService{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

const agentToolInstruction = `Return JSON with keys: "assistantMessage", "toolCalls", "memorySummary". ` +
	`"toolCalls" is a list of {name, args}. ` +
	`Available tools: update_progress_summary, add_timeline_event, set_last_agent_run. ` +
	`For update_progress_summary, valid args are: currentStage, streakDays, lastSessionAt, notes. ` +
	`"memorySummary" should be under 6 bullet points.`

// RunAgentStep runs one agent turn: the assistant reply, any tool calls
// and an updated memory summary, parsed from the model's JSON output.
func (s *AgentService) RunAgentStep(ctx context.Context, systemPrompt string, messages []model.ChatMessage) (*model.AgentResult, error) {
	if !s.config.IsEnabled() {
		return s.mockAgentStep(messages), nil
	}

	chatMessages := []model.ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "system", Content: agentToolInstruction},
	}
	chatMessages = append(chatMessages, conversationTurns(messages)...)

	response, err := s.callChatModel(ctx, s.config.Models.Chat, chatMessages, 0.7, true)
	if err != nil {
		// Fallback to mock on error
		return s.mockAgentStep(messages), nil
	}

	var result model.AgentResult
	if err := json.Unmarshal([]byte(response), &result); err != nil {
		return s.mockAgentStep(messages), nil
	}

	return &result, nil
}

// GenerateSummary condenses the conversation into a short memory for
// future chats.
func (s *AgentService) GenerateSummary(ctx context.Context, existingSummary string, messages []model.ChatMessage) (string, error) {
	if !s.config.IsEnabled() {
		return s.mockSummary(existingSummary, messages), nil
	}

	prompt, err := buildSummaryPrompt(existingSummary, messages)
	if err != nil {
		return s.mockSummary(existingSummary, messages), nil
	}

	response, err := s.callChatModel(ctx, s.config.Models.Summary, prompt, 0.2, false)
	if err != nil {
		return s.mockSummary(existingSummary, messages), nil
	}

	return strings.TrimSpace(response), nil
}

// callChatModel makes a request to the chat completions API
func (s *AgentService) callChatModel(ctx context.Context, modelName string, messages []model.ChatMessage, temperature float64, jsonMode bool) (string, error) {
	reqBody := map[string]interface{}{
		"model":       modelName,
		"messages":    messages,
		"temperature": temperature,
	}
	if jsonMode {
		reqBody["response_format"] = map[string]string{"type": "json_object"}
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.config.ChatCompletionsEndpoint(), bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat completions returned status %d", resp.StatusCode)
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", err
	}

	if len(completion.Choices) > 0 {
		return completion.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("empty response from chat model")
}

// BuildCharacterPrompt builds the in-character system prompt from a
// character profile.
func BuildCharacterPrompt(profile model.CharacterProfile) string {
	displayName := profile.DisplayName
	if displayName == "" {
		displayName = "Inner Part"
	}
	role := profile.Role
	if role == "" {
		role = "Inner Part"
	}

	return strings.TrimSpace(fmt.Sprintf(`
You are %s, an inner part in an IFS-style healing conversation.
You are not a therapist or a doctor. You speak as a real inner part of the user.

Role: %s
Short description: %s
Why I exist: %s
Triggers: %s
Core belief: %s
Intention: %s
Fear: %s
What I need: %s

Guidelines:
- Stay in-character as %s.
- Keep responses grounded, compassionate, and healing-focused.
- Use gentle questions to help the user connect with this part.
- Avoid clinical language and avoid giving medical advice.
- Keep the tone realistic and human, not robotic.
`, displayName, role, profile.ShortDescription, profile.WhyIExist,
		strings.Join(profile.Triggers, ", "), profile.CoreBelief,
		profile.Intention, profile.Fear, strings.Join(profile.WhatINeed, ", "),
		displayName))
}

// BuildCharacterPromptWithMemory appends the stored memory summary to the
// base character prompt when one exists.
func BuildCharacterPromptWithMemory(profile model.CharacterProfile, memorySummary string) string {
	base := BuildCharacterPrompt(profile)
	if memorySummary == "" {
		return base
	}
	return strings.TrimSpace(fmt.Sprintf("%s\n\nMemory summary (use only if relevant):\n%s", base, memorySummary))
}

func buildSummaryPrompt(existingSummary string, messages []model.ChatMessage) ([]model.ChatMessage, error) {
	recent := messages
	if len(recent) > 20 {
		recent = recent[len(recent)-20:]
	}
	payload, err := json.Marshal(map[string]interface{}{
		"existing_summary": existingSummary,
		"recent_messages":  recent,
	})
	if err != nil {
		return nil, err
	}

	return []model.ChatMessage{
		{Role: "system", Content: "Summarize the conversation into a short memory for future chats. " +
			"Focus on stable facts, recurring themes, triggers, and helpful responses. " +
			"Keep it under 6 bullet points."},
		{Role: "user", Content: string(payload)},
	}, nil
}

// conversationTurns filters the transcript down to non-empty
// user/assistant turns.
func conversationTurns(messages []model.ChatMessage) []model.ChatMessage {
	turns := make([]model.ChatMessage, 0, len(messages))
	for _, m := range messages {
		if (m.Role == "user" || m.Role == "assistant") && m.Content != "" {
			turns = append(turns, m)
		}
	}
	return turns
}

// Mock implementations
func (s *AgentService) mockAgentStep(messages []model.ChatMessage) *model.AgentResult {
	return &model.AgentResult{
		AssistantMessage: "I hear you, and I'm glad you're here with me. What is coming up for you right now?",
		ToolCalls: []model.ToolCall{
			{Name: "set_last_agent_run", Args: map[string]interface{}{}},
		},
		MemorySummary: "",
	}
}

func (s *AgentService) mockSummary(existingSummary string, messages []model.ChatMessage) string {
	if existingSummary != "" {
		return existingSummary
	}
	return fmt.Sprintf("- Conversation with %d messages, no model available for summarization.", len(messages))
}
