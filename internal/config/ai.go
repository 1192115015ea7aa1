package config

import "os"

// AgentModels defines which chat models to use for different tasks
type AgentModels struct {
	// Chat is for in-character conversation turns (needs to be fast)
	Chat string `json:"chat"`

	// Summary is for memory summarization after a turn (runs off the hot path)
	Summary string `json:"summary"`
}

// AIConfig holds all AI-related configuration
type AIConfig struct {
	APIKey    string      `json:"-"` // Never serialize
	BaseURL   string      `json:"baseUrl"`
	Models    AgentModels `json:"models"`
	TimeoutMS int         `json:"timeoutMs"`
}

// DefaultAIConfig returns the default AI configuration
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		APIKey:  os.Getenv("OPENAI_API_KEY"),
		BaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		Models: AgentModels{
			Chat:    getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			Summary: getEnv("OPENAI_SUMMARY_MODEL", "gpt-4o-mini"),
		},
		TimeoutMS: 30000,
	}
}

// IsEnabled returns true if the chat API is configured
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// ChatCompletionsEndpoint returns the chat completions URL
func (c *AIConfig) ChatCompletionsEndpoint() string {
	return c.BaseURL + "/chat/completions"
}
