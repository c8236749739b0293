package config

import "os"

// AIConfig holds configuration for the external ranking model.
type AIConfig struct {
	APIKey      string  `json:"-"` // Never serialize
	BaseURL     string  `json:"baseUrl"`
	Model       string  `json:"model"`
	MaxTokens   int     `json:"maxTokens"`
	Temperature float64 `json:"temperature"`
	TimeoutMS   int     `json:"timeoutMs"`
}

// DefaultAIConfig returns the default ranking-model configuration.
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		BaseURL: "https://generativelanguage.googleapis.com/v1beta/models",
		Model:   getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),

		// Low temperature keeps rankings consistent across identical requests.
		MaxTokens:   800,
		Temperature: 0.1,
		TimeoutMS:   10000,
	}
}

// IsEnabled returns true if the ranking API is configured.
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// ModelEndpoint returns the full endpoint for the configured model.
func (c *AIConfig) ModelEndpoint() string {
	return c.BaseURL + "/" + c.Model + ":generateContent"
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
