package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config is read once at process start and treated as read-only afterwards.
// Missing credentials are not fatal here: the analyze handler reports them as a
// configuration error per request, so the process can start before keys are set.
type Config struct {
	Port        string   `envconfig:"PORT" default:"3001"`
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`
	BodyLimit   string   `envconfig:"BODY_LIMIT" default:"10M"`

	// Vision auth is either a static API key or a full service-account
	// document (JWT-bearer exchange). The key wins when both are set.
	VisionAPIKey          string `envconfig:"VISION_API_KEY"`
	VisionCredentialsJSON string `envconfig:"VISION_CREDENTIALS_JSON"`
	VisionURL             string `envconfig:"VISION_URL" default:"https://vision.googleapis.com"`
	TokenURL              string `envconfig:"TOKEN_URL" default:"https://oauth2.googleapis.com/token"`

	GeminiAPIKey string   `envconfig:"GEMINI_API_KEY"`
	GeminiModels []string `envconfig:"GEMINI_MODELS" default:"gemini-1.5-pro,gemini-1.5-flash,gemini-pro"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) HasVisionCredentials() bool {
	return c.VisionAPIKey != "" || c.VisionCredentialsJSON != ""
}

func (c *Config) HasGeminiCredentials() bool {
	return c.GeminiAPIKey != ""
}
