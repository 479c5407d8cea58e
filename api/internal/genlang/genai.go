package genlang

import (
	"context"
	"errors"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	generationTemperature = 0.4
	generationMaxTokens   = 2048
)

// genaiGenerator is the production generator. The client is short-lived and
// scoped to one call, matching the per-request lifecycle of everything else.
type genaiGenerator struct {
	apiKey string
}

func (g *genaiGenerator) Generate(ctx context.Context, model, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", errors.New("GEMINI_API_KEY is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return "", err
	}
	defer cl.Close()

	m := cl.GenerativeModel(model)
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:     ptrFloat32(generationTemperature),
		MaxOutputTokens: ptrInt32(generationMaxTokens),
	}

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	return firstText(resp)
}

func firstText(resp *genai.GenerateContentResponse) (string, error) {
	for _, c := range resp.Candidates {
		if c == nil || c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t), nil
			}
		}
	}
	return "", errors.New("gemini: response contains no text part")
}

func ptrFloat32(v float32) *float32 { return &v }
func ptrInt32(v int32) *int32       { return &v }
