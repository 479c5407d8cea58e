package main

import (
	"errors"
	"net/http"
	"os"

	"github.com/rs/zerolog"

	"derma-ai/api/internal/config"
	"derma-ai/api/internal/genlang"
	"derma-ai/api/internal/handle"
	"derma-ai/api/internal/httpserver"
	"derma-ai/api/internal/vision"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	// Bearer-token variant only when no static key is set.
	var tokens vision.TokenSource
	if cfg.VisionAPIKey == "" && cfg.VisionCredentialsJSON != "" {
		tokens = vision.NewTokenProvider([]byte(cfg.VisionCredentialsJSON), cfg.TokenURL)
	}

	vc := vision.NewClient(cfg.VisionAPIKey, cfg.VisionURL, tokens, log)
	gen := genlang.New(cfg.GeminiAPIKey, cfg.GeminiModels, log)
	h := handle.New(cfg, vc, gen, log)

	e := httpserver.New(cfg, log, h)

	addr := ":" + cfg.Port
	log.Info().
		Str("addr", addr).
		Bool("vision_configured", cfg.HasVisionCredentials()).
		Bool("gemini_configured", cfg.HasGeminiCredentials()).
		Msg("derma server listening")

	if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
