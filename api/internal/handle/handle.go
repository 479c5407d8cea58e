// Package handle holds the HTTP handlers. Analyze is the orchestrator:
// validate, annotate the image, generate the clinical analysis, merge.
package handle

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"derma-ai/api/internal/analysis"
	"derma-ai/api/internal/apperr"
	"derma-ai/api/internal/config"
	"derma-ai/api/internal/vision"
)

type VisionClient interface {
	Annotate(ctx context.Context, image []byte) (*vision.AnnotateResponse, error)
}

type Analyzer interface {
	Analyze(ctx context.Context, vr *vision.AnnotateResponse, an *analysis.AnamnesisRecord) (*analysis.ClinicalAnalysis, error)
}

type Handle struct {
	cfg    *config.Config
	vision VisionClient
	gen    Analyzer
	log    zerolog.Logger
}

func New(cfg *config.Config, vc VisionClient, gen Analyzer, log zerolog.Logger) *Handle {
	return &Handle{cfg: cfg, vision: vc, gen: gen, log: log}
}

func respondError(c echo.Context, err error) error {
	status, body := apperr.Envelope(err)
	return c.JSON(status, body)
}
