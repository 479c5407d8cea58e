package handle

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"derma-ai/api/internal/analysis"
	"derma-ai/api/internal/apperr"
	"derma-ai/api/internal/util"
)

func (h *Handle) Analyze(c echo.Context) error {
	var req analysis.AnalysisRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperr.New(apperr.Validation, "Both image and anamnesis data are required"))
	}
	if strings.TrimSpace(req.Image) == "" || req.Anamnesis == nil {
		return respondError(c, apperr.New(apperr.Validation, "Both image and anamnesis data are required"))
	}

	// Credentials are checked before any network call is attempted.
	if !h.cfg.HasVisionCredentials() || !h.cfg.HasGeminiCredentials() {
		return respondError(c, apperr.New(apperr.Configuration,
			"API keys not configured. Set VISION_API_KEY (or VISION_CREDENTIALS_JSON) and GEMINI_API_KEY."))
	}

	log := h.log.With().Str("request_id", uuid.NewString()).Logger()
	log.Info().Msg("analysis started")

	img, _, err := util.DecodeBase64MaybeDataURL(req.Image)
	if err != nil || len(img) == 0 {
		return respondError(c, apperr.New(apperr.Validation, "image is not valid base64 data"))
	}

	ctx := c.Request().Context()

	vr, err := h.vision.Annotate(ctx, img)
	if err != nil {
		log.Error().Err(err).Msg("vision analysis failed")
		return respondError(c, err)
	}
	log.Info().Int("labels", len(vr.LabelAnnotations)).Msg("vision analysis complete")

	ca, err := h.gen.Analyze(ctx, vr, req.Anamnesis)
	if err != nil {
		log.Error().Err(err).Msg("clinical analysis failed")
		return respondError(c, err)
	}
	log.Info().Str("urgency", ca.Urgency).Msg("clinical analysis complete")

	return c.JSON(http.StatusOK, analysis.AnalysisResponse{
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
		VisionData:       vr,
		ClinicalAnalysis: *ca,
	})
}
