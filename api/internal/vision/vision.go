// Package vision calls the Google Cloud Vision images:annotate endpoint and
// hands the annotation payload through untouched. Auth is a static API key or
// a bearer token minted per request by TokenProvider.
package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"derma-ai/api/internal/apperr"
)

const (
	maxLabelResults = 20
	maxWebResults   = 10
)

// TokenSource supplies a bearer token for one upstream call.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type Client struct {
	apiKey  string
	baseURL string
	tokens  TokenSource
	httpc   *http.Client
	log     zerolog.Logger
}

func NewClient(apiKey, baseURL string, tokens TokenSource, log zerolog.Logger) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		tokens:  tokens,
		httpc:   &http.Client{Timeout: 60 * time.Second},
		log:     log,
	}
}

type annotateRequest struct {
	Requests []annotateItem `json:"requests"`
}

type annotateItem struct {
	Image    imageContent `json:"image"`
	Features []feature    `json:"features"`
}

type imageContent struct {
	Content string `json:"content"`
}

type feature struct {
	Type       string `json:"type"`
	MaxResults int    `json:"maxResults,omitempty"`
}

type annotateEnvelope struct {
	Responses []*AnnotateResponse `json:"responses"`
}

type upstreamError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Annotate sends raw image bytes for label, web-entity and image-property
// detection and returns the first annotation result. Transport failures are
// returned as-is; a non-2xx status becomes an upstream error carrying the
// service's own message when it provided one.
func (c *Client) Annotate(ctx context.Context, image []byte) (*AnnotateResponse, error) {
	body := annotateRequest{
		Requests: []annotateItem{{
			Image: imageContent{Content: base64.StdEncoding.EncodeToString(image)},
			Features: []feature{
				{Type: "LABEL_DETECTION", MaxResults: maxLabelResults},
				{Type: "WEB_DETECTION", MaxResults: maxWebResults},
				{Type: "IMAGE_PROPERTIES"},
			},
		}},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	url := c.baseURL + "/v1/images:annotate"
	if c.apiKey != "" {
		url += "?key=" + c.apiKey
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	if c.apiKey == "" {
		if c.tokens == nil {
			return nil, apperr.New(apperr.Configuration, "vision credentials not configured")
		}
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var ue upstreamError
		_ = json.NewDecoder(resp.Body).Decode(&ue)
		msg := ue.Error.Message
		if msg == "" {
			msg = "Unknown error"
		}
		c.log.Warn().Int("status", resp.StatusCode).Str("message", msg).Msg("vision annotate rejected")
		return nil, apperr.New(apperr.Upstream, fmt.Sprintf("Vision API Error: %s", msg))
	}

	var out annotateEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "Vision API Error: bad response body", err)
	}
	if len(out.Responses) == 0 || out.Responses[0] == nil {
		return nil, apperr.New(apperr.Upstream, "Vision API Error: empty annotate response")
	}
	return out.Responses[0], nil
}
