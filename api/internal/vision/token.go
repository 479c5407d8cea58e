package vision

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"derma-ai/api/internal/apperr"
)

const (
	// Narrowest scope the annotate endpoint accepts.
	visionScope    = "https://www.googleapis.com/auth/cloud-vision"
	grantJWTBearer = "urn:ietf:params:oauth:grant-type:jwt-bearer"

	assertionLifetime = time.Hour
)

// ServiceAccount is the subset of a Google service-account document the
// JWT-bearer exchange needs.
type ServiceAccount struct {
	ClientEmail  string `json:"client_email"`
	PrivateKey   string `json:"private_key"`
	PrivateKeyID string `json:"private_key_id"`
}

func ParseServiceAccount(doc []byte) (*ServiceAccount, error) {
	var sa ServiceAccount
	if err := json.Unmarshal(doc, &sa); err != nil {
		return nil, apperr.Wrap(apperr.Auth, "invalid service account document", err)
	}
	if sa.ClientEmail == "" || sa.PrivateKey == "" {
		return nil, apperr.New(apperr.Auth, "service account document missing client_email or private_key")
	}
	return &sa, nil
}

// TokenProvider exchanges an RS256-signed assertion for a bearer access token.
// Tokens are fetched per call: within this service every token is single-use
// for the request that asked for it.
type TokenProvider struct {
	creds    []byte
	tokenURL string
	httpc    *http.Client
}

func NewTokenProvider(credsJSON []byte, tokenURL string) *TokenProvider {
	return &TokenProvider{
		creds:    credsJSON,
		tokenURL: tokenURL,
		httpc:    &http.Client{Timeout: 20 * time.Second},
	}
}

func (p *TokenProvider) Token(ctx context.Context) (string, error) {
	sa, err := ParseServiceAccount(p.creds)
	if err != nil {
		return "", err
	}
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(sa.PrivateKey))
	if err != nil {
		return "", apperr.Wrap(apperr.Auth, "invalid service account private key", err)
	}

	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"iss":   sa.ClientEmail,
		"scope": visionScope,
		"aud":   p.tokenURL,
		"iat":   now.Unix(),
		"exp":   now.Add(assertionLifetime).Unix(),
	})
	if sa.PrivateKeyID != "" {
		tok.Header["kid"] = sa.PrivateKeyID
	}
	assertion, err := tok.SignedString(key)
	if err != nil {
		return "", apperr.Wrap(apperr.Auth, "sign token assertion", err)
	}

	form := url.Values{
		"grant_type": {grantJWTBearer},
		"assertion":  {assertion},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return "", apperr.New(apperr.Auth, fmt.Sprintf("token exchange %d: %s", resp.StatusCode, strings.TrimSpace(string(b))))
	}

	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", apperr.Wrap(apperr.Auth, "token exchange: bad response body", err)
	}
	if out.AccessToken == "" {
		return "", apperr.New(apperr.Auth, "token exchange returned no access token")
	}
	return out.AccessToken, nil
}
