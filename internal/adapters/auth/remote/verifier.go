package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"barkday/internal/platform/httpclient"
	"barkday/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("auth verifier not configured")
	ErrUnauthorized  = errors.New("token unauthorized")
	ErrUpstream      = errors.New("auth upstream error")
)

// Config del verificador remoto. VerifyURL y APIKey vienen de auth.* en config.
type Config struct {
	VerifyURL string
	APIKey    string

	// Si está vacío se usa "X-Api-Key".
	APIKeyHeader string

	Timeout time.Duration
}

// Verifier implementa auth.AuthVerifier contra un endpoint HTTP que recibe
// {"token": "..."} y responde {"user_id", "email", "name"}.
type Verifier struct {
	url          string
	apiKey       string
	apiKeyHeader string
	client       *httpclient.Client
}

func NewVerifier(cfg Config) *Verifier {
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}
	return &Verifier{
		url:          strings.TrimSpace(cfg.VerifyURL),
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: h,
		client:       httpclient.New(cfg.Timeout),
	}
}

func (v *Verifier) IsConfigured() bool {
	return v != nil && v.url != ""
}

type verifyRequest struct {
	Token string `json:"token"`
}

type verifyResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if !v.IsConfigured() {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrUnauthorized
	}

	headers := map[string]string{"Authorization": "Bearer " + token}
	if v.apiKey != "" {
		headers[v.apiKeyHeader] = v.apiKey
	}

	var out verifyResponse
	err := v.client.DoJSON(ctx, http.MethodPost, v.url, headers, verifyRequest{Token: token}, &out)
	if err != nil {
		var he *httpclient.HTTPError
		if errors.As(err, &he) && (he.StatusCode == http.StatusUnauthorized || he.StatusCode == http.StatusForbidden) {
			return auth.Claims{}, ErrUnauthorized
		}
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	out.UserID = strings.TrimSpace(out.UserID)
	if out.UserID == "" {
		return auth.Claims{}, fmt.Errorf("%w: response missing user_id", ErrUpstream)
	}

	return auth.Claims{
		UserID: out.UserID,
		Email:  strings.TrimSpace(out.Email),
		Name:   strings.TrimSpace(out.Name),
	}, nil
}
