package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVerifyServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "k1" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		var in verifyRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		switch in.Token {
		case "good":
			_ = json.NewEncoder(w).Encode(verifyResponse{UserID: " u-42 ", Email: "a@b.test"})
		case "nouser":
			_ = json.NewEncoder(w).Encode(verifyResponse{})
		case "boom":
			w.WriteHeader(http.StatusBadGateway)
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
}

func TestVerifier(t *testing.T) {
	srv := newVerifyServer(t)
	defer srv.Close()

	v := NewVerifier(Config{VerifyURL: srv.URL + "/verify", APIKey: "k1", Timeout: time.Second})
	ctx := context.Background()

	c, err := v.Verify(ctx, "good")
	require.NoError(t, err)
	assert.Equal(t, "u-42", c.UserID)
	assert.Equal(t, "a@b.test", c.Email)

	_, err = v.Verify(ctx, "bad")
	assert.True(t, errors.Is(err, ErrUnauthorized))

	_, err = v.Verify(ctx, "boom")
	assert.True(t, errors.Is(err, ErrUpstream))

	_, err = v.Verify(ctx, "nouser")
	assert.True(t, errors.Is(err, ErrUpstream))

	_, err = v.Verify(ctx, "  ")
	assert.True(t, errors.Is(err, ErrUnauthorized))
}

func TestVerifier_WrongKeyIsUnauthorized(t *testing.T) {
	srv := newVerifyServer(t)
	defer srv.Close()

	v := NewVerifier(Config{VerifyURL: srv.URL, APIKey: "other"})
	_, err := v.Verify(context.Background(), "good")
	assert.True(t, errors.Is(err, ErrUnauthorized))
}

func TestVerifier_NotConfigured(t *testing.T) {
	_, err := NewVerifier(Config{}).Verify(context.Background(), "good")
	assert.True(t, errors.Is(err, ErrNotConfigured))
}
