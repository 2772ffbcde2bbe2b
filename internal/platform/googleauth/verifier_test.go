package googleauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wayfarerhq/wayfarer-api/internal/apperr"
)

func tokenInfoServer(t *testing.T, status int, payload map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.URL.Query().Get("id_token"))
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(payload)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestVerify_Success(t *testing.T) {
	srv := tokenInfoServer(t, http.StatusOK, map[string]string{
		"aud":         "client-1",
		"sub":         "google-sub",
		"email":       "grace@example.com",
		"given_name":  "Grace",
		"family_name": "Hopper",
		"picture":     "https://lh3.example/avatar.jpg",
	})

	v := NewVerifier(Config{TokenInfoURL: srv.URL, ClientID: "client-1"})

	identity, err := v.Verify(context.Background(), "id-token")
	require.NoError(t, err)

	assert.Equal(t, "google-sub", identity.Subject)
	assert.Equal(t, "grace@example.com", identity.Email)
	assert.Equal(t, "Grace", identity.FirstName)
	assert.Equal(t, "Hopper", identity.LastName)
}

func TestVerify_RejectedToken(t *testing.T) {
	srv := tokenInfoServer(t, http.StatusBadRequest, map[string]string{"error": "invalid_token"})

	v := NewVerifier(Config{TokenInfoURL: srv.URL})

	_, err := v.Verify(context.Background(), "bad-token")
	require.Error(t, err)
	assert.Equal(t, apperr.KindAuthentication, apperr.KindOf(err))
}

func TestVerify_AudienceMismatch(t *testing.T) {
	srv := tokenInfoServer(t, http.StatusOK, map[string]string{
		"aud":   "someone-else",
		"sub":   "google-sub",
		"email": "grace@example.com",
	})

	v := NewVerifier(Config{TokenInfoURL: srv.URL, ClientID: "client-1"})

	_, err := v.Verify(context.Background(), "id-token")
	require.Error(t, err)
	assert.Equal(t, apperr.KindAuthentication, apperr.KindOf(err))
}

func TestVerify_MissingSubject(t *testing.T) {
	srv := tokenInfoServer(t, http.StatusOK, map[string]string{"aud": "client-1"})

	v := NewVerifier(Config{TokenInfoURL: srv.URL, ClientID: "client-1"})

	_, err := v.Verify(context.Background(), "id-token")
	require.Error(t, err)
	assert.Equal(t, apperr.KindAuthentication, apperr.KindOf(err))
}

func TestVerify_EmptyCredential(t *testing.T) {
	v := NewVerifier(Config{})

	_, err := v.Verify(context.Background(), "  ")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
