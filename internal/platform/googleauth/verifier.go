// Package googleauth verifies Google-issued ID tokens.
//
// The verifier is an explicit collaborator injected into the auth service,
// so tests can substitute it without touching process-global state.
package googleauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/wayfarerhq/wayfarer-api/internal/apperr"
)

const defaultTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

// Identity is the verified subject of a Google ID token.
type Identity struct {
	Subject   string
	Email     string
	FirstName string
	LastName  string
	Picture   string
}

// Verifier validates an ID token and returns the identity it asserts.
type Verifier interface {
	Verify(ctx context.Context, idToken string) (*Identity, error)
}

// Config configures the HTTP verifier.
type Config struct {
	TokenInfoURL string
	ClientID     string
	HTTPClient   *http.Client
}

type httpVerifier struct {
	cfg Config
}

// NewVerifier builds a verifier backed by Google's tokeninfo endpoint.
func NewVerifier(cfg Config) Verifier {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if strings.TrimSpace(cfg.TokenInfoURL) == "" {
		cfg.TokenInfoURL = defaultTokenInfoURL
	}
	return &httpVerifier{cfg: cfg}
}

type tokenInfoResponse struct {
	Aud        string `json:"aud"`
	Sub        string `json:"sub"`
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
}

func (v *httpVerifier) Verify(ctx context.Context, idToken string) (*Identity, error) {
	if strings.TrimSpace(idToken) == "" {
		return nil, apperr.Validation("google credential is required")
	}

	endpoint := v.cfg.TokenInfoURL + "?id_token=" + url.QueryEscape(idToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build tokeninfo request: %w", err)
	}

	resp, err := v.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tokeninfo request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read tokeninfo response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apperr.Authentication("google token verification failed")
	}

	var info tokenInfoResponse
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("decode tokeninfo response: %w", err)
	}

	// A token minted for another application is not a credential for this
	// one, even when Google signed it.
	if v.cfg.ClientID != "" && info.Aud != v.cfg.ClientID {
		return nil, apperr.Authentication("google token audience mismatch")
	}

	if info.Sub == "" || info.Email == "" {
		return nil, apperr.Authentication("google token is missing subject or email")
	}

	return &Identity{
		Subject:   info.Sub,
		Email:     info.Email,
		FirstName: info.GivenName,
		LastName:  info.FamilyName,
		Picture:   info.Picture,
	}, nil
}
