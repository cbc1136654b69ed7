package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"senti/internal/domain"
)

// HTTPIdentity talks to an external identity backend over its REST API.
// Accounts and credentials live entirely in that backend; senti only
// forwards requests and keeps the returned session token.
type HTTPIdentity struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPIdentity creates a client for the identity backend at baseURL.
// The API key is read from the environment variable named by apiKeyEnv.
func NewHTTPIdentity(baseURL, apiKeyEnv string, timeout time.Duration) (*HTTPIdentity, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("identity base URL is required")
	}
	apiKey := os.Getenv(apiKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("API key not found in environment variable: %s", apiKeyEnv)
	}

	return &HTTPIdentity{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

type credentialsRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type sessionResponse struct {
	IDToken   string    `json:"idToken"`
	LocalID   string    `json:"localId"`
	Email     string    `json:"email"`
	ExpiresIn string    `json:"expiresIn"` // seconds, as a string
	Error     *apiError `json:"error,omitempty"`
}

type lookupRequest struct {
	IDToken string `json:"idToken"`
}

type lookupResponse struct {
	Users []struct {
		LocalID string `json:"localId"`
		Email   string `json:"email"`
	} `json:"users"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// SignUp creates a new account and returns its first session.
func (h *HTTPIdentity) SignUp(ctx context.Context, email, password string) (domain.Session, error) {
	return h.credentialCall(ctx, "accounts:signUp", email, password)
}

// SignIn exchanges credentials for a session.
func (h *HTTPIdentity) SignIn(ctx context.Context, email, password string) (domain.Session, error) {
	return h.credentialCall(ctx, "accounts:signInWithPassword", email, password)
}

func (h *HTTPIdentity) credentialCall(ctx context.Context, endpoint, email, password string) (domain.Session, error) {
	var resp sessionResponse
	err := h.post(ctx, endpoint, credentialsRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}, &resp)
	if err != nil {
		return domain.Session{}, err
	}
	if resp.Error != nil {
		return domain.Session{}, fmt.Errorf("identity backend: %s", resp.Error.Message)
	}
	if resp.IDToken == "" {
		return domain.Session{}, fmt.Errorf("identity backend returned no token")
	}

	session := domain.Session{
		Token:  resp.IDToken,
		UserID: resp.LocalID,
		Email:  resp.Email,
	}
	if secs, err := strconv.Atoi(resp.ExpiresIn); err == nil && secs > 0 {
		session.ExpiresAt = time.Now().Add(time.Duration(secs) * time.Second)
	}
	return session, nil
}

// Verify resolves a session token to its user.
func (h *HTTPIdentity) Verify(ctx context.Context, token string) (domain.User, error) {
	var resp lookupResponse
	if err := h.post(ctx, "accounts:lookup", lookupRequest{IDToken: token}, &resp); err != nil {
		return domain.User{}, err
	}
	if resp.Error != nil {
		return domain.User{}, fmt.Errorf("identity backend: %s", resp.Error.Message)
	}
	if len(resp.Users) == 0 {
		return domain.User{}, fmt.Errorf("invalid session token")
	}

	return domain.User{ID: resp.Users[0].LocalID, Email: resp.Users[0].Email}, nil
}

func (h *HTTPIdentity) post(ctx context.Context, endpoint string, reqBody, respBody any) error {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/%s?key=%s", h.baseURL, endpoint, h.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("identity request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if err := json.Unmarshal(body, respBody); err != nil {
		return fmt.Errorf("failed to parse response (status %d): %w", resp.StatusCode, err)
	}
	return nil
}
