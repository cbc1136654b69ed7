package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdentityServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/v1/accounts:signUp", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "test-key", r.URL.Query().Get("key"))
		var req credentialsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		json.NewEncoder(w).Encode(map[string]any{
			"idToken":   "tok-signup",
			"localId":   "user-1",
			"email":     req.Email,
			"expiresIn": "3600",
		})
	})

	mux.HandleFunc("/v1/accounts:signInWithPassword", func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "hunter2" {
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"message": "INVALID_PASSWORD", "code": 400},
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"idToken":   "tok-signin",
			"localId":   "user-1",
			"email":     req.Email,
			"expiresIn": "3600",
		})
	})

	mux.HandleFunc("/v1/accounts:lookup", func(w http.ResponseWriter, r *http.Request) {
		var req lookupRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.IDToken != "tok-signin" {
			json.NewEncoder(w).Encode(map[string]any{"users": []any{}})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"users": []map[string]any{{"localId": "user-1", "email": "amy@example.com"}},
		})
	})

	return httptest.NewServer(mux)
}

func newTestIdentity(t *testing.T, baseURL string) *HTTPIdentity {
	t.Helper()
	t.Setenv("TEST_IDENTITY_KEY", "test-key")
	id, err := NewHTTPIdentity(baseURL, "TEST_IDENTITY_KEY", 5*time.Second)
	require.NoError(t, err)
	return id
}

func TestHTTPIdentity_SignUp(t *testing.T) {
	srv := newIdentityServer(t)
	defer srv.Close()

	id := newTestIdentity(t, srv.URL)
	session, err := id.SignUp(context.Background(), "amy@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "tok-signup", session.Token)
	assert.Equal(t, "user-1", session.UserID)
	assert.Equal(t, "amy@example.com", session.Email)
	assert.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, 10*time.Second)
}

func TestHTTPIdentity_SignIn(t *testing.T) {
	srv := newIdentityServer(t)
	defer srv.Close()

	id := newTestIdentity(t, srv.URL)

	session, err := id.SignIn(context.Background(), "amy@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "tok-signin", session.Token)

	_, err = id.SignIn(context.Background(), "amy@example.com", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_PASSWORD")
}

func TestHTTPIdentity_Verify(t *testing.T) {
	srv := newIdentityServer(t)
	defer srv.Close()

	id := newTestIdentity(t, srv.URL)

	user, err := id.Verify(context.Background(), "tok-signin")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "amy@example.com", user.Email)

	_, err = id.Verify(context.Background(), "garbage")
	assert.Error(t, err)
}

func TestNewHTTPIdentity_Validation(t *testing.T) {
	t.Setenv("TEST_IDENTITY_KEY", "test-key")
	_, err := NewHTTPIdentity("", "TEST_IDENTITY_KEY", time.Second)
	assert.Error(t, err)

	t.Setenv("TEST_IDENTITY_KEY_EMPTY", "")
	_, err = NewHTTPIdentity("http://localhost", "TEST_IDENTITY_KEY_EMPTY", time.Second)
	assert.Error(t, err)
}
