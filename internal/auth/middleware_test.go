package auth_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskforge/taskforge/internal/auth"
	"github.com/taskforge/taskforge/internal/session"
	"github.com/taskforge/taskforge/internal/token"
)

func newGate(t *testing.T) (auth.Middleware, *token.Service, session.Registry) {
	t.Helper()
	tokens := token.NewService("test-secret", time.Hour)
	registry := session.NewMemoryRegistry()
	mw := auth.Middleware{
		Logger:   slog.Default(),
		Tokens:   tokens,
		Registry: registry,
	}
	return mw, tokens, registry
}

// echoIdentity records the identity the gate attached to the context.
func echoIdentity(got *token.Identity) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			http.Error(w, "no identity", http.StatusInternalServerError)
			return
		}
		*got = id
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAPIKeyMissing(t *testing.T) {
	mw, _, _ := newGate(t)

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	res := httptest.NewRecorder()
	mw.RequireAPIKey(echoIdentity(&token.Identity{})).ServeHTTP(res, req)

	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Contains(t, res.Body.String(), "No API key provided")
}

func TestRequireAPIKeyForged(t *testing.T) {
	mw, _, registry := newGate(t)

	forged, err := token.NewService("other-secret", time.Hour).Issue(token.Identity{ID: 9, Email: "evil@x.com"})
	require.NoError(t, err)
	// Even an activated key fails if the signature does not check out.
	require.NoError(t, registry.Activate(context.Background(), forged))

	req := httptest.NewRequest(http.MethodGet, "/tasks?apiKey="+forged, nil)
	res := httptest.NewRecorder()
	mw.RequireAPIKey(echoIdentity(&token.Identity{})).ServeHTTP(res, req)

	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Contains(t, res.Body.String(), "Invalid API key")
}

func TestRequireAPIKeyRevoked(t *testing.T) {
	mw, tokens, _ := newGate(t)

	apiKey, err := tokens.Issue(token.Identity{ID: 1, Email: "a@x.com"})
	require.NoError(t, err)
	// Never activated: structurally valid but not in the registry.

	req := httptest.NewRequest(http.MethodGet, "/tasks?apiKey="+apiKey, nil)
	res := httptest.NewRecorder()
	mw.RequireAPIKey(echoIdentity(&token.Identity{})).ServeHTTP(res, req)

	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Contains(t, res.Body.String(), "Invalid or inactive API key")
}

func TestRequireAPIKeyValid(t *testing.T) {
	mw, tokens, registry := newGate(t)

	apiKey, err := tokens.Issue(token.Identity{ID: 7, Email: "a@x.com"})
	require.NoError(t, err)
	require.NoError(t, registry.Activate(context.Background(), apiKey))

	var got token.Identity
	req := httptest.NewRequest(http.MethodGet, "/tasks?apiKey="+apiKey, nil)
	res := httptest.NewRecorder()
	mw.RequireAPIKey(echoIdentity(&got)).ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, "a@x.com", got.Email)
}

func TestRequireAPIKeyBearerHeader(t *testing.T) {
	mw, tokens, registry := newGate(t)

	apiKey, err := tokens.Issue(token.Identity{ID: 3, Email: "b@x.com"})
	require.NoError(t, err)
	require.NoError(t, registry.Activate(context.Background(), apiKey))

	var got token.Identity
	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+apiKey)
	res := httptest.NewRecorder()
	mw.RequireAPIKey(echoIdentity(&got)).ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, int64(3), got.ID)
}
