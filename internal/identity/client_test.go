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

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(Config{
		Domain:       server.URL,
		ClientID:     "client-id",
		ClientSecret: "client-secret",
	})
}

func TestValidateToken(t *testing.T) {
	calls := 0
	client := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		require.Equal(t, "/userinfo", r.URL.Path)
		require.Equal(t, "Bearer good-token", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(Identity{
			Sub:   "auth0|12345",
			Email: "ada@example.test",
			Name:  "Ada Lovelace",
		})
	})

	identity, err := client.ValidateToken(context.Background(), "good-token")
	require.NoError(t, err)
	assert.Equal(t, "auth0|12345", identity.Sub)
	assert.Equal(t, "ada@example.test", identity.Email)

	// Second validation is served from the verification cache.
	_, err = client.ValidateToken(context.Background(), "good-token")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestValidateTokenRejected(t *testing.T) {
	client := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.ValidateToken(context.Background(), "bad-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenEmpty(t *testing.T) {
	client := NewClient(Config{Domain: "example.auth.test"})

	_, err := client.ValidateToken(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenMissingSub(t *testing.T) {
	client := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := client.ValidateToken(context.Background(), "weird-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManagementTokenCaching(t *testing.T) {
	calls := 0
	client := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		require.Equal(t, "/oauth/token", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		assert.Equal(t, "client-id", r.PostForm.Get("client_id"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "mgmt-token",
			"expires_in":   3600,
		})
	})

	token, err := client.ManagementToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "mgmt-token", token)

	token, err = client.ManagementToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "mgmt-token", token)
	assert.Equal(t, 1, calls)
}

func TestValidateTokenDropsExpiredEntries(t *testing.T) {
	client := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Identity{Sub: "auth0|12345"})
	})

	client.mu.Lock()
	client.verified["stale"] = verifiedEntry{expiresAt: time.Now().Add(-time.Minute)}
	client.mu.Unlock()

	_, err := client.ValidateToken(context.Background(), "fresh-token")
	require.NoError(t, err)

	client.mu.Lock()
	defer client.mu.Unlock()
	_, ok := client.verified["stale"]
	assert.False(t, ok)
	assert.Len(t, client.verified, 1)
}

func TestUpdateUser(t *testing.T) {
	var patched map[string]any
	client := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/oauth/token":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"access_token": "mgmt-token",
				"expires_in":   3600,
			})
		case "/api/v2/users/auth0|12345":
			require.Equal(t, http.MethodPatch, r.Method)
			require.Equal(t, "Bearer mgmt-token", r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&patched))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	err := client.UpdateUser(context.Background(), "auth0|12345", map[string]any{
		"given_name": "Ada", "family_name": "Byron",
	})
	require.NoError(t, err)
	assert.Equal(t, "Byron", patched["family_name"])
}

func TestUpdateUserErrorStatus(t *testing.T) {
	client := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/oauth/token" {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"access_token": "mgmt-token",
				"expires_in":   3600,
			})
			return
		}
		w.WriteHeader(http.StatusBadRequest)
	})

	err := client.UpdateUser(context.Background(), "auth0|12345", map[string]any{"name": "x"})
	assert.Error(t, err)
}

func TestManagementTokenErrorStatus(t *testing.T) {
	client := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := client.ManagementToken(context.Background())
	assert.Error(t, err)
}
