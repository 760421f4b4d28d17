// Package identity validates bearer sessions against the external identity
// provider. Tokens are opaque to this service; validation is delegated to
// the provider's userinfo endpoint, with a short-lived verification cache so
// each request does not round-trip.
package identity

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/alexonufrak/dashboard-api/internal/logging"
)

// ErrInvalidToken is returned when the provider rejects a session token.
var ErrInvalidToken = errors.New("identity: invalid session token")

// Identity is the provider's view of an authenticated user.
type Identity struct {
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Client verifies sessions and fetches management credentials from the
// identity provider.
type Client struct {
	domain       string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	logger       *slog.Logger

	mu            sync.Mutex
	verified      map[string]verifiedEntry
	mgmtToken     string
	mgmtExpiresAt time.Time
}

type verifiedEntry struct {
	identity  Identity
	expiresAt time.Time
}

// verificationTTL bounds how long a validated token is trusted without
// re-checking with the provider.
const verificationTTL = 5 * time.Minute

// Config holds the settings for a Client.
type Config struct {
	Domain       string
	ClientID     string
	ClientSecret string
	Logger       *slog.Logger
}

// NewClient creates a Client for the given provider tenant domain.
func NewClient(config Config) *Client {
	return &Client{
		domain:       strings.TrimSuffix(config.Domain, "/"),
		clientID:     config.ClientID,
		clientSecret: config.ClientSecret,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger:   config.Logger,
		verified: make(map[string]verifiedEntry),
	}
}

// ValidateToken checks a bearer token with the provider and returns the
// authenticated identity. Recently validated tokens are answered from the
// verification cache.
func (c *Client) ValidateToken(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, ErrInvalidToken
	}

	key := tokenCacheKey(token)

	c.mu.Lock()
	if entry, ok := c.verified[key]; ok {
		if time.Now().Before(entry.expiresAt) {
			c.mu.Unlock()
			return entry.identity, nil
		}
		delete(c.verified, key)
	}
	c.mu.Unlock()

	identity, err := c.fetchUserInfo(ctx, token)
	if err != nil {
		return Identity{}, err
	}

	c.mu.Lock()
	// Sweep stale entries so the map stays bounded by active sessions.
	now := time.Now()
	for k, entry := range c.verified {
		if now.After(entry.expiresAt) {
			delete(c.verified, k)
		}
	}
	c.verified[key] = verifiedEntry{
		identity:  identity,
		expiresAt: now.Add(verificationTTL),
	}
	c.mu.Unlock()

	return identity, nil
}

func (c *Client) fetchUserInfo(ctx context.Context, token string) (Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/userinfo"), nil)
	if err != nil {
		return Identity{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Identity{}, err
	}
	defer logging.SafeCloseWithLogging(resp.Body, c.logger, "userinfo_response_body")

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return Identity{}, ErrInvalidToken
	}
	if resp.StatusCode != http.StatusOK {
		return Identity{}, fmt.Errorf("identity: userinfo returned status %d", resp.StatusCode)
	}

	var identity Identity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return Identity{}, fmt.Errorf("identity: decoding userinfo: %w", err)
	}
	if identity.Sub == "" {
		return Identity{}, ErrInvalidToken
	}
	return identity, nil
}

// ManagementToken returns a management API token for the tenant, fetching a
// fresh one via client credentials when the cached token is near expiry.
func (c *Client) ManagementToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.mgmtToken != "" && time.Now().Before(c.mgmtExpiresAt.Add(-time.Minute)) {
		token := c.mgmtToken
		c.mu.Unlock()
		return token, nil
	}
	c.mu.Unlock()

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("audience", c.endpoint("/api/v2/"))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/oauth/token"),
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer logging.SafeCloseWithLogging(resp.Body, c.logger, "token_response_body")

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("identity: token endpoint returned status %d", resp.StatusCode)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("identity: decoding token response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", errors.New("identity: token response missing access_token")
	}

	c.mu.Lock()
	c.mgmtToken = payload.AccessToken
	c.mgmtExpiresAt = time.Now().Add(time.Duration(payload.ExpiresIn) * time.Second)
	c.mu.Unlock()

	return payload.AccessToken, nil
}

// UpdateUser patches user attributes through the provider's management API.
// Used to keep the provider's name fields in line with profile edits.
func (c *Client) UpdateUser(ctx context.Context, userID string, attrs map[string]any) error {
	token, err := c.ManagementToken(ctx)
	if err != nil {
		return err
	}

	body, err := json.Marshal(attrs)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch,
		c.endpoint("/api/v2/users/"+url.PathEscape(userID)), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer logging.SafeCloseWithLogging(resp.Body, c.logger, "update_user_response_body")

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("identity: user update returned status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) endpoint(path string) string {
	domain := c.domain
	if !strings.HasPrefix(domain, "http://") && !strings.HasPrefix(domain, "https://") {
		domain = "https://" + domain
	}
	return domain + path
}

// tokenCacheKey hashes the raw token so session material is not held in the
// cache map.
func tokenCacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
