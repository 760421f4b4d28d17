package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

func requestWithParams(params httprouter.Params) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := context.WithValue(r.Context(), httprouter.ParamsKey, params)
	return r.WithContext(ctx)
}

func TestExtractIDFromParams(t *testing.T) {
	r := requestWithParams(httprouter.Params{{Key: "id", Value: "recAbc123Def456Gh.json"}})
	assert.Equal(t, "recAbc123Def456Gh", ExtractIDFromParams(r, "id"))

	r = requestWithParams(httprouter.Params{{Key: "id", Value: "recAbc123Def456Gh"}})
	assert.Equal(t, "recAbc123Def456Gh", ExtractIDFromParams(r, "id"))
}

func TestExtractBearerToken(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", ExtractBearerToken(r))

	r.Header.Set("Authorization", "Bearer abc123")
	assert.Equal(t, "abc123", ExtractBearerToken(r))

	r.Header.Set("Authorization", "bearer xyz")
	assert.Equal(t, "xyz", ExtractBearerToken(r))

	r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	assert.Equal(t, "", ExtractBearerToken(r))
}

func TestExtractPaginationParams(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?limit=20&offset=40", nil)
	limit, offset := ExtractPaginationParams(r, 50, 100)
	assert.Equal(t, 20, limit)
	assert.Equal(t, 40, offset)

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	limit, offset = ExtractPaginationParams(r, 50, 100)
	assert.Equal(t, 50, limit)
	assert.Equal(t, 0, offset)

	r = httptest.NewRequest(http.MethodGet, "/?limit=9999&offset=-2", nil)
	limit, offset = ExtractPaginationParams(r, 50, 100)
	assert.Equal(t, 100, limit)
	assert.Equal(t, 0, offset)
}
