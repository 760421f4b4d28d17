package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(Config{
		BaseURL:           server.URL,
		BaseID:            "appTESTBASE",
		Token:             "pat_test",
		RequestsPerSecond: 100,
	})
}

func TestListRecordsFollowsPagination(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "Bearer pat_test", r.Header.Get("Authorization"))
		assert.Equal(t, "/appTESTBASE/Teams", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("offset") == "" {
			_ = json.NewEncoder(w).Encode(listResponse{
				Records: []Record{{ID: "rec1", Fields: map[string]any{"Name": "Alpha"}}},
				Offset:  "page2",
			})
			return
		}
		_ = json.NewEncoder(w).Encode(listResponse{
			Records: []Record{{ID: "rec2", Fields: map[string]any{"Name": "Beta"}}},
		})
	})

	records, err := client.ListRecords(context.Background(), "Teams", ListOptions{})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "Alpha", records[0].String("Name"))
	assert.Equal(t, "Beta", records[1].String("Name"))
}

func TestListRecordsSendsFilterAndView(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "{Status}='Active'", r.URL.Query().Get("filterByFormula"))
		assert.Equal(t, "Grid view", r.URL.Query().Get("view"))
		assert.Equal(t, []string{"Name", "Status"}, r.URL.Query()["fields[]"])
		_ = json.NewEncoder(w).Encode(listResponse{})
	})

	_, err := client.ListRecords(context.Background(), "Teams", ListOptions{
		FilterFormula: "{Status}='Active'",
		View:          "Grid view",
		Fields:        []string{"Name", "Status"},
	})
	require.NoError(t, err)
}

func TestListRecordsHonorsMaxRecords(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(listResponse{
			Records: []Record{{ID: "rec1"}, {ID: "rec2"}, {ID: "rec3"}},
			Offset:  "more",
		})
	})

	records, err := client.ListRecords(context.Background(), "Teams", ListOptions{MaxRecords: 2})
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestGetRecordNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"type":"NOT_FOUND","message":"record not found"}}`))
	})

	_, err := client.GetRecord(context.Background(), "Teams", "recMissing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", apiErr.Type)
	assert.Equal(t, "record not found", apiErr.Message)
}

func TestCreateRecordPostsFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload struct {
			Fields map[string]any `json:"fields"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "New Team", payload.Fields["Name"])

		_ = json.NewEncoder(w).Encode(Record{ID: "recNew", Fields: payload.Fields})
	})

	record, err := client.CreateRecord(context.Background(), "Teams", map[string]any{"Name": "New Team"})
	require.NoError(t, err)
	assert.Equal(t, "recNew", record.ID)
}

func TestRetryAfterRateLimit(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_ = json.NewEncoder(w).Encode(Record{ID: "rec1"})
	})

	record, err := client.GetRecord(context.Background(), "Teams", "rec1")
	require.NoError(t, err)
	assert.Equal(t, "rec1", record.ID)
	assert.Equal(t, 2, calls)
}

func TestRecordFieldAccessors(t *testing.T) {
	record := Record{
		Fields: map[string]any{
			"Name":    "Alpha",
			"Points":  float64(42),
			"Active":  true,
			"Members": []any{"recA", "recB"},
			"Files": []any{
				map[string]any{"url": "https://files.test/one.pdf"},
			},
		},
	}

	assert.Equal(t, "Alpha", record.String("Name"))
	assert.Equal(t, 42, record.Int("Points"))
	assert.True(t, record.Bool("Active"))
	assert.Equal(t, []string{"recA", "recB"}, record.LinkedIDs("Members"))
	assert.Equal(t, []string{"https://files.test/one.pdf"}, record.AttachmentURLs("Files"))

	// Absent or mistyped fields degrade to zero values.
	assert.Equal(t, "", record.String("Missing"))
	assert.Equal(t, 0, record.Int("Name"))
	assert.Empty(t, record.LinkedIDs("Name"))
}
