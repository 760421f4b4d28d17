package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// Record is one row of a table. Fields is the raw field map; use the typed
// accessors to read individual fields.
type Record struct {
	ID          string         `json:"id"`
	CreatedTime string         `json:"createdTime"`
	Fields      map[string]any `json:"fields"`
}

// String returns the named field as a string, or "" when absent or not a string.
func (r Record) String(field string) string {
	s, _ := r.Fields[field].(string)
	return s
}

// Int returns the named field as an int. Numbers arrive as float64 from JSON.
func (r Record) Int(field string) int {
	f, _ := r.Fields[field].(float64)
	return int(f)
}

// Bool returns the named field as a bool, or false when absent.
func (r Record) Bool(field string) bool {
	b, _ := r.Fields[field].(bool)
	return b
}

// LinkedIDs returns the named field as a slice of linked record IDs. Linked
// records arrive as an array of strings; anything else yields an empty slice.
func (r Record) LinkedIDs(field string) []string {
	raw, ok := r.Fields[field].([]any)
	if !ok {
		return []string{}
	}
	ids := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			ids = append(ids, s)
		}
	}
	return ids
}

// AttachmentURLs returns the URLs of an attachment field.
func (r Record) AttachmentURLs(field string) []string {
	raw, ok := r.Fields[field].([]any)
	if !ok {
		return []string{}
	}
	urls := make([]string, 0, len(raw))
	for _, v := range raw {
		if m, ok := v.(map[string]any); ok {
			if u, ok := m["url"].(string); ok {
				urls = append(urls, u)
			}
		}
	}
	return urls
}

// ListOptions narrows a ListRecords call.
type ListOptions struct {
	// FilterFormula is the service's filter expression language, passed
	// through verbatim.
	FilterFormula string

	// View restricts results to a named view's rows and order.
	View string

	// Fields limits which fields are returned.
	Fields []string

	// MaxRecords caps the total number of records fetched across pages.
	MaxRecords int
}

type listResponse struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset"`
}

// ListRecords fetches all records of a table, following pagination offsets
// until the service stops returning one or MaxRecords is reached.
func (c *Client) ListRecords(ctx context.Context, table string, opts ListOptions) ([]Record, error) {
	var all []Record
	offset := ""

	for {
		query := url.Values{}
		if opts.FilterFormula != "" {
			query.Set("filterByFormula", opts.FilterFormula)
		}
		if opts.View != "" {
			query.Set("view", opts.View)
		}
		for _, f := range opts.Fields {
			query.Add("fields[]", f)
		}
		if offset != "" {
			query.Set("offset", offset)
		}

		rawURL := c.tableURL(table, "")
		if encoded := query.Encode(); encoded != "" {
			rawURL += "?" + encoded
		}

		body, err := c.doRequest(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}

		var page listResponse
		if err := c.decode(body, &page); err != nil {
			return nil, err
		}

		all = append(all, page.Records...)

		if opts.MaxRecords > 0 && len(all) >= opts.MaxRecords {
			return all[:opts.MaxRecords], nil
		}
		if page.Offset == "" {
			return all, nil
		}
		offset = page.Offset
	}
}

// GetRecord fetches a single record by ID.
func (c *Client) GetRecord(ctx context.Context, table, recordID string) (Record, error) {
	body, err := c.doRequest(ctx, http.MethodGet, c.tableURL(table, recordID), nil)
	if err != nil {
		return Record{}, err
	}

	var record Record
	if err := c.decode(body, &record); err != nil {
		return Record{}, err
	}
	return record, nil
}

// CreateRecord creates a record with the given fields and returns it.
func (c *Client) CreateRecord(ctx context.Context, table string, fields map[string]any) (Record, error) {
	payload, err := json.Marshal(map[string]any{"fields": fields})
	if err != nil {
		return Record{}, err
	}

	body, err := c.doRequest(ctx, http.MethodPost, c.tableURL(table, ""), payload)
	if err != nil {
		return Record{}, err
	}

	var record Record
	if err := c.decode(body, &record); err != nil {
		return Record{}, err
	}
	return record, nil
}

// UpdateRecord patches the given fields on a record and returns the updated
// record. Fields not named in the map are left untouched.
func (c *Client) UpdateRecord(ctx context.Context, table, recordID string, fields map[string]any) (Record, error) {
	payload, err := json.Marshal(map[string]any{"fields": fields})
	if err != nil {
		return Record{}, err
	}

	body, err := c.doRequest(ctx, http.MethodPatch, c.tableURL(table, recordID), payload)
	if err != nil {
		return Record{}, err
	}

	var record Record
	if err := c.decode(body, &record); err != nil {
		return Record{}, err
	}
	return record, nil
}

// DeleteRecord deletes a record by ID.
func (c *Client) DeleteRecord(ctx context.Context, table, recordID string) error {
	_, err := c.doRequest(ctx, http.MethodDelete, c.tableURL(table, recordID), nil)
	return err
}
