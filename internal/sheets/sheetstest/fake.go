// Package sheetstest provides an in-memory fake of the spreadsheet-database
// service for tests.
package sheetstest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/alexonufrak/dashboard-api/internal/sheets"
)

// Base is a fake spreadsheet base. It serves list/get/create/update in the
// service's wire shape.
type Base struct {
	mu     sync.Mutex
	tables map[string][]sheets.Record
	nextID int

	failAll bool
}

func NewBase() *Base {
	return &Base{tables: map[string][]sheets.Record{}, nextID: 1}
}

// SetFailAll makes every request answer 500, for sync-failure tests.
func (b *Base) SetFailAll(fail bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failAll = fail
}

// Seed appends records to a table.
func (b *Base) Seed(table string, records ...sheets.Record) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tables[table] = append(b.tables[table], records...)
}

// Handler serves the record API for any base ID.
func (b *Base) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()

		if b.failAll {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		// Path: /{baseID}/{table}[/{recordID}]
		parts := strings.SplitN(strings.TrimPrefix(r.URL.Path, "/"), "/", 3)
		if len(parts) < 2 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		table := parts[1]
		records := b.tables[table]

		switch {
		case r.Method == http.MethodGet && len(parts) == 2:
			_ = json.NewEncoder(w).Encode(map[string]any{"records": records})

		case r.Method == http.MethodGet && len(parts) == 3:
			for _, record := range records {
				if record.ID == parts[2] {
					_ = json.NewEncoder(w).Encode(record)
					return
				}
			}
			writeNotFound(w)

		case r.Method == http.MethodPost:
			var payload struct {
				Fields map[string]any `json:"fields"`
			}
			_ = json.NewDecoder(r.Body).Decode(&payload)
			record := sheets.Record{
				ID:          fmt.Sprintf("recFake%07dXYZ", b.nextID),
				CreatedTime: "2026-08-01T00:00:00Z",
				Fields:      payload.Fields,
			}
			b.nextID++
			b.tables[table] = append(records, record)
			_ = json.NewEncoder(w).Encode(record)

		case r.Method == http.MethodPatch && len(parts) == 3:
			var payload struct {
				Fields map[string]any `json:"fields"`
			}
			_ = json.NewDecoder(r.Body).Decode(&payload)
			for i, record := range records {
				if record.ID == parts[2] {
					for k, v := range payload.Fields {
						record.Fields[k] = v
					}
					b.tables[table][i] = record
					_ = json.NewEncoder(w).Encode(record)
					return
				}
			}
			writeNotFound(w)

		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
}

func writeNotFound(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(`{"error":{"type":"NOT_FOUND","message":"record not found"}}`))
}

// SeedDashboard loads the standard fixture: two contacts, one program with
// one cohort, one team whose lead is the first contact, a milestone, a
// reward, and a 100 point ledger entry for the first contact.
func SeedDashboard(b *Base) {
	b.Seed("Contacts",
		sheets.Record{ID: "recCont00000001XY", Fields: map[string]any{
			"AuthID": "auth0|1", "Email": "ada@example.test",
			"First Name": "Ada", "Last Name": "Lovelace", "Onboarded": true,
		}},
		sheets.Record{ID: "recCont00000002XY", Fields: map[string]any{
			"AuthID": "auth0|2", "Email": "alan@example.test",
			"First Name": "Alan", "Last Name": "Turing",
		}},
	)
	b.Seed("Programs", sheets.Record{ID: "recProg00000001XY", Fields: map[string]any{
		"Name": "Accelerator", "Active": true,
	}})
	b.Seed("Cohorts", sheets.Record{ID: "recCoh000000001XY", Fields: map[string]any{
		"Name": "Fall 2026", "Status": "Active", "Start Date": "2026-09-01",
		"Program": []any{"recProg00000001XY"},
	}})
	b.Seed("Teams", sheets.Record{ID: "recTeam00000001XY", Fields: map[string]any{
		"Name": "Alpha", "Cohorts": []any{"recCoh000000001XY"},
	}})
	b.Seed("Members", sheets.Record{ID: "recMemb00000001XY", Fields: map[string]any{
		"Team": []any{"recTeam00000001XY"}, "Contact": []any{"recCont00000001XY"},
		"Role": "Lead", "Status": "Active",
	}})
	b.Seed("Events", sheets.Record{ID: "recEvnt00000001XY", Fields: map[string]any{
		"Name": "Demo Day", "Location": "Main Hall",
		"Start Date": "2099-05-01T17:00:00Z", "End Date": "2099-05-01T20:00:00Z",
		"Point Value": float64(20), "Cohorts": []any{"recCoh000000001XY"},
	}})
	b.Seed("Milestones", sheets.Record{ID: "recMile00000001XY", Fields: map[string]any{
		"Name": "MVP", "Number": float64(1), "Due Date": "2099-10-01",
		"Point Value": float64(100), "Cohort": []any{"recCoh000000001XY"},
	}})
	b.Seed("Rewards", sheets.Record{ID: "recRewd00000001XY", Fields: map[string]any{
		"Name": "Sticker Pack", "Cost": float64(30), "Available": true, "Inventory": float64(5),
	}})
	b.Seed("Point Transactions", sheets.Record{ID: "recTxn000000001XY", Fields: map[string]any{
		"Contact": []any{"recCont00000001XY"}, "Team": []any{"recTeam00000001XY"},
		"Amount": float64(100), "Reason": "Milestone 1",
	}})
}
