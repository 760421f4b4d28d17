package recorddb

import (
	"context"
	"database/sql"
	"fmt"
)

// QueryUpcomingEvents retrieves events starting at or after the given
// RFC 3339 timestamp, soonest first. Timestamps are stored in RFC 3339 form
// so lexicographic comparison matches chronological order.
func (c *Client) QueryUpcomingEvents(ctx context.Context, nowRFC3339 string) ([]Event, error) {
	rows, err := c.DB.QueryContext(ctx,
		`SELECT event_id, name, description, location, start_datetime,
				end_datetime, registration_url, point_value
				FROM events WHERE start_datetime >= ?
				ORDER BY start_datetime`, nowRFC3339)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.Location,
			&e.StartDateTime, &e.EndDateTime, &e.RegistrationURL, &e.PointValue); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// GetEvent retrieves a single event by record ID.
func (c *Client) GetEvent(ctx context.Context, eventID string) (Event, error) {
	var e Event
	err := c.DB.QueryRowContext(ctx,
		`SELECT event_id, name, description, location, start_datetime,
				end_datetime, registration_url, point_value
				FROM events WHERE event_id = ?`, eventID).
		Scan(&e.ID, &e.Name, &e.Description, &e.Location,
			&e.StartDateTime, &e.EndDateTime, &e.RegistrationURL, &e.PointValue)
	return e, err
}

// QueryCohortIDsForEvent retrieves the cohort links for an event.
func (c *Client) QueryCohortIDsForEvent(ctx context.Context, eventID string) ([]string, error) {
	rows, err := c.DB.QueryContext(ctx,
		`SELECT cohort_id FROM event_cohorts WHERE event_id = ?`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// UpsertEvent inserts or replaces an event row within a sync transaction.
func UpsertEvent(tx *sql.Tx, event Event) error {
	_, err := tx.Exec(`
		INSERT OR REPLACE INTO events (
			event_id, name, description, location, start_datetime,
			end_datetime, registration_url, point_value
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?);
	`,
		event.ID, event.Name, event.Description, event.Location,
		event.StartDateTime, event.EndDateTime, event.RegistrationURL, event.PointValue,
	)
	if err != nil {
		return fmt.Errorf("error inserting event: %w", err)
	}
	return nil
}

// UpsertEventCohort links an event to a cohort within a sync transaction.
func UpsertEventCohort(tx *sql.Tx, eventID, cohortID string) error {
	_, err := tx.Exec(`
		INSERT OR REPLACE INTO event_cohorts (event_id, cohort_id) VALUES (?, ?);
	`, eventID, cohortID)
	if err != nil {
		return fmt.Errorf("error inserting event cohort link: %w", err)
	}
	return nil
}
