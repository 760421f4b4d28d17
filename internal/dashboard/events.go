package dashboard

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/alexonufrak/dashboard-api/internal/models"
	"github.com/alexonufrak/dashboard-api/recorddb"
)

func (m *Manager) eventModel(ctx context.Context, row recorddb.Event) models.Event {
	event := models.Event{
		ID:              row.ID,
		Name:            row.Name,
		Description:     row.Description,
		Location:        row.Location,
		StartDateTime:   row.StartDateTime,
		EndDateTime:     row.EndDateTime,
		RegistrationURL: row.RegistrationURL,
		PointValue:      row.PointValue,
		CohortIDs:       []string{},
	}
	if cohortIDs, err := m.DB.QueryCohortIDsForEvent(ctx, row.ID); err == nil {
		event.CohortIDs = append(event.CohortIDs, cohortIDs...)
	}
	return event
}

// UpcomingEvents lists events that have not started yet, soonest first.
func (m *Manager) UpcomingEvents(ctx context.Context) ([]models.Event, error) {
	return cached(m, "events_upcoming", func() ([]models.Event, error) {
		rows, err := m.DB.QueryUpcomingEvents(ctx, time.Now().UTC().Format(time.RFC3339))
		if err != nil {
			return nil, err
		}

		events := make([]models.Event, 0, len(rows))
		for _, row := range rows {
			events = append(events, m.eventModel(ctx, row))
		}
		return events, nil
	})
}

// Event retrieves a single event.
func (m *Manager) Event(ctx context.Context, eventID string) (models.Event, error) {
	return cached(m, "event_"+eventID, func() (models.Event, error) {
		row, err := m.DB.GetEvent(ctx, eventID)
		if errors.Is(err, sql.ErrNoRows) {
			return models.Event{}, ErrNotFound
		}
		if err != nil {
			return models.Event{}, err
		}
		return m.eventModel(ctx, row), nil
	})
}
