package dashboard

import (
	"context"
	"database/sql"
	"errors"

	"github.com/alexonufrak/dashboard-api/internal/models"
	"github.com/alexonufrak/dashboard-api/recorddb"
)

func contactModel(c recorddb.Contact) models.Contact {
	return models.Contact{
		ID:        c.ID,
		AuthID:    c.AuthID,
		Email:     c.Email,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		AvatarURL: c.AvatarURL,
		Bio:       c.Bio,
		Major:     c.Major,
		GradYear:  c.GradYear,
		Onboarded: c.Onboarded,
		TeamIDs:   []string{},
		CohortIDs: []string{},
	}
}

// ContactForAuthID resolves the contact record linked to an identity
// subject, filling in team links and the point total.
func (m *Manager) ContactForAuthID(ctx context.Context, authID string) (models.Contact, error) {
	return cached(m, "contact_auth_"+authID, func() (models.Contact, error) {
		row, err := m.DB.GetContactByAuthID(ctx, authID)
		if errors.Is(err, sql.ErrNoRows) {
			return models.Contact{}, ErrNotFound
		}
		if err != nil {
			return models.Contact{}, err
		}
		return m.decorateContact(ctx, row)
	})
}

// Contact retrieves a contact by record ID.
func (m *Manager) Contact(ctx context.Context, contactID string) (models.Contact, error) {
	return cached(m, "contact_"+contactID, func() (models.Contact, error) {
		row, err := m.DB.GetContact(ctx, contactID)
		if errors.Is(err, sql.ErrNoRows) {
			return models.Contact{}, ErrNotFound
		}
		if err != nil {
			return models.Contact{}, err
		}
		return m.decorateContact(ctx, row)
	})
}

func (m *Manager) decorateContact(ctx context.Context, row recorddb.Contact) (models.Contact, error) {
	contact := contactModel(row)

	teams, err := m.DB.QueryTeamsForContact(ctx, row.ID)
	if err != nil {
		return models.Contact{}, err
	}
	for _, t := range teams {
		contact.TeamIDs = append(contact.TeamIDs, t.ID)
	}

	total, err := m.DB.GetPointTotalForContact(ctx, row.ID)
	if err != nil {
		return models.Contact{}, err
	}
	contact.PointsTotal = total

	return contact, nil
}

// UpdateContactProfile patches profile fields on the contact's spreadsheet
// record and writes the result through to the mirror.
func (m *Manager) UpdateContactProfile(ctx context.Context, contactID string, fields map[string]any) (models.Contact, error) {
	record, err := m.Sheets.UpdateRecord(ctx, tableContacts, contactID, fields)
	if err != nil {
		return models.Contact{}, err
	}

	updated := recorddb.Contact{
		ID:        record.ID,
		AuthID:    record.String("AuthID"),
		Email:     record.String("Email"),
		FirstName: record.String("First Name"),
		LastName:  record.String("Last Name"),
		AvatarURL: record.String("Avatar URL"),
		Bio:       record.String("Bio"),
		Major:     record.String("Major"),
		GradYear:  record.Int("Graduation Year"),
		Onboarded: record.Bool("Onboarded"),
	}
	if err := m.DB.WithTx(ctx, func(tx *sql.Tx) error {
		return recorddb.UpsertContact(tx, updated)
	}); err != nil {
		return models.Contact{}, err
	}

	m.InvalidateCacheType("contacts")

	return m.decorateContact(ctx, updated)
}
