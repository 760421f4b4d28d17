package recorddb

import (
	"context"
	"database/sql"
	"fmt"
)

const contactColumns = `contact_id, auth_id, email, first_name, last_name,
		avatar_url, bio, major, grad_year, onboarded`

func scanContact(row interface{ Scan(...any) error }) (Contact, error) {
	var c Contact
	err := row.Scan(&c.ID, &c.AuthID, &c.Email, &c.FirstName, &c.LastName,
		&c.AvatarURL, &c.Bio, &c.Major, &c.GradYear, &c.Onboarded)
	return c, err
}

// GetContact retrieves a single contact by record ID.
func (c *Client) GetContact(ctx context.Context, contactID string) (Contact, error) {
	row := c.DB.QueryRowContext(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE contact_id = ?`, contactID)
	return scanContact(row)
}

// GetContactByAuthID retrieves the contact linked to an identity-provider
// subject, the lookup performed on every authenticated request.
func (c *Client) GetContactByAuthID(ctx context.Context, authID string) (Contact, error) {
	row := c.DB.QueryRowContext(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE auth_id = ?`, authID)
	return scanContact(row)
}

// GetContactsByIDs retrieves the contacts for the given record IDs.
func (c *Client) GetContactsByIDs(ctx context.Context, ids []string) ([]Contact, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + contactColumns + ` FROM contacts WHERE contact_id IN (?` +
		repeatPlaceholder(len(ids)-1) + `)`
	rows, err := c.DB.QueryContext(ctx, query, toAnySlice(ids)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var contacts []Contact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}
	return contacts, rows.Err()
}

// UpsertContact inserts or replaces a contact row within a sync transaction.
func UpsertContact(tx *sql.Tx, contact Contact) error {
	_, err := tx.Exec(`
		INSERT OR REPLACE INTO contacts (
			contact_id, auth_id, email, first_name, last_name,
			avatar_url, bio, major, grad_year, onboarded
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`,
		contact.ID, contact.AuthID, contact.Email, contact.FirstName, contact.LastName,
		contact.AvatarURL, contact.Bio, contact.Major, contact.GradYear, contact.Onboarded,
	)
	if err != nil {
		return fmt.Errorf("error inserting contact: %w", err)
	}
	return nil
}

// repeatPlaceholder returns ", ?" repeated n times for IN clauses.
func repeatPlaceholder(n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += ", ?"
	}
	return out
}

func toAnySlice(ids []string) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}
