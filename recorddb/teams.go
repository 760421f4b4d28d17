package recorddb

import (
	"context"
	"database/sql"
	"fmt"
)

// GetTeam retrieves a single team by record ID.
func (c *Client) GetTeam(ctx context.Context, teamID string) (Team, error) {
	var t Team
	err := c.DB.QueryRowContext(ctx,
		`SELECT team_id, name, description, image_url FROM teams WHERE team_id = ?`, teamID).
		Scan(&t.ID, &t.Name, &t.Description, &t.ImageURL)
	return t, err
}

// QueryTeamsForCohort retrieves all teams linked to a cohort.
func (c *Client) QueryTeamsForCohort(ctx context.Context, cohortID string) ([]Team, error) {
	rows, err := c.DB.QueryContext(ctx,
		`SELECT t.team_id, t.name, t.description, t.image_url
				FROM teams t
				JOIN team_cohorts tc ON tc.team_id = t.team_id
				WHERE tc.cohort_id = ?
				ORDER BY t.name`, cohortID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var teams []Team
	for rows.Next() {
		var t Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.ImageURL); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// QueryTeamsForContact retrieves all teams a contact is rostered on.
func (c *Client) QueryTeamsForContact(ctx context.Context, contactID string) ([]Team, error) {
	rows, err := c.DB.QueryContext(ctx,
		`SELECT t.team_id, t.name, t.description, t.image_url
				FROM teams t
				JOIN team_members tm ON tm.team_id = t.team_id
				WHERE tm.contact_id = ? AND tm.status != 'Inactive'
				ORDER BY t.name`, contactID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var teams []Team
	for rows.Next() {
		var t Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.ImageURL); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// QueryTeamMembers retrieves the roster for a team.
func (c *Client) QueryTeamMembers(ctx context.Context, teamID string) ([]TeamMember, error) {
	rows, err := c.DB.QueryContext(ctx,
		`SELECT team_id, contact_id, role, status
				FROM team_members WHERE team_id = ?`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var members []TeamMember
	for rows.Next() {
		var m TeamMember
		if err := rows.Scan(&m.TeamID, &m.ContactID, &m.Role, &m.Status); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// QueryCohortIDsForTeam retrieves the cohort links for a team.
func (c *Client) QueryCohortIDsForTeam(ctx context.Context, teamID string) ([]string, error) {
	rows, err := c.DB.QueryContext(ctx,
		`SELECT cohort_id FROM team_cohorts WHERE team_id = ?`, teamID)
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

// UpsertTeam inserts or replaces a team row within a sync transaction.
func UpsertTeam(tx *sql.Tx, team Team) error {
	_, err := tx.Exec(`
		INSERT OR REPLACE INTO teams (team_id, name, description, image_url)
		VALUES (?, ?, ?, ?);
	`, team.ID, team.Name, team.Description, team.ImageURL)
	if err != nil {
		return fmt.Errorf("error inserting team: %w", err)
	}
	return nil
}

// UpsertTeamCohort links a team to a cohort within a sync transaction.
func UpsertTeamCohort(tx *sql.Tx, teamID, cohortID string) error {
	_, err := tx.Exec(`
		INSERT OR REPLACE INTO team_cohorts (team_id, cohort_id) VALUES (?, ?);
	`, teamID, cohortID)
	if err != nil {
		return fmt.Errorf("error inserting team cohort link: %w", err)
	}
	return nil
}

// UpsertTeamMember inserts or replaces a roster row within a sync transaction.
func UpsertTeamMember(tx *sql.Tx, member TeamMember) error {
	_, err := tx.Exec(`
		INSERT OR REPLACE INTO team_members (team_id, contact_id, role, status)
		VALUES (?, ?, ?, ?);
	`, member.TeamID, member.ContactID, member.Role, member.Status)
	if err != nil {
		return fmt.Errorf("error inserting team member: %w", err)
	}
	return nil
}
