package recorddb

import (
	"context"
	"database/sql"
	"fmt"
)

// QueryPrograms retrieves all programs, active ones first.
func (c *Client) QueryPrograms(ctx context.Context) ([]Program, error) {
	rows, err := c.DB.QueryContext(ctx,
		`SELECT program_id, name, description, institution, active
				FROM programs ORDER BY active DESC, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var programs []Program
	for rows.Next() {
		var p Program
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Institution, &p.Active); err != nil {
			return nil, err
		}
		programs = append(programs, p)
	}
	return programs, rows.Err()
}

// GetProgram retrieves a single program by record ID.
func (c *Client) GetProgram(ctx context.Context, programID string) (Program, error) {
	var p Program
	err := c.DB.QueryRowContext(ctx,
		`SELECT program_id, name, description, institution, active
				FROM programs WHERE program_id = ?`, programID).
		Scan(&p.ID, &p.Name, &p.Description, &p.Institution, &p.Active)
	return p, err
}

// QueryCohortsForProgram retrieves the cohorts belonging to a program,
// newest first.
func (c *Client) QueryCohortsForProgram(ctx context.Context, programID string) ([]Cohort, error) {
	rows, err := c.DB.QueryContext(ctx,
		`SELECT cohort_id, program_id, name, short_name, status, start_date, end_date
				FROM cohorts WHERE program_id = ? ORDER BY start_date DESC`, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var cohorts []Cohort
	for rows.Next() {
		var co Cohort
		if err := rows.Scan(&co.ID, &co.ProgramID, &co.Name, &co.ShortName,
			&co.Status, &co.StartDate, &co.EndDate); err != nil {
			return nil, err
		}
		cohorts = append(cohorts, co)
	}
	return cohorts, rows.Err()
}

// GetCohort retrieves a single cohort by record ID.
func (c *Client) GetCohort(ctx context.Context, cohortID string) (Cohort, error) {
	var co Cohort
	err := c.DB.QueryRowContext(ctx,
		`SELECT cohort_id, program_id, name, short_name, status, start_date, end_date
				FROM cohorts WHERE cohort_id = ?`, cohortID).
		Scan(&co.ID, &co.ProgramID, &co.Name, &co.ShortName, &co.Status, &co.StartDate, &co.EndDate)
	return co, err
}

// UpsertProgram inserts or replaces a program row within a sync transaction.
func UpsertProgram(tx *sql.Tx, program Program) error {
	_, err := tx.Exec(`
		INSERT OR REPLACE INTO programs (program_id, name, description, institution, active)
		VALUES (?, ?, ?, ?, ?);
	`, program.ID, program.Name, program.Description, program.Institution, program.Active)
	if err != nil {
		return fmt.Errorf("error inserting program: %w", err)
	}
	return nil
}

// UpsertCohort inserts or replaces a cohort row within a sync transaction.
func UpsertCohort(tx *sql.Tx, cohort Cohort) error {
	_, err := tx.Exec(`
		INSERT OR REPLACE INTO cohorts (cohort_id, program_id, name, short_name, status, start_date, end_date)
		VALUES (?, ?, ?, ?, ?, ?, ?);
	`, cohort.ID, cohort.ProgramID, cohort.Name, cohort.ShortName, cohort.Status, cohort.StartDate, cohort.EndDate)
	if err != nil {
		return fmt.Errorf("error inserting cohort: %w", err)
	}
	return nil
}
