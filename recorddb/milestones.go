package recorddb

import (
	"context"
	"database/sql"
	"fmt"
)

// QueryMilestonesForCohort retrieves a cohort's milestones in sequence order.
func (c *Client) QueryMilestonesForCohort(ctx context.Context, cohortID string) ([]Milestone, error) {
	rows, err := c.DB.QueryContext(ctx,
		`SELECT milestone_id, cohort_id, name, description, number, due_date, point_value
				FROM milestones WHERE cohort_id = ? ORDER BY number`, cohortID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var milestones []Milestone
	for rows.Next() {
		var m Milestone
		if err := rows.Scan(&m.ID, &m.CohortID, &m.Name, &m.Description,
			&m.Number, &m.DueDate, &m.PointValue); err != nil {
			return nil, err
		}
		milestones = append(milestones, m)
	}
	return milestones, rows.Err()
}

// GetMilestone retrieves a single milestone by record ID.
func (c *Client) GetMilestone(ctx context.Context, milestoneID string) (Milestone, error) {
	var m Milestone
	err := c.DB.QueryRowContext(ctx,
		`SELECT milestone_id, cohort_id, name, description, number, due_date, point_value
				FROM milestones WHERE milestone_id = ?`, milestoneID).
		Scan(&m.ID, &m.CohortID, &m.Name, &m.Description, &m.Number, &m.DueDate, &m.PointValue)
	return m, err
}

// QuerySubmissionsForTeam retrieves a team's submissions, newest first.
func (c *Client) QuerySubmissionsForTeam(ctx context.Context, teamID string) ([]Submission, error) {
	return c.querySubmissions(ctx,
		`SELECT submission_id, team_id, milestone_id, contact_id, link, comments, created_time
				FROM submissions WHERE team_id = ? ORDER BY created_time DESC`, teamID)
}

// QuerySubmissionsForMilestone retrieves all submissions against a milestone.
func (c *Client) QuerySubmissionsForMilestone(ctx context.Context, milestoneID string) ([]Submission, error) {
	return c.querySubmissions(ctx,
		`SELECT submission_id, team_id, milestone_id, contact_id, link, comments, created_time
				FROM submissions WHERE milestone_id = ? ORDER BY created_time DESC`, milestoneID)
}

func (c *Client) querySubmissions(ctx context.Context, query string, arg any) ([]Submission, error) {
	rows, err := c.DB.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var submissions []Submission
	for rows.Next() {
		var s Submission
		if err := rows.Scan(&s.ID, &s.TeamID, &s.MilestoneID, &s.ContactID,
			&s.Link, &s.Comments, &s.CreatedTime); err != nil {
			return nil, err
		}
		submissions = append(submissions, s)
	}
	return submissions, rows.Err()
}

// UpsertMilestone inserts or replaces a milestone row within a sync transaction.
func UpsertMilestone(tx *sql.Tx, milestone Milestone) error {
	_, err := tx.Exec(`
		INSERT OR REPLACE INTO milestones (
			milestone_id, cohort_id, name, description, number, due_date, point_value
		) VALUES (?, ?, ?, ?, ?, ?, ?);
	`,
		milestone.ID, milestone.CohortID, milestone.Name, milestone.Description,
		milestone.Number, milestone.DueDate, milestone.PointValue,
	)
	if err != nil {
		return fmt.Errorf("error inserting milestone: %w", err)
	}
	return nil
}

// UpsertSubmission inserts or replaces a submission row. Used both by the
// sync transaction and by write-through after a submission is created.
func UpsertSubmission(tx *sql.Tx, submission Submission) error {
	_, err := tx.Exec(`
		INSERT OR REPLACE INTO submissions (
			submission_id, team_id, milestone_id, contact_id, link, comments, created_time
		) VALUES (?, ?, ?, ?, ?, ?, ?);
	`,
		submission.ID, submission.TeamID, submission.MilestoneID, submission.ContactID,
		submission.Link, submission.Comments, submission.CreatedTime,
	)
	if err != nil {
		return fmt.Errorf("error inserting submission: %w", err)
	}
	return nil
}
