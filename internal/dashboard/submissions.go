package dashboard

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/alexonufrak/dashboard-api/internal/models"
	"github.com/alexonufrak/dashboard-api/recorddb"
)

func submissionModel(s recorddb.Submission) models.Submission {
	return models.Submission{
		ID:             s.ID,
		TeamID:         s.TeamID,
		MilestoneID:    s.MilestoneID,
		ContactID:      s.ContactID,
		Link:           s.Link,
		Comments:       s.Comments,
		AttachmentURLs: []string{},
		CreatedTime:    s.CreatedTime,
	}
}

// MilestonesForCohort lists a cohort's milestones with a status derived
// from the due date and submission counts.
func (m *Manager) MilestonesForCohort(ctx context.Context, cohortID string) ([]models.Milestone, error) {
	return cached(m, "milestones_cohort_"+cohortID, func() ([]models.Milestone, error) {
		if _, err := m.DB.GetCohort(ctx, cohortID); errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		} else if err != nil {
			return nil, err
		}

		rows, err := m.DB.QueryMilestonesForCohort(ctx, cohortID)
		if err != nil {
			return nil, err
		}

		milestones := make([]models.Milestone, 0, len(rows))
		for _, row := range rows {
			milestone := models.Milestone{
				ID:          row.ID,
				Name:        row.Name,
				Description: row.Description,
				CohortID:    row.CohortID,
				Number:      row.Number,
				DueDate:     row.DueDate,
				PointValue:  row.PointValue,
			}
			milestone.Status = m.milestoneStatus(ctx, row)
			milestones = append(milestones, milestone)
		}
		return milestones, nil
	})
}

func (m *Manager) milestoneStatus(ctx context.Context, row recorddb.Milestone) string {
	submissions, err := m.DB.QuerySubmissionsForMilestone(ctx, row.ID)
	if err == nil && len(submissions) > 0 {
		return models.MilestoneStatusSubmitted
	}

	due, err := time.Parse("2006-01-02", row.DueDate)
	if err == nil && time.Now().After(due.Add(24*time.Hour)) {
		return models.MilestoneStatusLate
	}
	return models.MilestoneStatusUpcoming
}

// SubmissionsForTeam lists a team's submissions, newest first.
func (m *Manager) SubmissionsForTeam(ctx context.Context, teamID string) ([]models.Submission, error) {
	return cached(m, "submissions_team_"+teamID, func() ([]models.Submission, error) {
		if _, err := m.DB.GetTeam(ctx, teamID); errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		} else if err != nil {
			return nil, err
		}

		rows, err := m.DB.QuerySubmissionsForTeam(ctx, teamID)
		if err != nil {
			return nil, err
		}

		submissions := make([]models.Submission, 0, len(rows))
		for _, row := range rows {
			submissions = append(submissions, submissionModel(row))
		}
		return submissions, nil
	})
}

// CreateSubmission records a milestone deliverable in the spreadsheet
// service and mirrors it locally.
func (m *Manager) CreateSubmission(ctx context.Context, teamID, milestoneID, contactID, link, comments string) (models.Submission, error) {
	if _, err := m.DB.GetTeam(ctx, teamID); errors.Is(err, sql.ErrNoRows) {
		return models.Submission{}, ErrNotFound
	} else if err != nil {
		return models.Submission{}, err
	}
	if _, err := m.DB.GetMilestone(ctx, milestoneID); errors.Is(err, sql.ErrNoRows) {
		return models.Submission{}, ErrNotFound
	} else if err != nil {
		return models.Submission{}, err
	}

	record, err := m.Sheets.CreateRecord(ctx, tableSubmissions, map[string]any{
		"Team":      []string{teamID},
		"Milestone": []string{milestoneID},
		"Contact":   []string{contactID},
		"Link":      link,
		"Comments":  comments,
	})
	if err != nil {
		return models.Submission{}, err
	}

	mirrored := submissionFromRecord(record)
	if mirrored.CreatedTime == "" {
		mirrored.CreatedTime = time.Now().UTC().Format(time.RFC3339)
	}
	if err := m.DB.WithTx(ctx, func(tx *sql.Tx) error {
		return recorddb.UpsertSubmission(tx, mirrored)
	}); err != nil {
		return models.Submission{}, err
	}

	m.InvalidateCacheType("submissions", teamID, milestoneID)
	m.InvalidateCacheType("milestones")

	return submissionModel(mirrored), nil
}
