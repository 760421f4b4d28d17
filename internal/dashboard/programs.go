package dashboard

import (
	"context"
	"database/sql"
	"errors"

	"github.com/alexonufrak/dashboard-api/internal/models"
	"github.com/alexonufrak/dashboard-api/recorddb"
)

func programModel(p recorddb.Program) models.Program {
	return models.Program{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Institution: p.Institution,
		Active:      p.Active,
		CohortIDs:   []string{},
	}
}

func cohortModel(c recorddb.Cohort) models.Cohort {
	return models.Cohort{
		ID:           c.ID,
		Name:         c.Name,
		ProgramID:    c.ProgramID,
		ShortName:    c.ShortName,
		Status:       c.Status,
		StartDate:    c.StartDate,
		EndDate:      c.EndDate,
		TeamIDs:      []string{},
		MilestoneIDs: []string{},
	}
}

// Programs lists every program with its cohort links.
func (m *Manager) Programs(ctx context.Context) ([]models.Program, error) {
	return cached(m, "programs_all", func() ([]models.Program, error) {
		rows, err := m.DB.QueryPrograms(ctx)
		if err != nil {
			return nil, err
		}

		programs := make([]models.Program, 0, len(rows))
		for _, row := range rows {
			program := programModel(row)
			cohorts, err := m.DB.QueryCohortsForProgram(ctx, row.ID)
			if err != nil {
				return nil, err
			}
			for _, c := range cohorts {
				program.CohortIDs = append(program.CohortIDs, c.ID)
			}
			programs = append(programs, program)
		}
		return programs, nil
	})
}

// Program retrieves a single program.
func (m *Manager) Program(ctx context.Context, programID string) (models.Program, error) {
	return cached(m, "program_"+programID, func() (models.Program, error) {
		row, err := m.DB.GetProgram(ctx, programID)
		if errors.Is(err, sql.ErrNoRows) {
			return models.Program{}, ErrNotFound
		}
		if err != nil {
			return models.Program{}, err
		}

		program := programModel(row)
		cohorts, err := m.DB.QueryCohortsForProgram(ctx, row.ID)
		if err != nil {
			return models.Program{}, err
		}
		for _, c := range cohorts {
			program.CohortIDs = append(program.CohortIDs, c.ID)
		}
		return program, nil
	})
}

// CohortsForProgram lists a program's cohorts, newest first.
func (m *Manager) CohortsForProgram(ctx context.Context, programID string) ([]models.Cohort, error) {
	return cached(m, "cohorts_program_"+programID, func() ([]models.Cohort, error) {
		if _, err := m.DB.GetProgram(ctx, programID); errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		} else if err != nil {
			return nil, err
		}

		rows, err := m.DB.QueryCohortsForProgram(ctx, programID)
		if err != nil {
			return nil, err
		}

		cohorts := make([]models.Cohort, 0, len(rows))
		for _, row := range rows {
			cohorts = append(cohorts, m.decorateCohort(ctx, row))
		}
		return cohorts, nil
	})
}

// Cohort retrieves a single cohort with team and milestone links.
func (m *Manager) Cohort(ctx context.Context, cohortID string) (models.Cohort, error) {
	return cached(m, "cohort_"+cohortID, func() (models.Cohort, error) {
		row, err := m.DB.GetCohort(ctx, cohortID)
		if errors.Is(err, sql.ErrNoRows) {
			return models.Cohort{}, ErrNotFound
		}
		if err != nil {
			return models.Cohort{}, err
		}
		return m.decorateCohort(ctx, row), nil
	})
}

func (m *Manager) decorateCohort(ctx context.Context, row recorddb.Cohort) models.Cohort {
	cohort := cohortModel(row)

	if teams, err := m.DB.QueryTeamsForCohort(ctx, row.ID); err == nil {
		for _, t := range teams {
			cohort.TeamIDs = append(cohort.TeamIDs, t.ID)
		}
	}
	if milestones, err := m.DB.QueryMilestonesForCohort(ctx, row.ID); err == nil {
		for _, ms := range milestones {
			cohort.MilestoneIDs = append(cohort.MilestoneIDs, ms.ID)
		}
	}
	return cohort
}
