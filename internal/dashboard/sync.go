package dashboard

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/alexonufrak/dashboard-api/internal/logging"
	"github.com/alexonufrak/dashboard-api/internal/metrics"
	"github.com/alexonufrak/dashboard-api/internal/sheets"
	"github.com/alexonufrak/dashboard-api/recorddb"
)

// Spreadsheet table names. The bases were created by hand, so names follow
// the spreadsheet UI convention rather than code style.
const (
	tableContacts     = "Contacts"
	tablePrograms     = "Programs"
	tableCohorts      = "Cohorts"
	tableTeams        = "Teams"
	tableMembers      = "Members"
	tableEvents       = "Events"
	tableMilestones   = "Milestones"
	tableSubmissions  = "Submissions"
	tableRewards      = "Rewards"
	tableTransactions = "Point Transactions"
)

// Sync pulls every table from the spreadsheet service into the mirror. Each
// table swap is transactional, so a mid-sync failure leaves earlier tables
// updated and later tables on their previous contents.
func (m *Manager) Sync(ctx context.Context) error {
	start := time.Now()

	err := m.syncAll(ctx)
	m.recordSyncResult(err)
	metrics.RecordSync(err == nil, time.Since(start))

	if err == nil {
		logging.LogOperation(m.logger, "record_sync_complete",
			slog.Duration("duration", time.Since(start)),
			slog.String("component", "dashboard_manager"))
		// The mirror changed wholesale; cached lookups may be stale.
		for _, t := range []string{"contacts", "teams", "programs", "cohorts",
			"events", "milestones", "submissions", "rewards", "points"} {
			m.InvalidateCacheType(t)
		}
	}
	return err
}

func (m *Manager) syncAll(ctx context.Context) error {
	if err := m.syncContacts(ctx); err != nil {
		return err
	}
	if err := m.syncPrograms(ctx); err != nil {
		return err
	}
	if err := m.syncTeams(ctx); err != nil {
		return err
	}
	if err := m.syncEvents(ctx); err != nil {
		return err
	}
	if err := m.syncMilestones(ctx); err != nil {
		return err
	}
	return m.syncPoints(ctx)
}

func (m *Manager) syncContacts(ctx context.Context) error {
	records, err := m.Sheets.ListRecords(ctx, tableContacts, sheets.ListOptions{})
	if err != nil {
		return err
	}

	return m.DB.ReplaceTables(ctx, func(tx *sql.Tx) error {
		for _, r := range records {
			contact := recorddb.Contact{
				ID:        r.ID,
				AuthID:    r.String("AuthID"),
				Email:     r.String("Email"),
				FirstName: r.String("First Name"),
				LastName:  r.String("Last Name"),
				AvatarURL: r.String("Avatar URL"),
				Bio:       r.String("Bio"),
				Major:     r.String("Major"),
				GradYear:  r.Int("Graduation Year"),
				Onboarded: r.Bool("Onboarded"),
			}
			if err := recorddb.UpsertContact(tx, contact); err != nil {
				return err
			}
		}
		return nil
	}, "contacts")
}

func (m *Manager) syncPrograms(ctx context.Context) error {
	programs, err := m.Sheets.ListRecords(ctx, tablePrograms, sheets.ListOptions{})
	if err != nil {
		return err
	}
	cohorts, err := m.Sheets.ListRecords(ctx, tableCohorts, sheets.ListOptions{})
	if err != nil {
		return err
	}

	return m.DB.ReplaceTables(ctx, func(tx *sql.Tx) error {
		for _, r := range programs {
			program := recorddb.Program{
				ID:          r.ID,
				Name:        r.String("Name"),
				Description: r.String("Description"),
				Institution: r.String("Institution"),
				Active:      r.Bool("Active"),
			}
			if err := recorddb.UpsertProgram(tx, program); err != nil {
				return err
			}
		}
		for _, r := range cohorts {
			cohort := recorddb.Cohort{
				ID:        r.ID,
				Name:      r.String("Name"),
				ShortName: r.String("Short Name"),
				Status:    r.String("Status"),
				StartDate: r.String("Start Date"),
				EndDate:   r.String("End Date"),
			}
			if ids := r.LinkedIDs("Program"); len(ids) > 0 {
				cohort.ProgramID = ids[0]
			}
			if err := recorddb.UpsertCohort(tx, cohort); err != nil {
				return err
			}
		}
		return nil
	}, "programs", "cohorts")
}

func (m *Manager) syncTeams(ctx context.Context) error {
	teams, err := m.Sheets.ListRecords(ctx, tableTeams, sheets.ListOptions{})
	if err != nil {
		return err
	}
	members, err := m.Sheets.ListRecords(ctx, tableMembers, sheets.ListOptions{})
	if err != nil {
		return err
	}

	return m.DB.ReplaceTables(ctx, func(tx *sql.Tx) error {
		for _, r := range teams {
			team := recorddb.Team{
				ID:          r.ID,
				Name:        r.String("Name"),
				Description: r.String("Description"),
				ImageURL:    r.String("Image URL"),
			}
			if err := recorddb.UpsertTeam(tx, team); err != nil {
				return err
			}
			for _, cohortID := range r.LinkedIDs("Cohorts") {
				if err := recorddb.UpsertTeamCohort(tx, r.ID, cohortID); err != nil {
					return err
				}
			}
		}
		for _, r := range members {
			teamIDs := r.LinkedIDs("Team")
			contactIDs := r.LinkedIDs("Contact")
			if len(teamIDs) == 0 || len(contactIDs) == 0 {
				continue
			}
			member := recorddb.TeamMember{
				TeamID:    teamIDs[0],
				ContactID: contactIDs[0],
				Role:      r.String("Role"),
				Status:    r.String("Status"),
			}
			if err := recorddb.UpsertTeamMember(tx, member); err != nil {
				return err
			}
		}
		return nil
	}, "teams", "team_cohorts", "team_members")
}

func (m *Manager) syncEvents(ctx context.Context) error {
	records, err := m.Sheets.ListRecords(ctx, tableEvents, sheets.ListOptions{})
	if err != nil {
		return err
	}

	return m.DB.ReplaceTables(ctx, func(tx *sql.Tx) error {
		for _, r := range records {
			event := recorddb.Event{
				ID:              r.ID,
				Name:            r.String("Name"),
				Description:     r.String("Description"),
				Location:        r.String("Location"),
				StartDateTime:   r.String("Start Date"),
				EndDateTime:     r.String("End Date"),
				RegistrationURL: r.String("Registration URL"),
				PointValue:      r.Int("Point Value"),
			}
			if err := recorddb.UpsertEvent(tx, event); err != nil {
				return err
			}
			for _, cohortID := range r.LinkedIDs("Cohorts") {
				if err := recorddb.UpsertEventCohort(tx, r.ID, cohortID); err != nil {
					return err
				}
			}
		}
		return nil
	}, "events", "event_cohorts")
}

func (m *Manager) syncMilestones(ctx context.Context) error {
	milestones, err := m.Sheets.ListRecords(ctx, tableMilestones, sheets.ListOptions{})
	if err != nil {
		return err
	}
	submissions, err := m.Sheets.ListRecords(ctx, tableSubmissions, sheets.ListOptions{})
	if err != nil {
		return err
	}

	return m.DB.ReplaceTables(ctx, func(tx *sql.Tx) error {
		for _, r := range milestones {
			milestone := recorddb.Milestone{
				ID:          r.ID,
				Name:        r.String("Name"),
				Description: r.String("Description"),
				Number:      r.Int("Number"),
				DueDate:     r.String("Due Date"),
				PointValue:  r.Int("Point Value"),
			}
			if ids := r.LinkedIDs("Cohort"); len(ids) > 0 {
				milestone.CohortID = ids[0]
			}
			if err := recorddb.UpsertMilestone(tx, milestone); err != nil {
				return err
			}
		}
		for _, r := range submissions {
			if err := recorddb.UpsertSubmission(tx, submissionFromRecord(r)); err != nil {
				return err
			}
		}
		return nil
	}, "milestones", "submissions")
}

func (m *Manager) syncPoints(ctx context.Context) error {
	rewards, err := m.Sheets.ListRecords(ctx, tableRewards, sheets.ListOptions{})
	if err != nil {
		return err
	}
	transactions, err := m.Sheets.ListRecords(ctx, tableTransactions, sheets.ListOptions{})
	if err != nil {
		return err
	}

	return m.DB.ReplaceTables(ctx, func(tx *sql.Tx) error {
		for _, r := range rewards {
			reward := recorddb.Reward{
				ID:          r.ID,
				Name:        r.String("Name"),
				Description: r.String("Description"),
				ImageURL:    r.String("Image URL"),
				Cost:        r.Int("Cost"),
				Available:   r.Bool("Available"),
				Inventory:   r.Int("Inventory"),
			}
			if err := recorddb.UpsertReward(tx, reward); err != nil {
				return err
			}
		}
		for _, r := range transactions {
			if err := recorddb.UpsertPointTransaction(tx, transactionFromRecord(r)); err != nil {
				return err
			}
		}
		return nil
	}, "rewards", "point_transactions")
}

func submissionFromRecord(r sheets.Record) recorddb.Submission {
	s := recorddb.Submission{
		ID:          r.ID,
		Link:        r.String("Link"),
		Comments:    r.String("Comments"),
		CreatedTime: r.CreatedTime,
	}
	if ids := r.LinkedIDs("Team"); len(ids) > 0 {
		s.TeamID = ids[0]
	}
	if ids := r.LinkedIDs("Milestone"); len(ids) > 0 {
		s.MilestoneID = ids[0]
	}
	if ids := r.LinkedIDs("Contact"); len(ids) > 0 {
		s.ContactID = ids[0]
	}
	return s
}

func transactionFromRecord(r sheets.Record) recorddb.PointTransaction {
	t := recorddb.PointTransaction{
		ID:          r.ID,
		Amount:      r.Int("Amount"),
		Reason:      r.String("Reason"),
		CreatedTime: r.CreatedTime,
	}
	if ids := r.LinkedIDs("Contact"); len(ids) > 0 {
		t.ContactID = ids[0]
	}
	if ids := r.LinkedIDs("Team"); len(ids) > 0 {
		t.TeamID = ids[0]
	}
	if ids := r.LinkedIDs("Reward"); len(ids) > 0 {
		t.RewardID = ids[0]
	}
	return t
}
