package dashboard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexonufrak/dashboard-api/internal/models"
	"github.com/alexonufrak/dashboard-api/internal/sheets"
	"github.com/alexonufrak/dashboard-api/recorddb"
)

// listMembersOptions filters the Members table down to one (team, contact)
// membership via the service's formula language.
func listMembersOptions(teamID, contactID string) sheets.ListOptions {
	return sheets.ListOptions{
		FilterFormula: fmt.Sprintf(
			`AND(FIND(%q, ARRAYJOIN({Team})), FIND(%q, ARRAYJOIN({Contact})))`,
			teamID, contactID),
	}
}

// Team retrieves a team with its roster and point total.
func (m *Manager) Team(ctx context.Context, teamID string) (models.Team, error) {
	return cached(m, "team_"+teamID, func() (models.Team, error) {
		row, err := m.DB.GetTeam(ctx, teamID)
		if errors.Is(err, sql.ErrNoRows) {
			return models.Team{}, ErrNotFound
		}
		if err != nil {
			return models.Team{}, err
		}
		return m.decorateTeam(ctx, row)
	})
}

// TeamsForCohort lists the teams in a cohort with rosters attached.
func (m *Manager) TeamsForCohort(ctx context.Context, cohortID string) ([]models.Team, error) {
	return cached(m, "teams_cohort_"+cohortID, func() ([]models.Team, error) {
		if _, err := m.DB.GetCohort(ctx, cohortID); errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		} else if err != nil {
			return nil, err
		}

		rows, err := m.DB.QueryTeamsForCohort(ctx, cohortID)
		if err != nil {
			return nil, err
		}

		teams := make([]models.Team, 0, len(rows))
		for _, row := range rows {
			team, err := m.decorateTeam(ctx, row)
			if err != nil {
				return nil, err
			}
			teams = append(teams, team)
		}
		return teams, nil
	})
}

func (m *Manager) decorateTeam(ctx context.Context, row recorddb.Team) (models.Team, error) {
	team := models.NewTeam(row.ID, row.Name, row.Description, nil, nil)
	team.ImageURL = row.ImageURL

	cohortIDs, err := m.DB.QueryCohortIDsForTeam(ctx, row.ID)
	if err != nil {
		return models.Team{}, err
	}
	team.CohortIDs = append(team.CohortIDs, cohortIDs...)

	members, err := m.DB.QueryTeamMembers(ctx, row.ID)
	if err != nil {
		return models.Team{}, err
	}

	memberContactIDs := make([]string, 0, len(members))
	for _, member := range members {
		memberContactIDs = append(memberContactIDs, member.ContactID)
	}
	contacts, err := m.DB.GetContactsByIDs(ctx, memberContactIDs)
	if err != nil {
		return models.Team{}, err
	}
	contactsByID := make(map[string]recorddb.Contact, len(contacts))
	for _, c := range contacts {
		contactsByID[c.ID] = c
	}

	team.Members = make([]models.TeamMember, 0, len(members))
	for _, member := range members {
		if member.Status == models.MemberStatusInactive {
			continue
		}
		entry := models.TeamMember{
			ContactID: member.ContactID,
			Role:      member.Role,
			Status:    member.Status,
		}
		if c, ok := contactsByID[member.ContactID]; ok {
			entry.Name = contactModel(c).FullName()
			entry.Email = c.Email
		}
		team.MemberIDs = append(team.MemberIDs, member.ContactID)
		team.Members = append(team.Members, entry)
	}

	total, err := m.DB.GetPointTotalForTeam(ctx, row.ID)
	if err != nil {
		return models.Team{}, err
	}
	team.PointsTotal = total

	return team, nil
}

// CreateTeam creates a team record in the spreadsheet service and mirrors
// it locally. The creating contact becomes the team lead.
func (m *Manager) CreateTeam(ctx context.Context, name, description, cohortID, creatorContactID string) (models.Team, error) {
	fields := map[string]any{
		"Name":        name,
		"Description": description,
	}
	if cohortID != "" {
		fields["Cohorts"] = []string{cohortID}
	}

	record, err := m.Sheets.CreateRecord(ctx, tableTeams, fields)
	if err != nil {
		return models.Team{}, err
	}

	memberRecord, err := m.Sheets.CreateRecord(ctx, tableMembers, map[string]any{
		"Team":    []string{record.ID},
		"Contact": []string{creatorContactID},
		"Role":    "Lead",
		"Status":  models.MemberStatusActive,
	})
	if err != nil {
		return models.Team{}, err
	}

	err = m.DB.WithTx(ctx, func(tx *sql.Tx) error {
		if err := recorddb.UpsertTeam(tx, recorddb.Team{
			ID:          record.ID,
			Name:        record.String("Name"),
			Description: record.String("Description"),
		}); err != nil {
			return err
		}
		if cohortID != "" {
			if err := recorddb.UpsertTeamCohort(tx, record.ID, cohortID); err != nil {
				return err
			}
		}
		return recorddb.UpsertTeamMember(tx, recorddb.TeamMember{
			TeamID:    record.ID,
			ContactID: creatorContactID,
			Role:      memberRecord.String("Role"),
			Status:    memberRecord.String("Status"),
		})
	})
	if err != nil {
		return models.Team{}, err
	}

	m.InvalidateCacheType("teams")
	m.InvalidateCacheType("contacts", creatorContactID)

	return m.Team(ctx, record.ID)
}

// UpdateTeam patches team fields in the spreadsheet service and mirrors the
// result locally.
func (m *Manager) UpdateTeam(ctx context.Context, teamID string, fields map[string]any) (models.Team, error) {
	if _, err := m.DB.GetTeam(ctx, teamID); errors.Is(err, sql.ErrNoRows) {
		return models.Team{}, ErrNotFound
	} else if err != nil {
		return models.Team{}, err
	}

	record, err := m.Sheets.UpdateRecord(ctx, tableTeams, teamID, fields)
	if err != nil {
		return models.Team{}, err
	}

	err = m.DB.WithTx(ctx, func(tx *sql.Tx) error {
		return recorddb.UpsertTeam(tx, recorddb.Team{
			ID:          record.ID,
			Name:        record.String("Name"),
			Description: record.String("Description"),
			ImageURL:    record.String("Image URL"),
		})
	})
	if err != nil {
		return models.Team{}, err
	}

	m.InvalidateCacheType("teams", teamID)
	m.Cache.InvalidatePrefix("teams_cohort_")

	return m.Team(ctx, teamID)
}

// AddTeamMember adds a contact to a team roster.
func (m *Manager) AddTeamMember(ctx context.Context, teamID, contactID, role string) (models.Team, error) {
	if _, err := m.DB.GetTeam(ctx, teamID); errors.Is(err, sql.ErrNoRows) {
		return models.Team{}, ErrNotFound
	} else if err != nil {
		return models.Team{}, err
	}

	members, err := m.DB.QueryTeamMembers(ctx, teamID)
	if err != nil {
		return models.Team{}, err
	}
	for _, member := range members {
		if member.ContactID == contactID && member.Status != models.MemberStatusInactive {
			return models.Team{}, ErrAlreadyMember
		}
	}

	if role == "" {
		role = "Member"
	}
	record, err := m.Sheets.CreateRecord(ctx, tableMembers, map[string]any{
		"Team":    []string{teamID},
		"Contact": []string{contactID},
		"Role":    role,
		"Status":  models.MemberStatusActive,
	})
	if err != nil {
		return models.Team{}, err
	}

	err = m.DB.WithTx(ctx, func(tx *sql.Tx) error {
		return recorddb.UpsertTeamMember(tx, recorddb.TeamMember{
			TeamID:    teamID,
			ContactID: contactID,
			Role:      record.String("Role"),
			Status:    record.String("Status"),
		})
	})
	if err != nil {
		return models.Team{}, err
	}

	m.InvalidateCacheType("teams", teamID)
	m.InvalidateCacheType("contacts", contactID)
	m.Cache.InvalidatePrefix("teams_cohort_")

	return m.Team(ctx, teamID)
}

// RemoveTeamMember marks a roster entry inactive. Removing the last member
// leaves an empty team; cascade behavior belongs to the spreadsheet service.
func (m *Manager) RemoveTeamMember(ctx context.Context, teamID, contactID string) error {
	members, err := m.DB.QueryTeamMembers(ctx, teamID)
	if err != nil {
		return err
	}

	found := false
	for _, member := range members {
		if member.ContactID == contactID && member.Status != models.MemberStatusInactive {
			found = true
			break
		}
	}
	if !found {
		return ErrNotFound
	}

	// The roster is keyed by (team, contact) in the Members table; look the
	// membership record up by formula since the mirror does not keep the
	// link-record IDs.
	records, err := m.Sheets.ListRecords(ctx, tableMembers, listMembersOptions(teamID, contactID))
	if err != nil {
		return err
	}
	for _, record := range records {
		if _, err := m.Sheets.UpdateRecord(ctx, tableMembers, record.ID, map[string]any{
			"Status": models.MemberStatusInactive,
		}); err != nil {
			return err
		}
	}

	err = m.DB.WithTx(ctx, func(tx *sql.Tx) error {
		return recorddb.UpsertTeamMember(tx, recorddb.TeamMember{
			TeamID:    teamID,
			ContactID: contactID,
			Status:    models.MemberStatusInactive,
		})
	})
	if err != nil {
		return err
	}

	m.InvalidateCacheType("teams", teamID)
	m.InvalidateCacheType("contacts", contactID)
	m.Cache.InvalidatePrefix("teams_cohort_")

	return nil
}
