package models

// Program represents a program (initiative) that cohorts run under.
type Program struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Institution string   `json:"institution"`
	CohortIDs   []string `json:"cohortIds"`
	Active      bool     `json:"active"`
}

// Cohort represents a single run of a program with a defined time window.
type Cohort struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	ProgramID    string   `json:"programId"`
	ShortName    string   `json:"shortName"`
	Status       string   `json:"status"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	TeamIDs      []string `json:"teamIds"`
	MilestoneIDs []string `json:"milestoneIds"`
}

// Cohort status values mirrored from the spreadsheet service.
const (
	CohortStatusOpen     = "Applications Open"
	CohortStatusActive   = "Active"
	CohortStatusComplete = "Complete"
)
