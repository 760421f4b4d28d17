package models

// Milestone represents a deliverable checkpoint within a cohort.
type Milestone struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CohortID    string `json:"cohortId"`
	Number      int    `json:"number"`
	DueDate     string `json:"dueDate"`
	Status      string `json:"status"`
	PointValue  int    `json:"pointValue"`
}

// Submission represents a team's deliverable against a milestone.
type Submission struct {
	ID             string   `json:"id"`
	TeamID         string   `json:"teamId"`
	MilestoneID    string   `json:"milestoneId"`
	ContactID      string   `json:"contactId"`
	Link           string   `json:"link"`
	Comments       string   `json:"comments"`
	AttachmentURLs []string `json:"attachmentUrls"`
	CreatedTime    string   `json:"createdTime"`
}

// Milestone status values derived from due date and submissions.
const (
	MilestoneStatusUpcoming  = "Upcoming"
	MilestoneStatusLate      = "Late"
	MilestoneStatusSubmitted = "Submitted"
)
