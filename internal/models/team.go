package models

// Team represents a participant team within a cohort.
type Team struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	ImageURL    string       `json:"imageUrl"`
	CohortIDs   []string     `json:"cohortIds"`
	MemberIDs   []string     `json:"memberIds"`
	Members     []TeamMember `json:"members,omitempty"`
	PointsTotal int          `json:"pointsTotal"`
}

// TeamMember is the membership view of a contact on a team roster.
type TeamMember struct {
	ContactID string `json:"contactId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status"`
}

// Membership status values stored on the roster link record.
const (
	MemberStatusActive   = "Active"
	MemberStatusInvited  = "Invited"
	MemberStatusInactive = "Inactive"
)

// NewTeam creates a Team with the provided values and initialized link slices.
func NewTeam(id, name, description string, cohortIDs, memberIDs []string) Team {
	if cohortIDs == nil {
		cohortIDs = []string{}
	}
	if memberIDs == nil {
		memberIDs = []string{}
	}
	return Team{
		ID:          id,
		Name:        name,
		Description: description,
		CohortIDs:   cohortIDs,
		MemberIDs:   memberIDs,
	}
}

// HasMember reports whether the contact is on the team roster.
func (t Team) HasMember(contactID string) bool {
	for _, id := range t.MemberIDs {
		if id == contactID {
			return true
		}
	}
	return false
}
