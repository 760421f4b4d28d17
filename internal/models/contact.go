package models

// Contact represents a person record on the platform. Linked-record arrays
// stand in for foreign keys, mirroring the spreadsheet service's field model.
type Contact struct {
	ID          string   `json:"id"`
	AuthID      string   `json:"authId"`
	Email       string   `json:"email"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	AvatarURL   string   `json:"avatarUrl"`
	Bio         string   `json:"bio"`
	Major       string   `json:"major"`
	GradYear    int      `json:"gradYear"`
	TeamIDs     []string `json:"teamIds"`
	CohortIDs   []string `json:"cohortIds"`
	Onboarded   bool     `json:"onboarded"`
	PointsTotal int      `json:"pointsTotal"`
}

// FullName returns the contact's display name.
func (c Contact) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	default:
		return c.FirstName + " " + c.LastName
	}
}
