package models

import "time"

// Event represents a scheduled program event (workshop, demo day, social).
type Event struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Location        string   `json:"location"`
	StartDateTime   string   `json:"startDateTime"`
	EndDateTime     string   `json:"endDateTime"`
	CohortIDs       []string `json:"cohortIds"`
	RegistrationURL string   `json:"registrationUrl"`
	PointValue      int      `json:"pointValue"`
}

// StartsAfter reports whether the event starts after t. Events with
// unparseable start times are treated as past.
func (e Event) StartsAfter(t time.Time) bool {
	start, err := time.Parse(time.RFC3339, e.StartDateTime)
	if err != nil {
		return false
	}
	return start.After(t)
}
