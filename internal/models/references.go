package models

// ReferencesModel carries related records included alongside an entry or list
// so clients do not need follow-up lookups for linked record IDs.
type ReferencesModel struct {
	Contacts   []Contact   `json:"contacts"`
	Teams      []Team      `json:"teams"`
	Programs   []Program   `json:"programs"`
	Cohorts    []Cohort    `json:"cohorts"`
	Milestones []Milestone `json:"milestones"`
}

// NewEmptyReferences creates a new empty References model with initialized empty slices
func NewEmptyReferences() ReferencesModel {
	return ReferencesModel{
		Contacts:   []Contact{},
		Teams:      []Team{},
		Programs:   []Program{},
		Cohorts:    []Cohort{},
		Milestones: []Milestone{},
	}
}
