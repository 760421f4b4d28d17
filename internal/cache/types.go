package cache

// Type names a semantic group of cached records. Invalidating a type clears
// every key matching the type's patterns, optionally narrowed to specific
// record IDs.
type Type string

const (
	TypeContacts    Type = "contacts"
	TypeTeams       Type = "teams"
	TypePrograms    Type = "programs"
	TypeCohorts     Type = "cohorts"
	TypeEvents      Type = "events"
	TypeMilestones  Type = "milestones"
	TypeSubmissions Type = "submissions"
	TypeRewards     Type = "rewards"
	TypePoints      Type = "points"
)

// typePattern splits a type's key prefixes by how they are suffixed.
// Scoped prefixes are followed by one of the IDs an invalidation names, so
// they can be narrowed to "<prefix><id>". Shared prefixes are suffixed with
// something else (an identity subject, a parent record's ID, a list name)
// and must be cleared in full on every invalidation of the type.
type typePattern struct {
	scoped []string
	shared []string
}

var typePatterns = map[Type]typePattern{
	TypeContacts:    {scoped: []string{"contact_"}, shared: []string{"contact_auth_"}},
	TypeTeams:       {scoped: []string{"team_"}, shared: []string{"teams_cohort_"}},
	TypePrograms:    {scoped: []string{"program_"}, shared: []string{"programs_all"}},
	TypeCohorts:     {scoped: []string{"cohort_"}, shared: []string{"cohorts_program_"}},
	TypeEvents:      {scoped: []string{"event_"}, shared: []string{"events_upcoming"}},
	TypeMilestones:  {scoped: []string{"milestone_"}, shared: []string{"milestones_cohort_"}},
	TypeSubmissions: {scoped: []string{"submission_", "submissions_team_", "submissions_milestone_"}},
	TypeRewards:     {scoped: []string{"reward_"}, shared: []string{"rewards_all"}},
	TypePoints:      {scoped: []string{"points_contact_", "points_team_"}, shared: []string{"leaderboard_"}},
}

// KnownType reports whether t has registered key patterns.
func KnownType(t Type) bool {
	_, ok := typePatterns[t]
	return ok
}

// InvalidateType removes all entries belonging to the semantic type. When
// ids are given, scoped keys are cleared only for those records; shared
// keys always go in full. Unknown types are a no-op.
func (c *Cache) InvalidateType(t Type, ids ...string) int {
	pattern, ok := typePatterns[t]
	if !ok {
		return 0
	}

	removed := 0
	for _, prefix := range pattern.shared {
		removed += c.InvalidatePrefix(prefix)
	}

	if len(ids) == 0 {
		for _, prefix := range pattern.scoped {
			removed += c.InvalidatePrefix(prefix)
		}
		return removed
	}

	for _, prefix := range pattern.scoped {
		for _, id := range ids {
			removed += c.InvalidatePrefix(prefix + id)
		}
	}
	return removed
}
