package models

// Reward represents an item claimable with earned points.
type Reward struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Cost        int    `json:"cost"`
	Available   bool   `json:"available"`
	Inventory   int    `json:"inventory"`
}

// PointTransaction is one entry in the append-only points ledger. Earned
// points carry a positive amount; reward claims carry a negative amount.
type PointTransaction struct {
	ID          string `json:"id"`
	ContactID   string `json:"contactId"`
	TeamID      string `json:"teamId"`
	RewardID    string `json:"rewardId,omitempty"`
	Amount      int    `json:"amount"`
	Reason      string `json:"reason"`
	CreatedTime string `json:"createdTime"`
}

// LeaderboardEntry is one row of the cohort points leaderboard.
type LeaderboardEntry struct {
	Rank      int    `json:"rank"`
	ContactID string `json:"contactId"`
	Name      string `json:"name"`
	TeamID    string `json:"teamId,omitempty"`
	TeamName  string `json:"teamName,omitempty"`
	Points    int    `json:"points"`
}
