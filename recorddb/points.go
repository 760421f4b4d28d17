package recorddb

import (
	"context"
	"database/sql"
	"fmt"
)

// QueryRewards retrieves all rewards, cheapest first.
func (c *Client) QueryRewards(ctx context.Context) ([]Reward, error) {
	rows, err := c.DB.QueryContext(ctx,
		`SELECT reward_id, name, description, image_url, cost, available, inventory
				FROM rewards ORDER BY cost`)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var rewards []Reward
	for rows.Next() {
		var r Reward
		if err := rows.Scan(&r.ID, &r.Name, &r.Description, &r.ImageURL,
			&r.Cost, &r.Available, &r.Inventory); err != nil {
			return nil, err
		}
		rewards = append(rewards, r)
	}
	return rewards, rows.Err()
}

// GetReward retrieves a single reward by record ID.
func (c *Client) GetReward(ctx context.Context, rewardID string) (Reward, error) {
	var r Reward
	err := c.DB.QueryRowContext(ctx,
		`SELECT reward_id, name, description, image_url, cost, available, inventory
				FROM rewards WHERE reward_id = ?`, rewardID).
		Scan(&r.ID, &r.Name, &r.Description, &r.ImageURL, &r.Cost, &r.Available, &r.Inventory)
	return r, err
}

// QueryPointTransactionsForContact retrieves a contact's ledger, newest first.
func (c *Client) QueryPointTransactionsForContact(ctx context.Context, contactID string) ([]PointTransaction, error) {
	rows, err := c.DB.QueryContext(ctx,
		`SELECT transaction_id, contact_id, team_id, reward_id, amount, reason, created_time
				FROM point_transactions WHERE contact_id = ?
				ORDER BY created_time DESC`, contactID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var transactions []PointTransaction
	for rows.Next() {
		var t PointTransaction
		if err := rows.Scan(&t.ID, &t.ContactID, &t.TeamID, &t.RewardID,
			&t.Amount, &t.Reason, &t.CreatedTime); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// GetPointTotalForContact sums a contact's ledger. Contacts with no
// transactions total zero.
func (c *Client) GetPointTotalForContact(ctx context.Context, contactID string) (int, error) {
	var total int
	err := c.DB.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM point_transactions WHERE contact_id = ?`,
		contactID).Scan(&total)
	return total, err
}

// GetPointTotalForTeam sums all ledger entries attributed to a team.
func (c *Client) GetPointTotalForTeam(ctx context.Context, teamID string) (int, error) {
	var total int
	err := c.DB.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM point_transactions WHERE team_id = ?`,
		teamID).Scan(&total)
	return total, err
}

// QueryLeaderboardForCohort aggregates point totals for every active member
// of the cohort's teams, highest first.
func (c *Client) QueryLeaderboardForCohort(ctx context.Context, cohortID string, limit int) ([]LeaderboardRow, error) {
	rows, err := c.DB.QueryContext(ctx,
		`SELECT ct.contact_id, ct.first_name, ct.last_name, tm.team_id, t.name,
				COALESCE((SELECT SUM(amount) FROM point_transactions pt
					WHERE pt.contact_id = ct.contact_id), 0) AS points
				FROM team_cohorts tc
				JOIN team_members tm ON tm.team_id = tc.team_id AND tm.status = 'Active'
				JOIN teams t ON t.team_id = tm.team_id
				JOIN contacts ct ON ct.contact_id = tm.contact_id
				WHERE tc.cohort_id = ?
				GROUP BY ct.contact_id
				ORDER BY points DESC, ct.last_name
				LIMIT ?`, cohortID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var leaderboard []LeaderboardRow
	for rows.Next() {
		var row LeaderboardRow
		if err := rows.Scan(&row.ContactID, &row.FirstName, &row.LastName,
			&row.TeamID, &row.TeamName, &row.Points); err != nil {
			return nil, err
		}
		leaderboard = append(leaderboard, row)
	}
	return leaderboard, rows.Err()
}

// UpsertReward inserts or replaces a reward row within a sync transaction.
func UpsertReward(tx *sql.Tx, reward Reward) error {
	_, err := tx.Exec(`
		INSERT OR REPLACE INTO rewards (
			reward_id, name, description, image_url, cost, available, inventory
		) VALUES (?, ?, ?, ?, ?, ?, ?);
	`,
		reward.ID, reward.Name, reward.Description, reward.ImageURL,
		reward.Cost, reward.Available, reward.Inventory,
	)
	if err != nil {
		return fmt.Errorf("error inserting reward: %w", err)
	}
	return nil
}

// UpsertPointTransaction inserts or replaces a ledger row. Used both by the
// sync transaction and by write-through after a reward claim.
func UpsertPointTransaction(tx *sql.Tx, transaction PointTransaction) error {
	_, err := tx.Exec(`
		INSERT OR REPLACE INTO point_transactions (
			transaction_id, contact_id, team_id, reward_id, amount, reason, created_time
		) VALUES (?, ?, ?, ?, ?, ?, ?);
	`,
		transaction.ID, transaction.ContactID, transaction.TeamID, transaction.RewardID,
		transaction.Amount, transaction.Reason, transaction.CreatedTime,
	)
	if err != nil {
		return fmt.Errorf("error inserting point transaction: %w", err)
	}
	return nil
}
