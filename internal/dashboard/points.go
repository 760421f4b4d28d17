package dashboard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexonufrak/dashboard-api/internal/models"
	"github.com/alexonufrak/dashboard-api/recorddb"
)

func rewardModel(r recorddb.Reward) models.Reward {
	return models.Reward{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Cost:        r.Cost,
		Available:   r.Available,
		Inventory:   r.Inventory,
	}
}

func transactionModel(t recorddb.PointTransaction) models.PointTransaction {
	return models.PointTransaction{
		ID:          t.ID,
		ContactID:   t.ContactID,
		TeamID:      t.TeamID,
		RewardID:    t.RewardID,
		Amount:      t.Amount,
		Reason:      t.Reason,
		CreatedTime: t.CreatedTime,
	}
}

// Rewards lists the claimable rewards.
func (m *Manager) Rewards(ctx context.Context) ([]models.Reward, error) {
	return cached(m, "rewards_all", func() ([]models.Reward, error) {
		rows, err := m.DB.QueryRewards(ctx)
		if err != nil {
			return nil, err
		}

		rewards := make([]models.Reward, 0, len(rows))
		for _, row := range rows {
			rewards = append(rewards, rewardModel(row))
		}
		return rewards, nil
	})
}

// PointTransactionsForContact lists a contact's ledger, newest first.
func (m *Manager) PointTransactionsForContact(ctx context.Context, contactID string) ([]models.PointTransaction, error) {
	return cached(m, "points_contact_"+contactID, func() ([]models.PointTransaction, error) {
		rows, err := m.DB.QueryPointTransactionsForContact(ctx, contactID)
		if err != nil {
			return nil, err
		}

		transactions := make([]models.PointTransaction, 0, len(rows))
		for _, row := range rows {
			transactions = append(transactions, transactionModel(row))
		}
		return transactions, nil
	})
}

// LeaderboardForCohort returns ranked point totals for the cohort's active
// team members.
func (m *Manager) LeaderboardForCohort(ctx context.Context, cohortID string, limit int) ([]models.LeaderboardEntry, error) {
	return cached(m, fmt.Sprintf("leaderboard_%s_%d", cohortID, limit), func() ([]models.LeaderboardEntry, error) {
		if _, err := m.DB.GetCohort(ctx, cohortID); errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		} else if err != nil {
			return nil, err
		}

		rows, err := m.DB.QueryLeaderboardForCohort(ctx, cohortID, limit)
		if err != nil {
			return nil, err
		}

		entries := make([]models.LeaderboardEntry, 0, len(rows))
		rank := 0
		prevPoints := 0
		for i, row := range rows {
			// Dense ranking: tied totals share a rank.
			if i == 0 || row.Points != prevPoints {
				rank++
			}
			prevPoints = row.Points
			entries = append(entries, models.LeaderboardEntry{
				Rank:      rank,
				ContactID: row.ContactID,
				Name:      models.Contact{FirstName: row.FirstName, LastName: row.LastName}.FullName(),
				TeamID:    row.TeamID,
				TeamName:  row.TeamName,
				Points:    row.Points,
			})
		}
		return entries, nil
	})
}

// ClaimReward spends points on a reward. The claim appends a negative
// ledger entry; it never mutates a balance in place. Balance checks are
// best effort against the mirror, consistent with the store owning
// integrity.
func (m *Manager) ClaimReward(ctx context.Context, contactID, rewardID string) (models.PointTransaction, error) {
	reward, err := m.DB.GetReward(ctx, rewardID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.PointTransaction{}, ErrNotFound
	}
	if err != nil {
		return models.PointTransaction{}, err
	}
	if !reward.Available || reward.Inventory <= 0 {
		return models.PointTransaction{}, ErrRewardUnavailable
	}

	balance, err := m.DB.GetPointTotalForContact(ctx, contactID)
	if err != nil {
		return models.PointTransaction{}, err
	}
	if balance < reward.Cost {
		return models.PointTransaction{}, ErrInsufficientPoints
	}

	record, err := m.Sheets.CreateRecord(ctx, tableTransactions, map[string]any{
		"Contact": []string{contactID},
		"Reward":  []string{rewardID},
		"Amount":  -reward.Cost,
		"Reason":  "Reward claim: " + reward.Name,
	})
	if err != nil {
		return models.PointTransaction{}, err
	}

	mirrored := transactionFromRecord(record)
	if mirrored.CreatedTime == "" {
		mirrored.CreatedTime = time.Now().UTC().Format(time.RFC3339)
	}
	if err := m.DB.WithTx(ctx, func(tx *sql.Tx) error {
		return recorddb.UpsertPointTransaction(tx, mirrored)
	}); err != nil {
		return models.PointTransaction{}, err
	}

	m.InvalidateCacheType("points")
	m.InvalidateCacheType("rewards")
	m.InvalidateCacheType("contacts", contactID)

	return transactionModel(mirrored), nil
}
