package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/fideleatome/loyalty/internal/domain/errors"
	"github.com/fideleatome/loyalty/internal/domain/model"
	"github.com/fideleatome/loyalty/internal/domain/repository"
)

type accrualRepository struct {
	storage *Storage
}

// Apply runs the whole accrual inside one transaction. The customer row is
// locked first, so concurrent applies for the same customer serialize and
// the policy always evaluates against the committed balance.
func (r *accrualRepository) Apply(ctx context.Context, req repository.AccrualRequest, evaluate model.EvaluateFunc) (*repository.AccrualOutcome, error) {
	var outcome repository.AccrualOutcome

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const lockCustomer = `SELECT points, total_purchases, total_rewards
                              FROM customer_profiles WHERE id=$1 FOR UPDATE`
		var points, totalPurchases, totalRewards int
		if err := tx.QueryRow(ctx, lockCustomer, req.CustomerID).Scan(&points, &totalPurchases, &totalRewards); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}

		const checkBusiness = `SELECT id FROM business_profiles WHERE id=$1`
		var businessID int64
		if err := tx.QueryRow(ctx, checkBusiness, req.BusinessID).Scan(&businessID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}

		eval := evaluate(points)

		// Accrual events always carry is_reward=false; rewards live in
		// their own append-only table.
		const insertPurchase = `INSERT INTO purchases (customer_id, business_id, points_added, is_reward, purchase_date)
                                VALUES ($1, $2, $3, $4, $5) RETURNING id`
		if err := tx.QueryRow(ctx, insertPurchase,
			req.CustomerID, req.BusinessID, req.PointsToAdd, false, req.Now).Scan(&outcome.PurchaseID); err != nil {
			return err
		}

		const insertReward = `INSERT INTO rewards (customer_id, business_id, purchase_id, reward_type, earned_date)
                              VALUES ($1, $2, $3, $4, $5)`
		for _, rt := range eval.Rewards {
			if _, err := tx.Exec(ctx, insertReward, req.CustomerID, req.BusinessID, outcome.PurchaseID, rt, req.Now); err != nil {
				return err
			}
		}

		// total_purchases accumulates every point added, not the visit count.
		const updateProfile = `UPDATE customer_profiles
                               SET points=$1,
                                   total_purchases=total_purchases+$2,
                                   total_rewards=total_rewards+$3,
                                   first_purchase_date=COALESCE(first_purchase_date, $4),
                                   last_purchase_date=$4
                               WHERE id=$5`
		if _, err := tx.Exec(ctx, updateProfile, eval.NewPoints, req.PointsToAdd, len(eval.Rewards), req.Now, req.CustomerID); err != nil {
			return err
		}

		outcome.NewPoints = eval.NewPoints
		outcome.TotalPurchases = totalPurchases + req.PointsToAdd
		outcome.TotalRewards = totalRewards + len(eval.Rewards)
		outcome.Rewards = eval.Rewards
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &outcome, nil
}
