package postgres

import (
	"context"

	"github.com/fideleatome/loyalty/internal/domain/model"
)

type purchaseRepository struct {
	storage *Storage
}

type rewardRepository struct {
	storage *Storage
}

// --- PurchaseRepository implementation ---

func (r *purchaseRepository) ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]model.Purchase, error) {
	const query = `SELECT p.id, p.customer_id, p.business_id, p.points_added, p.is_reward, p.purchase_date, b.business_name
                   FROM purchases p
                   JOIN business_profiles b ON b.id = p.business_id
                   WHERE p.customer_id=$1
                   ORDER BY p.purchase_date DESC, p.id DESC
                   LIMIT $2 OFFSET $3`
	return r.collect(ctx, query, customerID, limit, offset)
}

func (r *purchaseRepository) CountByCustomer(ctx context.Context, customerID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM purchases WHERE customer_id=$1`
	var count int
	if err := r.storage.pool.QueryRow(ctx, query, customerID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// HistoryByCustomer returns every purchase in insertion order. The audit
// worker replays this feed through the tier policy.
func (r *purchaseRepository) HistoryByCustomer(ctx context.Context, customerID int64) ([]model.Purchase, error) {
	const query = `SELECT p.id, p.customer_id, p.business_id, p.points_added, p.is_reward, p.purchase_date, b.business_name
                   FROM purchases p
                   JOIN business_profiles b ON b.id = p.business_id
                   WHERE p.customer_id=$1
                   ORDER BY p.id`
	return r.collect(ctx, query, customerID)
}

func (r *purchaseRepository) collect(ctx context.Context, query string, args ...any) ([]model.Purchase, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Purchase
	for rows.Next() {
		var p model.Purchase
		if err := rows.Scan(&p.ID, &p.CustomerID, &p.BusinessID, &p.PointsAdded, &p.IsReward, &p.PurchaseDate, &p.BusinessName); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- RewardRepository implementation ---

func (r *rewardRepository) ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]model.Reward, error) {
	const query = `SELECT rw.id, rw.customer_id, rw.business_id, rw.purchase_id, rw.reward_type, rw.earned_date, b.business_name
                   FROM rewards rw
                   JOIN business_profiles b ON b.id = rw.business_id
                   WHERE rw.customer_id=$1
                   ORDER BY rw.earned_date DESC, rw.id DESC
                   LIMIT $2 OFFSET $3`
	rows, err := r.storage.pool.Query(ctx, query, customerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Reward
	for rows.Next() {
		var rec model.Reward
		if err := rows.Scan(&rec.ID, &rec.CustomerID, &rec.BusinessID, &rec.PurchaseID, &rec.RewardType, &rec.EarnedDate, &rec.BusinessName); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *rewardRepository) CountByCustomer(ctx context.Context, customerID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM rewards WHERE customer_id=$1`
	var count int
	if err := r.storage.pool.QueryRow(ctx, query, customerID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
