package postgres

import (
	"context"
	"time"

	"github.com/fideleatome/loyalty/internal/domain/model"
)

type statsRepository struct {
	storage *Storage
}

func (r *statsRepository) BusinessStats(ctx context.Context, businessID int64, today time.Time) (*model.BusinessStats, error) {
	const query = `SELECT
                     (SELECT COUNT(DISTINCT customer_id) FROM purchases WHERE business_id=$1),
                     (SELECT COALESCE(SUM(points_added), 0) FROM purchases WHERE business_id=$1),
                     (SELECT COUNT(*) FROM rewards WHERE business_id=$1),
                     (SELECT COUNT(*) FROM purchases WHERE business_id=$1 AND purchase_date >= $2)`

	startOfDay := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())

	var stats model.BusinessStats
	err := r.storage.pool.QueryRow(ctx, query, businessID, startOfDay).Scan(
		&stats.TotalCustomers, &stats.TotalPoints, &stats.TotalRewards, &stats.TodaySales)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *statsRepository) SalesByPeriod(ctx context.Context, businessID int64, since time.Time) ([]model.DailySales, error) {
	const query = `SELECT date_trunc('day', purchase_date) AS day, COUNT(*)
                   FROM purchases
                   WHERE business_id=$1 AND purchase_date >= $2
                   GROUP BY day
                   ORDER BY day`
	rows, err := r.storage.pool.Query(ctx, query, businessID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.DailySales
	for rows.Next() {
		var d model.DailySales
		if err := rows.Scan(&d.Date, &d.Count); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *statsRepository) TopCustomers(ctx context.Context, businessID int64, limit int) ([]model.TopCustomer, error) {
	const query = `SELECT cp.id, cp.first_name, cp.last_name, cp.points, cp.total_purchases,
                          cp.total_rewards, cp.last_purchase_date, COUNT(p.id) AS visits
                   FROM purchases p
                   JOIN customer_profiles cp ON cp.id = p.customer_id
                   WHERE p.business_id=$1
                   GROUP BY cp.id, cp.first_name, cp.last_name, cp.points, cp.total_purchases,
                            cp.total_rewards, cp.last_purchase_date
                   ORDER BY visits DESC, cp.last_purchase_date DESC NULLS LAST
                   LIMIT $2`
	rows, err := r.storage.pool.Query(ctx, query, businessID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.TopCustomer
	for rows.Next() {
		var tc model.TopCustomer
		var visits int
		if err := rows.Scan(&tc.CustomerID, &tc.FirstName, &tc.LastName, &tc.Points,
			&tc.TotalPurchases, &tc.TotalRewards, &tc.LastPurchaseDate, &visits); err != nil {
			return nil, err
		}
		result = append(result, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
