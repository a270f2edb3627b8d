package repository

import (
	"context"
	"time"

	"github.com/fideleatome/loyalty/internal/domain/model"
)

// StatsRepository aggregates purchase and reward history for dashboards.
type StatsRepository interface {
	BusinessStats(ctx context.Context, businessID int64, today time.Time) (*model.BusinessStats, error)
	SalesByPeriod(ctx context.Context, businessID int64, since time.Time) ([]model.DailySales, error)
	TopCustomers(ctx context.Context, businessID int64, limit int) ([]model.TopCustomer, error)
}
