package usecase

import (
	"context"
	"time"

	"github.com/fideleatome/loyalty/internal/domain/model"
	"github.com/fideleatome/loyalty/internal/domain/repository"
	"github.com/fideleatome/loyalty/internal/loyalty"
)

// StatsUseCase serves progress, history and dashboard aggregates.
type StatsUseCase struct {
	customers repository.CustomerRepository
	purchases repository.PurchaseRepository
	rewards   repository.RewardRepository
	stats     repository.StatsRepository
	policy    loyalty.TierPolicy
	now       func() time.Time
}

// NewStatsUseCase constructs StatsUseCase.
func NewStatsUseCase(
	customers repository.CustomerRepository,
	purchases repository.PurchaseRepository,
	rewards repository.RewardRepository,
	stats repository.StatsRepository,
	policy loyalty.TierPolicy,
) *StatsUseCase {
	return &StatsUseCase{customers: customers, purchases: purchases, rewards: rewards, stats: stats, policy: policy, now: time.Now}
}

// CustomerProgress reports the balance and the distance to the next reward.
func (u *StatsUseCase) CustomerProgress(ctx context.Context, customerID int64) (*model.CustomerStats, error) {
	customer, err := u.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	remaining, next := u.policy.NextThreshold(customer.Points)
	target := customer.Points + remaining
	var progress float64
	if target > 0 {
		progress = float64(customer.Points) / float64(target)
	}

	return &model.CustomerStats{
		Points:            customer.Points,
		Remaining:         remaining,
		NextReward:        next,
		Progress:          progress,
		TotalPurchases:    customer.TotalPurchases,
		TotalRewards:      customer.TotalRewards,
		FirstPurchaseDate: customer.FirstPurchaseDate,
		LastPurchaseDate:  customer.LastPurchaseDate,
	}, nil
}

// CustomerHistory returns a page of the purchase log, newest first.
func (u *StatsUseCase) CustomerHistory(ctx context.Context, customerID int64, limit, offset int) (*model.HistoryPage, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	items, err := u.purchases.ListByCustomer(ctx, customerID, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := u.purchases.CountByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return &model.HistoryPage{Purchases: items, Total: total}, nil
}

// CustomerRewards returns a page of earned rewards, newest first.
func (u *StatsUseCase) CustomerRewards(ctx context.Context, customerID int64, limit, offset int) (*model.RewardsPage, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	items, err := u.rewards.ListByCustomer(ctx, customerID, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := u.rewards.CountByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return &model.RewardsPage{Rewards: items, Total: total}, nil
}

// BusinessDashboard aggregates activity for one business.
func (u *StatsUseCase) BusinessDashboard(ctx context.Context, businessID int64) (*model.BusinessStats, error) {
	return u.stats.BusinessStats(ctx, businessID, u.now())
}

// SalesByPeriod buckets sales per day over the trailing period.
func (u *StatsUseCase) SalesByPeriod(ctx context.Context, businessID int64, days int) ([]model.DailySales, error) {
	if days <= 0 || days > 365 {
		days = 30
	}
	since := u.now().AddDate(0, 0, -days)
	return u.stats.SalesByPeriod(ctx, businessID, since)
}

// TopCustomers ranks customers by visits at this business.
func (u *StatsUseCase) TopCustomers(ctx context.Context, businessID int64, limit int) ([]model.TopCustomer, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return u.stats.TopCustomers(ctx, businessID, limit)
}

// Customers lists customers seen at this business, with optional search.
func (u *StatsUseCase) Customers(ctx context.Context, businessID int64, search string, limit, offset int) (*repository.CustomerPage, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return u.customers.ListByBusiness(ctx, businessID, search, limit, offset)
}
