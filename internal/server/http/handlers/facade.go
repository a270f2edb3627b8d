package handlers

import (
	"context"

	"github.com/fideleatome/loyalty/internal/domain/model"
	"github.com/fideleatome/loyalty/internal/domain/repository"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	RegisterCustomer(ctx context.Context, email, password, firstName, lastName string) (string, error)
	RegisterBusiness(ctx context.Context, email, password, businessName, contactName, phone string) (string, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
	ParseToken(token string) (int64, model.Role, error)
}

// CustomerFacade serves the customer-facing endpoints, keyed by account id.
type CustomerFacade interface {
	CustomerProfile(ctx context.Context, userID int64) (*model.CustomerProfile, error)
	CustomerCard(ctx context.Context, userID int64) (*model.Card, error)
	CustomerProgress(ctx context.Context, userID int64) (*model.CustomerStats, error)
	CustomerHistory(ctx context.Context, userID int64, limit, offset int) (*model.HistoryPage, error)
	CustomerRewards(ctx context.Context, userID int64, limit, offset int) (*model.RewardsPage, error)
}

// BusinessFacade serves the till-side endpoints, keyed by account id.
type BusinessFacade interface {
	BusinessProfile(ctx context.Context, userID int64) (*model.BusinessProfile, error)
	ScanCustomer(ctx context.Context, raw string) (*model.CustomerProfile, *model.CustomerStats, error)
	AddPoints(ctx context.Context, userID int64, raw string, quantity int) (*model.AccrualResult, error)
	BusinessDashboard(ctx context.Context, userID int64) (*model.BusinessStats, error)
	BusinessSales(ctx context.Context, userID int64, days int) ([]model.DailySales, error)
	BusinessTopCustomers(ctx context.Context, userID int64, limit int) ([]model.TopCustomer, error)
	BusinessCustomers(ctx context.Context, userID int64, search string, limit, offset int) (*repository.CustomerPage, error)
}

// LoyaltyFacade aggregates the full set of operations used across handlers.
type LoyaltyFacade interface {
	AuthFacade
	CustomerFacade
	BusinessFacade
}
