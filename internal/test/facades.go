package test

import (
	"context"
	"sync"

	"github.com/fideleatome/loyalty/internal/domain/model"
	"github.com/fideleatome/loyalty/internal/domain/repository"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterCustomerFn func(context.Context, string, string, string, string) (string, error)
	RegisterBusinessFn func(context.Context, string, string, string, string, string) (string, error)
	AuthenticateFn     func(context.Context, string, string) (string, error)
	ParseFn            func(string) (int64, model.Role, error)
}

// RegisterCustomer returns token for successful registration scenarios.
func (s AuthFacadeStub) RegisterCustomer(ctx context.Context, email, password, firstName, lastName string) (string, error) {
	if s.RegisterCustomerFn != nil {
		return s.RegisterCustomerFn(ctx, email, password, firstName, lastName)
	}
	return "token", nil
}

// RegisterBusiness returns token for successful registration scenarios.
func (s AuthFacadeStub) RegisterBusiness(ctx context.Context, email, password, businessName, contactName, phone string) (string, error) {
	if s.RegisterBusinessFn != nil {
		return s.RegisterBusinessFn(ctx, email, password, businessName, contactName, phone)
	}
	return "token", nil
}

// Authenticate returns token for successful authentication scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, email, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return "token", nil
}

// ParseToken returns stored identity for the authenticated account.
func (s AuthFacadeStub) ParseToken(token string) (int64, model.Role, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, model.RoleCustomer, nil
}

// CustomerFacadeStub provides controllable behaviour for customer endpoints.
type CustomerFacadeStub struct {
	ProfileFn  func(context.Context, int64) (*model.CustomerProfile, error)
	CardFn     func(context.Context, int64) (*model.Card, error)
	ProgressFn func(context.Context, int64) (*model.CustomerStats, error)
	HistoryFn  func(context.Context, int64, int, int) (*model.HistoryPage, error)
	RewardsFn  func(context.Context, int64, int, int) (*model.RewardsPage, error)
}

// CustomerProfile delegates to override or returns a default profile.
func (s CustomerFacadeStub) CustomerProfile(ctx context.Context, userID int64) (*model.CustomerProfile, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, userID)
	}
	return &model.CustomerProfile{ID: 1, UserID: userID, FirstName: "Alice"}, nil
}

// CustomerCard delegates to override or returns a default card.
func (s CustomerFacadeStub) CustomerCard(ctx context.Context, userID int64) (*model.Card, error) {
	if s.CardFn != nil {
		return s.CardFn(ctx, userID)
	}
	return &model.Card{Payload: "{}", Token: "signed", ExpiresIn: 300}, nil
}

// CustomerProgress delegates to override or returns default progress.
func (s CustomerFacadeStub) CustomerProgress(ctx context.Context, userID int64) (*model.CustomerStats, error) {
	if s.ProgressFn != nil {
		return s.ProgressFn(ctx, userID)
	}
	return &model.CustomerStats{Points: 3, Remaining: 4, NextReward: model.RewardAccessory}, nil
}

// CustomerHistory delegates to override or returns an empty page.
func (s CustomerFacadeStub) CustomerHistory(ctx context.Context, userID int64, limit, offset int) (*model.HistoryPage, error) {
	if s.HistoryFn != nil {
		return s.HistoryFn(ctx, userID, limit, offset)
	}
	return &model.HistoryPage{}, nil
}

// CustomerRewards delegates to override or returns an empty page.
func (s CustomerFacadeStub) CustomerRewards(ctx context.Context, userID int64, limit, offset int) (*model.RewardsPage, error) {
	if s.RewardsFn != nil {
		return s.RewardsFn(ctx, userID, limit, offset)
	}
	return &model.RewardsPage{}, nil
}

// BusinessFacadeStub provides controllable behaviour for till endpoints.
type BusinessFacadeStub struct {
	ProfileFn   func(context.Context, int64) (*model.BusinessProfile, error)
	ScanFn      func(context.Context, string) (*model.CustomerProfile, *model.CustomerStats, error)
	AddPointsFn func(context.Context, int64, string, int) (*model.AccrualResult, error)
	DashboardFn func(context.Context, int64) (*model.BusinessStats, error)
	SalesFn     func(context.Context, int64, int) ([]model.DailySales, error)
	TopFn       func(context.Context, int64, int) ([]model.TopCustomer, error)
	CustomersFn func(context.Context, int64, string, int, int) (*repository.CustomerPage, error)
}

// BusinessProfile delegates to override or returns a default profile.
func (s BusinessFacadeStub) BusinessProfile(ctx context.Context, userID int64) (*model.BusinessProfile, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, userID)
	}
	return &model.BusinessProfile{ID: 2, UserID: userID, BusinessName: "Atome 3D"}, nil
}

// ScanCustomer delegates to override or returns a default customer.
func (s BusinessFacadeStub) ScanCustomer(ctx context.Context, raw string) (*model.CustomerProfile, *model.CustomerStats, error) {
	if s.ScanFn != nil {
		return s.ScanFn(ctx, raw)
	}
	return &model.CustomerProfile{ID: 1, FirstName: "Alice"}, &model.CustomerStats{Remaining: 4, NextReward: model.RewardAccessory}, nil
}

// AddPoints delegates to override or reports one added point.
func (s BusinessFacadeStub) AddPoints(ctx context.Context, userID int64, raw string, quantity int) (*model.AccrualResult, error) {
	if s.AddPointsFn != nil {
		return s.AddPointsFn(ctx, userID, raw, quantity)
	}
	return &model.AccrualResult{PointsAdded: 1, NewPoints: 1, Message: "Point ajouté ! 1 points - Plus que 6 pour Accessoire offert"}, nil
}

// BusinessDashboard delegates to override or returns empty stats.
func (s BusinessFacadeStub) BusinessDashboard(ctx context.Context, userID int64) (*model.BusinessStats, error) {
	if s.DashboardFn != nil {
		return s.DashboardFn(ctx, userID)
	}
	return &model.BusinessStats{}, nil
}

// BusinessSales delegates to override or returns no buckets.
func (s BusinessFacadeStub) BusinessSales(ctx context.Context, userID int64, days int) ([]model.DailySales, error) {
	if s.SalesFn != nil {
		return s.SalesFn(ctx, userID, days)
	}
	return nil, nil
}

// BusinessTopCustomers delegates to override or returns no rows.
func (s BusinessFacadeStub) BusinessTopCustomers(ctx context.Context, userID int64, limit int) ([]model.TopCustomer, error) {
	if s.TopFn != nil {
		return s.TopFn(ctx, userID, limit)
	}
	return nil, nil
}

// BusinessCustomers delegates to override or returns an empty page.
func (s BusinessFacadeStub) BusinessCustomers(ctx context.Context, userID int64, search string, limit, offset int) (*repository.CustomerPage, error) {
	if s.CustomersFn != nil {
		return s.CustomersFn(ctx, userID, search, limit, offset)
	}
	return &repository.CustomerPage{}, nil
}

// LoyaltyFacadeStub aggregates facade dependencies for HTTP layer tests.
type LoyaltyFacadeStub struct {
	AuthFacadeStub
	CustomerFacadeStub
	BusinessFacadeStub
}

// AuditFacadeStub mimics auditor interactions with the loyalty facade.
type AuditFacadeStub struct {
	sync.Mutex

	Batches   [][]model.CustomerProfile
	BatchesFn func(context.Context, int64, int) ([]model.CustomerProfile, error)
	HistoryFn func(context.Context, int64) ([]model.Purchase, error)

	Audited []int64

	batchIndex int
}

// CustomersForAudit serves configured batches in order, then empties.
func (s *AuditFacadeStub) CustomersForAudit(ctx context.Context, afterID int64, limit int) ([]model.CustomerProfile, error) {
	if s.BatchesFn != nil {
		return s.BatchesFn(ctx, afterID, limit)
	}
	s.Lock()
	defer s.Unlock()
	if s.batchIndex >= len(s.Batches) {
		return nil, nil
	}
	batch := s.Batches[s.batchIndex]
	s.batchIndex++
	return batch, nil
}

// PurchaseHistory records the audited customer and serves history.
func (s *AuditFacadeStub) PurchaseHistory(ctx context.Context, customerID int64) ([]model.Purchase, error) {
	s.Lock()
	s.Audited = append(s.Audited, customerID)
	s.Unlock()
	if s.HistoryFn != nil {
		return s.HistoryFn(ctx, customerID)
	}
	return nil, nil
}
