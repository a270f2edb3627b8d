package app

import (
	"context"

	"github.com/fideleatome/loyalty/internal/domain/model"
	"github.com/fideleatome/loyalty/internal/domain/repository"
	"github.com/fideleatome/loyalty/internal/usecase"
)

// LoyaltyFacade is the single entry point the HTTP layer and the audit
// worker talk to. Endpoints are keyed by account id; the facade resolves
// the owning profile before delegating to the use cases.
type LoyaltyFacade struct {
	auth      *usecase.AuthUseCase
	accrual   *usecase.AccrualUseCase
	scan      *usecase.ScanUseCase
	stats     *usecase.StatsUseCase
	customers repository.CustomerRepository
	purchases repository.PurchaseRepository
}

// NewLoyaltyFacade constructs the facade.
func NewLoyaltyFacade(
	auth *usecase.AuthUseCase,
	accrual *usecase.AccrualUseCase,
	scan *usecase.ScanUseCase,
	stats *usecase.StatsUseCase,
	customers repository.CustomerRepository,
	purchases repository.PurchaseRepository,
) *LoyaltyFacade {
	return &LoyaltyFacade{auth: auth, accrual: accrual, scan: scan, stats: stats, customers: customers, purchases: purchases}
}

func (f *LoyaltyFacade) RegisterCustomer(ctx context.Context, email, password, firstName, lastName string) (string, error) {
	_, token, err := f.auth.RegisterCustomer(ctx, email, password, firstName, lastName)
	return token, err
}

func (f *LoyaltyFacade) RegisterBusiness(ctx context.Context, email, password, businessName, contactName, phone string) (string, error) {
	_, token, err := f.auth.RegisterBusiness(ctx, email, password, businessName, contactName, phone)
	return token, err
}

func (f *LoyaltyFacade) Authenticate(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, email, password)
	return token, err
}

func (f *LoyaltyFacade) ParseToken(token string) (int64, model.Role, error) {
	return f.auth.ParseToken(token)
}

func (f *LoyaltyFacade) CustomerProfile(ctx context.Context, userID int64) (*model.CustomerProfile, error) {
	return f.auth.CustomerByUser(ctx, userID)
}

func (f *LoyaltyFacade) CustomerCard(ctx context.Context, userID int64) (*model.Card, error) {
	profile, err := f.auth.CustomerByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return f.scan.Card(ctx, profile.ID)
}

func (f *LoyaltyFacade) CustomerProgress(ctx context.Context, userID int64) (*model.CustomerStats, error) {
	profile, err := f.auth.CustomerByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return f.stats.CustomerProgress(ctx, profile.ID)
}

func (f *LoyaltyFacade) CustomerHistory(ctx context.Context, userID int64, limit, offset int) (*model.HistoryPage, error) {
	profile, err := f.auth.CustomerByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return f.stats.CustomerHistory(ctx, profile.ID, limit, offset)
}

func (f *LoyaltyFacade) CustomerRewards(ctx context.Context, userID int64, limit, offset int) (*model.RewardsPage, error) {
	profile, err := f.auth.CustomerByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return f.stats.CustomerRewards(ctx, profile.ID, limit, offset)
}

func (f *LoyaltyFacade) BusinessProfile(ctx context.Context, userID int64) (*model.BusinessProfile, error) {
	return f.auth.BusinessByUser(ctx, userID)
}

func (f *LoyaltyFacade) ScanCustomer(ctx context.Context, raw string) (*model.CustomerProfile, *model.CustomerStats, error) {
	customer, err := f.scan.Resolve(ctx, raw)
	if err != nil {
		return nil, nil, err
	}
	progress, err := f.stats.CustomerProgress(ctx, customer.ID)
	if err != nil {
		return nil, nil, err
	}
	return customer, progress, nil
}

func (f *LoyaltyFacade) AddPoints(ctx context.Context, userID int64, raw string, quantity int) (*model.AccrualResult, error) {
	business, err := f.auth.BusinessByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	customer, err := f.scan.Resolve(ctx, raw)
	if err != nil {
		return nil, err
	}
	return f.accrual.AddPoints(ctx, customer.ID, business.ID, quantity)
}

func (f *LoyaltyFacade) BusinessDashboard(ctx context.Context, userID int64) (*model.BusinessStats, error) {
	business, err := f.auth.BusinessByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return f.stats.BusinessDashboard(ctx, business.ID)
}

func (f *LoyaltyFacade) BusinessSales(ctx context.Context, userID int64, days int) ([]model.DailySales, error) {
	business, err := f.auth.BusinessByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return f.stats.SalesByPeriod(ctx, business.ID, days)
}

func (f *LoyaltyFacade) BusinessTopCustomers(ctx context.Context, userID int64, limit int) ([]model.TopCustomer, error) {
	business, err := f.auth.BusinessByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return f.stats.TopCustomers(ctx, business.ID, limit)
}

func (f *LoyaltyFacade) BusinessCustomers(ctx context.Context, userID int64, search string, limit, offset int) (*repository.CustomerPage, error) {
	business, err := f.auth.BusinessByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return f.stats.Customers(ctx, business.ID, search, limit, offset)
}

// CustomersForAudit feeds the consistency audit worker.
func (f *LoyaltyFacade) CustomersForAudit(ctx context.Context, afterID int64, limit int) ([]model.CustomerProfile, error) {
	return f.customers.SelectBatchForAudit(ctx, afterID, limit)
}

// PurchaseHistory returns the full replay feed for one customer.
func (f *LoyaltyFacade) PurchaseHistory(ctx context.Context, customerID int64) ([]model.Purchase, error) {
	return f.purchases.HistoryByCustomer(ctx, customerID)
}
