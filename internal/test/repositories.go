package test

import (
	"context"
	"strings"
	"time"

	domainErrors "github.com/fideleatome/loyalty/internal/domain/errors"
	"github.com/fideleatome/loyalty/internal/domain/model"
	"github.com/fideleatome/loyalty/internal/domain/repository"
)

// UserRepositoryStub stores accounts in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers account unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, email, passwordHash string, role model.Role) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.Users[email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Email: email, PasswordHash: passwordHash, Role: role, CreatedAt: time.Unix(0, 0)}
	s.Next++
	s.Users[email] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByEmail fetches account by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches account by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// CustomerRepositoryStub stores customer profiles in-memory for tests.
type CustomerRepositoryStub struct {
	Profiles map[int64]*model.CustomerProfile
	Next     int64
	Err      error

	ListFn  func(context.Context, int64, string, int, int) (*repository.CustomerPage, error)
	AuditFn func(context.Context, int64, int) ([]model.CustomerProfile, error)
}

// NewCustomerRepositoryStub constructs stub repository with initialized maps.
func NewCustomerRepositoryStub() *CustomerRepositoryStub {
	return &CustomerRepositoryStub{Profiles: make(map[int64]*model.CustomerProfile), Next: 1}
}

// Create registers profile with the next free identifier.
func (s *CustomerRepositoryStub) Create(ctx context.Context, userID int64, firstName, lastName, qrToken string) (*model.CustomerProfile, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Next == 0 {
		s.Next = 1
	}
	profile := &model.CustomerProfile{ID: s.Next, UserID: userID, FirstName: firstName, LastName: lastName, QRToken: qrToken}
	s.Next++
	s.Profiles[profile.ID] = profile
	return profile, nil
}

// GetByID fetches profile or returns not found.
func (s *CustomerRepositoryStub) GetByID(ctx context.Context, id int64) (*model.CustomerProfile, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if profile, ok := s.Profiles[id]; ok {
		return profile, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByUserID fetches the profile owned by an account.
func (s *CustomerRepositoryStub) GetByUserID(ctx context.Context, userID int64) (*model.CustomerProfile, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, profile := range s.Profiles {
		if profile.UserID == userID {
			return profile, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// GetByQRToken fetches the profile behind a card token.
func (s *CustomerRepositoryStub) GetByQRToken(ctx context.Context, qrToken string) (*model.CustomerProfile, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, profile := range s.Profiles {
		if profile.QRToken == qrToken {
			return profile, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByBusiness returns stored profiles filtered by name.
func (s *CustomerRepositoryStub) ListByBusiness(ctx context.Context, businessID int64, search string, limit, offset int) (*repository.CustomerPage, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, businessID, search, limit, offset)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	page := &repository.CustomerPage{}
	for _, profile := range s.Profiles {
		if search != "" && !strings.Contains(strings.ToLower(profile.FirstName+" "+profile.LastName), strings.ToLower(search)) {
			continue
		}
		page.Customers = append(page.Customers, *profile)
	}
	page.Total = len(page.Customers)
	return page, nil
}

// SelectBatchForAudit returns profiles with identifiers above the cursor.
func (s *CustomerRepositoryStub) SelectBatchForAudit(ctx context.Context, afterID int64, limit int) ([]model.CustomerProfile, error) {
	if s.AuditFn != nil {
		return s.AuditFn(ctx, afterID, limit)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	var batch []model.CustomerProfile
	for id := afterID + 1; len(batch) < limit && id < s.Next; id++ {
		if profile, ok := s.Profiles[id]; ok {
			batch = append(batch, *profile)
		}
	}
	return batch, nil
}

// BusinessRepositoryStub stores business profiles in-memory for tests.
type BusinessRepositoryStub struct {
	Profiles map[int64]*model.BusinessProfile
	Next     int64
	Err      error
}

// NewBusinessRepositoryStub constructs stub repository with initialized maps.
func NewBusinessRepositoryStub() *BusinessRepositoryStub {
	return &BusinessRepositoryStub{Profiles: make(map[int64]*model.BusinessProfile), Next: 1}
}

// Create registers profile with the next free identifier.
func (s *BusinessRepositoryStub) Create(ctx context.Context, userID int64, businessName, contactName, phone string) (*model.BusinessProfile, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Next == 0 {
		s.Next = 1
	}
	profile := &model.BusinessProfile{ID: s.Next, UserID: userID, BusinessName: businessName, ContactName: contactName, Phone: phone}
	s.Next++
	s.Profiles[profile.ID] = profile
	return profile, nil
}

// GetByID fetches profile or returns not found.
func (s *BusinessRepositoryStub) GetByID(ctx context.Context, id int64) (*model.BusinessProfile, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if profile, ok := s.Profiles[id]; ok {
		return profile, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByUserID fetches the profile owned by an account.
func (s *BusinessRepositoryStub) GetByUserID(ctx context.Context, userID int64) (*model.BusinessProfile, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, profile := range s.Profiles {
		if profile.UserID == userID {
			return profile, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// PurchaseRepositoryStub serves a configured purchase log.
type PurchaseRepositoryStub struct {
	Items []model.Purchase
	Err   error

	ListFn    func(context.Context, int64, int, int) ([]model.Purchase, error)
	HistoryFn func(context.Context, int64) ([]model.Purchase, error)
}

func (s *PurchaseRepositoryStub) forCustomer(customerID int64) []model.Purchase {
	var result []model.Purchase
	for _, p := range s.Items {
		if p.CustomerID == customerID {
			result = append(result, p)
		}
	}
	return result
}

// ListByCustomer pages through the configured log, newest last.
func (s *PurchaseRepositoryStub) ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]model.Purchase, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, customerID, limit, offset)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	items := s.forCustomer(customerID)
	if offset >= len(items) {
		return nil, nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end], nil
}

// CountByCustomer reports the configured log size.
func (s *PurchaseRepositoryStub) CountByCustomer(ctx context.Context, customerID int64) (int, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	return len(s.forCustomer(customerID)), nil
}

// HistoryByCustomer returns the full configured log in insertion order.
func (s *PurchaseRepositoryStub) HistoryByCustomer(ctx context.Context, customerID int64) ([]model.Purchase, error) {
	if s.HistoryFn != nil {
		return s.HistoryFn(ctx, customerID)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return s.forCustomer(customerID), nil
}

// RewardRepositoryStub serves a configured reward log.
type RewardRepositoryStub struct {
	Items []model.Reward
	Err   error
}

// ListByCustomer pages through the configured rewards.
func (s *RewardRepositoryStub) ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]model.Reward, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var items []model.Reward
	for _, r := range s.Items {
		if r.CustomerID == customerID {
			items = append(items, r)
		}
	}
	if offset >= len(items) {
		return nil, nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end], nil
}

// CountByCustomer reports the configured reward count.
func (s *RewardRepositoryStub) CountByCustomer(ctx context.Context, customerID int64) (int, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	count := 0
	for _, r := range s.Items {
		if r.CustomerID == customerID {
			count++
		}
	}
	return count, nil
}

// AccrualRepositoryStub simulates the transactional apply in memory.
// Seed registers a customer balance; Apply mutates it the way the real
// storage does, or fails without any visible change.
type AccrualRepositoryStub struct {
	ApplyFn func(context.Context, repository.AccrualRequest, model.EvaluateFunc) (*repository.AccrualOutcome, error)
	Err     error

	Points         map[int64]int
	TotalPurchases map[int64]int
	TotalRewards   map[int64]int
	Calls          []repository.AccrualRequest

	nextPurchaseID int64
}

// NewAccrualRepositoryStub constructs the stub with initialized maps.
func NewAccrualRepositoryStub() *AccrualRepositoryStub {
	return &AccrualRepositoryStub{
		Points:         make(map[int64]int),
		TotalPurchases: make(map[int64]int),
		TotalRewards:   make(map[int64]int),
	}
}

// Seed registers a customer with a starting balance.
func (s *AccrualRepositoryStub) Seed(customerID int64, points int) {
	s.Points[customerID] = points
}

// Apply evaluates against the stored balance and commits the outcome.
func (s *AccrualRepositoryStub) Apply(ctx context.Context, req repository.AccrualRequest, evaluate model.EvaluateFunc) (*repository.AccrualOutcome, error) {
	if s.ApplyFn != nil {
		return s.ApplyFn(ctx, req, evaluate)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	current, ok := s.Points[req.CustomerID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}

	eval := evaluate(current)
	s.Calls = append(s.Calls, req)
	s.nextPurchaseID++
	s.Points[req.CustomerID] = eval.NewPoints
	s.TotalPurchases[req.CustomerID] += req.PointsToAdd
	s.TotalRewards[req.CustomerID] += len(eval.Rewards)

	return &repository.AccrualOutcome{
		PurchaseID:     s.nextPurchaseID,
		NewPoints:      eval.NewPoints,
		TotalPurchases: s.TotalPurchases[req.CustomerID],
		TotalRewards:   s.TotalRewards[req.CustomerID],
		Rewards:        eval.Rewards,
	}, nil
}

// StatsRepositoryStub returns configured aggregates.
type StatsRepositoryStub struct {
	Stats *model.BusinessStats
	Sales []model.DailySales
	Top   []model.TopCustomer
	Err   error
}

// BusinessStats returns configured aggregate or error.
func (s *StatsRepositoryStub) BusinessStats(ctx context.Context, businessID int64, today time.Time) (*model.BusinessStats, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Stats == nil {
		return &model.BusinessStats{}, nil
	}
	return s.Stats, nil
}

// SalesByPeriod returns configured buckets.
func (s *StatsRepositoryStub) SalesByPeriod(ctx context.Context, businessID int64, since time.Time) ([]model.DailySales, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Sales, nil
}

// TopCustomers returns configured ranking.
func (s *StatsRepositoryStub) TopCustomers(ctx context.Context, businessID int64, limit int) ([]model.TopCustomer, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Top, nil
}
