package repository

import (
	"context"

	"github.com/fideleatome/loyalty/internal/domain/model"
)

// CustomerPage bundles a listing slice with its total count.
type CustomerPage struct {
	Customers []model.CustomerProfile
	Total     int
}

// CustomerRepository describes persistence operations for customer profiles.
//
// Loyalty counters on the profile are mutated exclusively through
// AccrualRepository.Apply; this repository only creates and reads profiles.
type CustomerRepository interface {
	Create(ctx context.Context, userID int64, firstName, lastName, qrToken string) (*model.CustomerProfile, error)
	GetByID(ctx context.Context, id int64) (*model.CustomerProfile, error)
	GetByUserID(ctx context.Context, userID int64) (*model.CustomerProfile, error)
	GetByQRToken(ctx context.Context, qrToken string) (*model.CustomerProfile, error)
	ListByBusiness(ctx context.Context, businessID int64, search string, limit, offset int) (*CustomerPage, error)
	SelectBatchForAudit(ctx context.Context, afterID int64, limit int) ([]model.CustomerProfile, error)
}
