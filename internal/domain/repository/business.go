package repository

import (
	"context"

	"github.com/fideleatome/loyalty/internal/domain/model"
)

// BusinessRepository describes persistence operations for business profiles.
type BusinessRepository interface {
	Create(ctx context.Context, userID int64, businessName, contactName, phone string) (*model.BusinessProfile, error)
	GetByID(ctx context.Context, id int64) (*model.BusinessProfile, error)
	GetByUserID(ctx context.Context, userID int64) (*model.BusinessProfile, error)
}
