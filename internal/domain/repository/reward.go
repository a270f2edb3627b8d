package repository

import (
	"context"

	"github.com/fideleatome/loyalty/internal/domain/model"
)

// RewardRepository provides read access to the append-only reward log.
// Rows are written only by AccrualRepository.Apply.
type RewardRepository interface {
	ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]model.Reward, error)
	CountByCustomer(ctx context.Context, customerID int64) (int, error)
}
