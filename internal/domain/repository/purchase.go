package repository

import (
	"context"

	"github.com/fideleatome/loyalty/internal/domain/model"
)

// PurchaseRepository provides read access to the append-only purchase log.
// Rows are written only by AccrualRepository.Apply.
type PurchaseRepository interface {
	ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]model.Purchase, error)
	CountByCustomer(ctx context.Context, customerID int64) (int, error)
	// HistoryByCustomer returns the full purchase log in insertion order,
	// the replay feed for the consistency audit.
	HistoryByCustomer(ctx context.Context, customerID int64) ([]model.Purchase, error)
}
