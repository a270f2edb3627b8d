package repository

import (
	"context"
	"time"

	"github.com/fideleatome/loyalty/internal/domain/model"
)

// AccrualRequest carries one add-points call into the transactional apply.
// PointsToAdd must already be clamped to the valid range by the caller.
type AccrualRequest struct {
	CustomerID  int64
	BusinessID  int64
	PointsToAdd int
	Now         time.Time
}

// AccrualOutcome reports the state written by a successful apply.
type AccrualOutcome struct {
	PurchaseID     int64
	NewPoints      int
	TotalPurchases int
	TotalRewards   int
	Rewards        []model.RewardType
}

// AccrualRepository applies one accrual event as a single atomic unit:
// lock the customer row, evaluate the tier policy against the locked
// balance, append one purchase row plus one reward row per threshold
// crossed, and update the cached profile counters. Either every write
// becomes visible or none does.
//
// Concurrent applies for the same customer serialize on the row lock,
// so no read-modify-write update is ever lost.
type AccrualRepository interface {
	Apply(ctx context.Context, req AccrualRequest, evaluate model.EvaluateFunc) (*AccrualOutcome, error)
}
