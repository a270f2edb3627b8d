package usecase

import (
	"context"
	"time"

	"github.com/fideleatome/loyalty/internal/domain/model"
	"github.com/fideleatome/loyalty/internal/domain/repository"
	"github.com/fideleatome/loyalty/internal/loyalty"
)

// AccrualUseCase adds points to a customer card and reports earned rewards.
type AccrualUseCase struct {
	accruals repository.AccrualRepository
	policy   loyalty.TierPolicy
	now      func() time.Time
}

// NewAccrualUseCase constructs AccrualUseCase.
func NewAccrualUseCase(accruals repository.AccrualRepository, policy loyalty.TierPolicy) *AccrualUseCase {
	return &AccrualUseCase{accruals: accruals, policy: policy, now: time.Now}
}

// AddPoints records one visit. The quantity is clamped to the valid range,
// never rejected, so a scan at the till always succeeds. The tier policy
// runs inside the storage transaction against the locked balance.
func (u *AccrualUseCase) AddPoints(ctx context.Context, customerID, businessID int64, quantity int) (*model.AccrualResult, error) {
	points := loyalty.ClampQuantity(quantity)

	var eval model.Evaluation
	outcome, err := u.accruals.Apply(ctx, repository.AccrualRequest{
		CustomerID:  customerID,
		BusinessID:  businessID,
		PointsToAdd: points,
		Now:         u.now().UTC(),
	}, func(currentPoints int) model.Evaluation {
		eval = u.policy.Evaluate(currentPoints, points)
		return eval
	})
	if err != nil {
		return nil, err
	}

	return &model.AccrualResult{
		PointsAdded:    points,
		NewPoints:      outcome.NewPoints,
		TotalPurchases: outcome.TotalPurchases,
		TotalRewards:   outcome.TotalRewards,
		RewardsEarned:  len(outcome.Rewards),
		Rewards:        outcome.Rewards,
		Message:        loyalty.Message(u.policy, points, eval),
	}, nil
}

// Policy exposes the active tier policy.
func (u *AccrualUseCase) Policy() loyalty.TierPolicy {
	return u.policy
}
