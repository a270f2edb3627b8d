package loyalty

import (
	"fmt"

	"github.com/fideleatome/loyalty/internal/domain/model"
)

// Policy names accepted by configuration.
const (
	PolicySingleTier = "single-tier"
	PolicyDualTier   = "dual-tier"
)

// Quantity bounds for one accrual event. Out-of-range input is clamped,
// never rejected.
const (
	MinQuantity = 1
	MaxQuantity = 100
)

// TierPolicy decides how an incoming quantity moves a balance across reward
// thresholds. Evaluate is pure and deterministic: identical inputs always
// yield identical outputs, and no error can occur for points >= 0 and a
// clamped quantity.
type TierPolicy interface {
	Name() string
	Evaluate(currentPoints, pointsToAdd int) model.Evaluation
	// NextThreshold reports how far the balance is from the next reward.
	NextThreshold(points int) (remaining int, reward model.RewardType)
	// RewardName returns the user-facing label of a reward type.
	RewardName(rt model.RewardType) string
}

// ForName resolves a configured policy name.
func ForName(name string) (TierPolicy, error) {
	switch name {
	case PolicySingleTier:
		return SingleTierPolicy{}, nil
	case PolicyDualTier:
		return DualTierPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown loyalty policy %q", name)
	}
}

// ClampQuantity coerces a requested quantity into [MinQuantity, MaxQuantity].
func ClampQuantity(quantity int) int {
	if quantity < MinQuantity {
		return MinQuantity
	}
	if quantity > MaxQuantity {
		return MaxQuantity
	}
	return quantity
}

// SingleTierPolicy grants one reward per full cycle of 15 points and carries
// the remainder into the next cycle.
type SingleTierPolicy struct{}

const singleTierRequired = 15

func (SingleTierPolicy) Name() string { return PolicySingleTier }

func (SingleTierPolicy) Evaluate(currentPoints, pointsToAdd int) model.Evaluation {
	raw := currentPoints + pointsToAdd
	earned := raw / singleTierRequired
	rewards := make([]model.RewardType, 0, earned)
	for i := 0; i < earned; i++ {
		rewards = append(rewards, model.RewardBobine)
	}
	return model.Evaluation{NewPoints: raw % singleTierRequired, Rewards: rewards}
}

func (SingleTierPolicy) NextThreshold(points int) (int, model.RewardType) {
	return singleTierRequired - points%singleTierRequired, model.RewardBobine
}

func (SingleTierPolicy) RewardName(rt model.RewardType) string {
	if rt == model.RewardBobine {
		return "Bobine gratuite"
	}
	return string(rt)
}

// DualTierPolicy runs a 15-point cycle with a minor threshold at 7. Reaching
// 7 earns an accessory, reaching 15 earns a bobine and resets the cycle,
// re-arming the minor threshold.
type DualTierPolicy struct{}

const (
	dualTierMinor = 7
	dualTierMajor = 15
)

func (DualTierPolicy) Name() string { return PolicyDualTier }

// Evaluate walks the quantity threshold gap by threshold gap. The two
// thresholds are asymmetric and order dependent, so the quantity cannot be
// applied in one arithmetic step: an accessory fires exactly when the balance
// reaches 7 from below, a bobine fires when it reaches 15, and the reset
// re-arms the accessory for the remainder of the quantity.
func (DualTierPolicy) Evaluate(currentPoints, pointsToAdd int) model.Evaluation {
	// The policy itself never leaves a balance at or above the major
	// threshold; a foreign out-of-range balance is folded into the cycle.
	current := currentPoints % dualTierMajor

	var rewards []model.RewardType
	remaining := pointsToAdd
	for remaining > 0 {
		if current < dualTierMinor {
			step := min(dualTierMinor-current, remaining)
			current += step
			remaining -= step
			if current == dualTierMinor {
				rewards = append(rewards, model.RewardAccessory)
			}
			if remaining == 0 {
				break
			}
		}
		step := min(dualTierMajor-current, remaining)
		current += step
		remaining -= step
		if current == dualTierMajor {
			rewards = append(rewards, model.RewardBobine)
			current = 0
		}
	}

	return model.Evaluation{NewPoints: current, Rewards: rewards}
}

func (DualTierPolicy) NextThreshold(points int) (int, model.RewardType) {
	p := points % dualTierMajor
	if p < dualTierMinor {
		return dualTierMinor - p, model.RewardAccessory
	}
	return dualTierMajor - p, model.RewardBobine
}

func (DualTierPolicy) RewardName(rt model.RewardType) string {
	switch rt {
	case model.RewardAccessory:
		return "Accessoire offert"
	case model.RewardBobine:
		return "Bobine Bambu Lab (blanc ou noir) refill PLA"
	}
	return string(rt)
}
