package model

// Evaluation is the outcome of running a tier policy against a balance and
// an incoming quantity. Rewards preserves the order in which thresholds were
// crossed.
type Evaluation struct {
	NewPoints int
	Rewards   []RewardType
}

// RewardsCount returns the number of rewards earned by the evaluation.
func (e Evaluation) RewardsCount() int {
	return len(e.Rewards)
}

// EvaluateFunc computes an evaluation for the current balance. The accrual
// repository invokes it inside the transaction, after the customer row is
// locked.
type EvaluateFunc func(currentPoints int) Evaluation

// AccrualResult is returned to the caller of AddPoints.
type AccrualResult struct {
	PointsAdded    int
	NewPoints      int
	TotalPurchases int
	TotalRewards   int
	RewardsEarned  int
	Rewards        []RewardType
	Message        string
}
