package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fideleatome/loyalty/internal/domain/model"
	"github.com/fideleatome/loyalty/internal/loyalty"
)

// AuditFacade exposes the subset of application functionality required by the auditor.
type AuditFacade interface {
	CustomersForAudit(ctx context.Context, afterID int64, limit int) ([]model.CustomerProfile, error)
	PurchaseHistory(ctx context.Context, customerID int64) ([]model.Purchase, error)
}

// Auditor periodically replays each customer's purchase log through the tier
// policy and compares the result with the cached profile counters. The cached
// values are authoritative for serving requests; the auditor only reports
// divergence, it never repairs.
type Auditor struct {
	facade       AuditFacade
	policy       loyalty.TierPolicy
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.CustomerProfile
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
	cursor int64
}

// NewAuditor constructs the audit worker pool.
func NewAuditor(facade AuditFacade, policy loyalty.TierPolicy, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *Auditor {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Auditor{
		facade:       facade,
		policy:       policy,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.CustomerProfile, batchSize*workers),
	}
}

// Start launches background auditing.
func (a *Auditor) Start(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	for i := 0; i < a.workers; i++ {
		a.wg.Add(1)
		go a.worker(runCtx)
	}

	a.wg.Add(1)
	go a.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (a *Auditor) Stop() {
	a.mu.Lock()
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.mu.Unlock()

	a.wg.Wait()
}

func (a *Auditor) dispatch(ctx context.Context) {
	defer a.wg.Done()
	defer close(a.jobs)
	ticker := time.NewTicker(a.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.fetchAndDispatch(ctx)
		}
	}
}

func (a *Auditor) fetchAndDispatch(ctx context.Context) {
	customers, err := a.facade.CustomersForAudit(ctx, a.cursor, a.batchSize)
	if err != nil {
		a.logger.Error("fetch customers for audit failed", slog.String("error", err.Error()))
		return
	}
	if len(customers) == 0 {
		// Full pass finished; start over from the beginning.
		a.cursor = 0
		return
	}
	a.cursor = customers[len(customers)-1].ID

	for _, customer := range customers {
		select {
		case <-ctx.Done():
			return
		case a.jobs <- customer:
		}
	}
}

func (a *Auditor) worker(ctx context.Context) {
	defer a.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case customer, ok := <-a.jobs:
			if !ok {
				return
			}
			a.auditCustomer(ctx, customer)
		}
	}
}

func (a *Auditor) auditCustomer(ctx context.Context, customer model.CustomerProfile) bool {
	history, err := a.facade.PurchaseHistory(ctx, customer.ID)
	if err != nil {
		a.logger.Error("fetch purchase history failed",
			slog.Int64("customer_id", customer.ID),
			slog.String("error", err.Error()))
		return false
	}

	points, purchases, rewards := replay(a.policy, history)
	consistent := points == customer.Points &&
		purchases == customer.TotalPurchases &&
		rewards == customer.TotalRewards
	if !consistent {
		a.logger.Warn("cached counters diverge from purchase log",
			slog.Int64("customer_id", customer.ID),
			slog.Int("cached_points", customer.Points),
			slog.Int("replayed_points", points),
			slog.Int("cached_purchases", customer.TotalPurchases),
			slog.Int("replayed_purchases", purchases),
			slog.Int("cached_rewards", customer.TotalRewards),
			slog.Int("replayed_rewards", rewards))
	}
	return consistent
}

// replay folds the purchase log through the policy from a zero balance.
// purchases is the sum of points ever added, matching the lifetime counter.
func replay(policy loyalty.TierPolicy, history []model.Purchase) (points, purchases, rewards int) {
	for _, p := range history {
		eval := policy.Evaluate(points, p.PointsAdded)
		points = eval.NewPoints
		purchases += p.PointsAdded
		rewards += len(eval.Rewards)
	}
	return points, purchases, rewards
}
