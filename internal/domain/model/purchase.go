package model

import "time"

// Purchase is one append-only accrual event. Rows are never updated or
// deleted; together with rewards they form the audit trail.
type Purchase struct {
	ID           int64
	CustomerID   int64
	BusinessID   int64
	PointsAdded  int
	IsReward     bool
	PurchaseDate time.Time
	BusinessName string
}
