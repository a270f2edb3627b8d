package model

import "time"

// RewardType tags which tier threshold a reward came from.
type RewardType string

const (
	RewardAccessory RewardType = "accessory"
	RewardBobine    RewardType = "bobine"
)

// Reward is one earned reward, appended when a tier threshold is crossed.
type Reward struct {
	ID           int64
	CustomerID   int64
	BusinessID   int64
	PurchaseID   int64
	RewardType   RewardType
	EarnedDate   time.Time
	BusinessName string
}
