package dto

import "time"

// CustomerProfileResponse describes the authenticated customer.
type CustomerProfileResponse struct {
	ID             int64  `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Points         int    `json:"points"`
	TotalPurchases int    `json:"total_purchases"`
	TotalRewards   int    `json:"total_rewards"`
}

// CardResponse carries the QR card payload and its rotating signed token.
type CardResponse struct {
	Payload   string `json:"payload"`
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

// ProgressResponse reports loyalty progress toward the next reward.
type ProgressResponse struct {
	Points            int        `json:"points"`
	Remaining         int        `json:"remaining"`
	NextReward        string     `json:"next_reward"`
	Progress          float64    `json:"progress"`
	TotalPurchases    int        `json:"total_purchases"`
	TotalRewards      int        `json:"total_rewards"`
	FirstPurchaseDate *time.Time `json:"first_purchase_date,omitempty"`
	LastPurchaseDate  *time.Time `json:"last_purchase_date,omitempty"`
}

// PurchaseResponse describes one entry of the purchase history.
type PurchaseResponse struct {
	ID           int64     `json:"id"`
	BusinessName string    `json:"business_name"`
	PointsAdded  int       `json:"points_added"`
	IsReward     bool      `json:"is_reward"`
	PurchaseDate time.Time `json:"purchase_date"`
}

// HistoryResponse is a page of the purchase history.
type HistoryResponse struct {
	Items []PurchaseResponse `json:"items"`
	Total int                `json:"total"`
}

// RewardResponse describes one earned reward.
type RewardResponse struct {
	ID           int64     `json:"id"`
	BusinessName string    `json:"business_name"`
	RewardType   string    `json:"reward_type"`
	EarnedDate   time.Time `json:"earned_date"`
}

// RewardsResponse is a page of earned rewards.
type RewardsResponse struct {
	Items []RewardResponse `json:"items"`
	Total int              `json:"total"`
}
