package model

// Card bundles everything a client needs to render a customer's QR card.
type Card struct {
	Payload   string
	Token     string
	ExpiresIn int64
}

// HistoryPage bundles a purchase history slice with its total count.
type HistoryPage struct {
	Purchases []Purchase
	Total     int
}

// RewardsPage bundles a rewards slice with its total count.
type RewardsPage struct {
	Rewards []Reward
	Total   int
}
