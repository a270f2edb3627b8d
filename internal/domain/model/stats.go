package model

import "time"

// CustomerStats describes progress toward the next reward.
type CustomerStats struct {
	Points            int
	Remaining         int
	NextReward        RewardType
	Progress          float64
	TotalPurchases    int
	TotalRewards      int
	FirstPurchaseDate *time.Time
	LastPurchaseDate  *time.Time
}

// BusinessStats aggregates activity visible to one business.
type BusinessStats struct {
	TotalCustomers int
	TotalPoints    int
	TotalRewards   int
	TodaySales     int
}

// DailySales is one bucket of the sales-by-period report.
type DailySales struct {
	Date  time.Time
	Count int
}

// TopCustomer is one row of the best-customers ranking.
type TopCustomer struct {
	CustomerID       int64
	FirstName        string
	LastName         string
	Points           int
	TotalPurchases   int
	TotalRewards     int
	LastPurchaseDate *time.Time
}
