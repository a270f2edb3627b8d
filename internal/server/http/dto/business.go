package dto

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Quantity tolerates sloppy till clients: JSON numbers, numeric strings and
// garbage all decode. Unusable values become 1 so a scan never fails on the
// quantity field.
type Quantity int

func (q *Quantity) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*q = Quantity(n)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*q = Quantity(int(f))
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		s = strings.TrimSpace(s)
		if n, err := strconv.Atoi(s); err == nil {
			*q = Quantity(n)
			return nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			*q = Quantity(int(f))
			return nil
		}
	}
	*q = 1
	return nil
}

// BusinessProfileResponse describes the authenticated business.
type BusinessProfileResponse struct {
	ID           int64  `json:"id"`
	BusinessName string `json:"business_name"`
	ContactName  string `json:"contact_name"`
	Phone        string `json:"phone"`
}

// ScanRequest carries a raw scanned QR string.
type ScanRequest struct {
	Payload string `json:"payload"`
}

// ScannedCustomerResponse summarizes the customer behind a scanned card.
type ScannedCustomerResponse struct {
	ID             int64  `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Points         int    `json:"points"`
	Remaining      int    `json:"remaining"`
	NextReward     string `json:"next_reward"`
	TotalPurchases int    `json:"total_purchases"`
	TotalRewards   int    `json:"total_rewards"`
}

// AddPointsRequest carries a scanned card plus the purchase quantity.
type AddPointsRequest struct {
	Payload  string   `json:"payload"`
	Quantity Quantity `json:"quantity"`
}

// AccrualResponse reports the outcome of one visit.
type AccrualResponse struct {
	Message        string   `json:"message"`
	PointsAdded    int      `json:"points_added"`
	Points         int      `json:"points"`
	RewardsEarned  int      `json:"rewards_earned"`
	Rewards        []string `json:"rewards"`
	TotalPurchases int      `json:"total_purchases"`
	TotalRewards   int      `json:"total_rewards"`
}

// BusinessStatsResponse aggregates activity for the dashboard.
type BusinessStatsResponse struct {
	TotalCustomers int `json:"total_customers"`
	TotalPoints    int `json:"total_points"`
	TotalRewards   int `json:"total_rewards"`
	TodaySales     int `json:"today_sales"`
}

// DailySalesResponse is one bucket of the sales-by-period report.
type DailySalesResponse struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// TopCustomerResponse is one row of the best-customers ranking.
type TopCustomerResponse struct {
	CustomerID       int64      `json:"customer_id"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	Points           int        `json:"points"`
	TotalPurchases   int        `json:"total_purchases"`
	TotalRewards     int        `json:"total_rewards"`
	LastPurchaseDate *time.Time `json:"last_purchase_date,omitempty"`
}

// CustomerListResponse is a page of customers seen at a business.
type CustomerListResponse struct {
	Items []CustomerProfileResponse `json:"items"`
	Total int                       `json:"total"`
}
