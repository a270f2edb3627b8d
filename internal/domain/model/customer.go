package model

import "time"

// CustomerProfile holds the loyalty state of one customer.
//
// Points is the balance within the active reward cycle. TotalPurchases
// accumulates every point ever added and TotalRewards counts rewards ever
// issued; both never decrease. All cached values must stay derivable from
// replaying the purchase log through the active tier policy.
type CustomerProfile struct {
	ID                int64
	UserID            int64
	FirstName         string
	LastName          string
	QRToken           string
	Points            int
	TotalPurchases    int
	TotalRewards      int
	FirstPurchaseDate *time.Time
	LastPurchaseDate  *time.Time
}
