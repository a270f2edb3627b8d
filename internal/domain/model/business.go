package model

// BusinessProfile describes a participating business account.
type BusinessProfile struct {
	ID           int64
	UserID       int64
	BusinessName string
	ContactName  string
	Phone        string
}
