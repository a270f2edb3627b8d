package model

import "time"

// Role separates the two account kinds of the loyalty program.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleBusiness Role = "business"
)

// User represents an authenticated account, customer or business.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
