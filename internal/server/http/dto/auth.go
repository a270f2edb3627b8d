package dto

// RegisterCustomerRequest describes the customer sign-up payload.
type RegisterCustomerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// RegisterBusinessRequest describes the business sign-up payload.
type RegisterBusinessRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	BusinessName string `json:"business_name"`
	ContactName  string `json:"contact_name"`
	Phone        string `json:"phone"`
}

// LoginRequest describes the email/password payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the issued bearer token.
type AuthResponse struct {
	Token string `json:"token"`
}
