package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/oklog/ulid/v2"

	domainErrors "github.com/fideleatome/loyalty/internal/domain/errors"
	"github.com/fideleatome/loyalty/internal/domain/model"
	"github.com/fideleatome/loyalty/internal/domain/repository"
	pkgAuth "github.com/fideleatome/loyalty/internal/pkg/auth"
)

// newQRToken generates the opaque token stored on a customer's card.
var newQRToken = func() string {
	return ulid.Make().String()
}

// AuthUseCase handles account lifecycle and token management for both roles.
type AuthUseCase struct {
	users      repository.UserRepository
	customers  repository.CustomerRepository
	businesses repository.BusinessRepository
	hasher     pkgAuth.PasswordHasher
	tokens     pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(
	users repository.UserRepository,
	customers repository.CustomerRepository,
	businesses repository.BusinessRepository,
	hasher pkgAuth.PasswordHasher,
	strategy pkgAuth.Strategy,
) *AuthUseCase {
	return &AuthUseCase{users: users, customers: customers, businesses: businesses, hasher: hasher, tokens: strategy}
}

// RegisterCustomer creates a customer account with a fresh card token and
// returns the profile plus an auth token.
func (u *AuthUseCase) RegisterCustomer(ctx context.Context, email, password, firstName, lastName string) (*model.CustomerProfile, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" || strings.TrimSpace(firstName) == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	usr, err := u.users.Create(ctx, email, hash, model.RoleCustomer)
	if err != nil {
		return nil, "", err
	}

	profile, err := u.customers.Create(ctx, usr.ID, strings.TrimSpace(firstName), strings.TrimSpace(lastName), newQRToken())
	if err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(usr.ID, model.RoleCustomer)
	if err != nil {
		return nil, "", err
	}

	return profile, token, nil
}

// RegisterBusiness creates a business account and returns the profile plus
// an auth token.
func (u *AuthUseCase) RegisterBusiness(ctx context.Context, email, password, businessName, contactName, phone string) (*model.BusinessProfile, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" || strings.TrimSpace(businessName) == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	usr, err := u.users.Create(ctx, email, hash, model.RoleBusiness)
	if err != nil {
		return nil, "", err
	}

	profile, err := u.businesses.Create(ctx, usr.ID, strings.TrimSpace(businessName), strings.TrimSpace(contactName), strings.TrimSpace(phone))
	if err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(usr.ID, model.RoleBusiness)
	if err != nil {
		return nil, "", err
	}

	return profile, token, nil
}

// Authenticate validates credentials and returns the account plus auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(usr.ID, usr.Role)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken extracts the account identity from an auth token.
func (u *AuthUseCase) ParseToken(token string) (int64, model.Role, error) {
	if token == "" {
		return 0, "", pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// GetByID fetches an account by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}

// CustomerByUser resolves the customer profile owned by an account.
func (u *AuthUseCase) CustomerByUser(ctx context.Context, userID int64) (*model.CustomerProfile, error) {
	return u.customers.GetByUserID(ctx, userID)
}

// BusinessByUser resolves the business profile owned by an account.
func (u *AuthUseCase) BusinessByUser(ctx context.Context, userID int64) (*model.BusinessProfile, error) {
	return u.businesses.GetByUserID(ctx, userID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
