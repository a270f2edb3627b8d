package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	domainErrors "github.com/fideleatome/loyalty/internal/domain/errors"
	"github.com/fideleatome/loyalty/internal/domain/model"
	pkgAuth "github.com/fideleatome/loyalty/internal/pkg/auth"
	testhelpers "github.com/fideleatome/loyalty/internal/test"
)

func newStrategyStub() testhelpers.StrategyStub {
	return testhelpers.StrategyStub{
		IssueFn: func(userID int64, role model.Role) (string, error) {
			return fmt.Sprintf("token-%d-%s", userID, role), nil
		},
		ParseFn: func(token string) (int64, model.Role, error) {
			var id int64
			var role model.Role
			if _, err := fmt.Sscanf(token, "token-%d-%s", &id, &role); err != nil {
				return 0, "", pkgAuth.ErrInvalidToken
			}
			return id, role, nil
		},
	}
}

func newAuthUseCase() (*AuthUseCase, *testhelpers.UserRepositoryStub, *testhelpers.CustomerRepositoryStub, *testhelpers.BusinessRepositoryStub) {
	users := testhelpers.NewUserRepositoryStub()
	customers := testhelpers.NewCustomerRepositoryStub()
	businesses := testhelpers.NewBusinessRepositoryStub()
	uc := NewAuthUseCase(users, customers, businesses, testhelpers.HasherStub{}, newStrategyStub())
	return uc, users, customers, businesses
}

func TestAuthUseCaseRegisterCustomer(t *testing.T) {
	uc, users, customers, _ := newAuthUseCase()
	ctx := context.Background()

	profile, token, err := uc.RegisterCustomer(ctx, "  Alice@Example.com ", "password", "Alice", "Martin")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if token != "token-1-customer" {
		t.Fatalf("unexpected token %q", token)
	}
	if profile.QRToken == "" {
		t.Fatal("expected card token to be assigned")
	}

	stored, err := users.GetByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("expected normalized email in repository: %v", err)
	}
	if stored.Role != model.RoleCustomer {
		t.Fatalf("unexpected role %q", stored.Role)
	}
	if stored.PasswordHash != "hash:password" {
		t.Fatalf("password hash not stored: %v", stored.PasswordHash)
	}
	if _, err := customers.GetByUserID(ctx, stored.ID); err != nil {
		t.Fatalf("expected profile for account: %v", err)
	}
}

func TestAuthUseCaseRegisterCustomerDuplicate(t *testing.T) {
	uc, _, _, _ := newAuthUseCase()
	ctx := context.Background()

	if _, _, err := uc.RegisterCustomer(ctx, "bob@example.com", "secret", "Bob", ""); err != nil {
		t.Fatalf("unexpected error on first register: %v", err)
	}
	if _, _, err := uc.RegisterCustomer(ctx, "bob@example.com", "secret", "Bob", ""); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestAuthUseCaseRegisterCustomerValidation(t *testing.T) {
	uc, _, _, _ := newAuthUseCase()
	ctx := context.Background()

	cases := []struct {
		name      string
		email     string
		password  string
		firstName string
	}{
		{"empty email", "", "pw", "Alice"},
		{"empty password", "a@b.c", "", "Alice"},
		{"empty first name", "a@b.c", "pw", "  "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := uc.RegisterCustomer(ctx, tc.email, tc.password, tc.firstName, ""); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestAuthUseCaseRegisterBusiness(t *testing.T) {
	uc, users, _, businesses := newAuthUseCase()
	ctx := context.Background()

	profile, token, err := uc.RegisterBusiness(ctx, "shop@example.com", "secret", "Atome 3D", "Paul", "0600000000")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if token != "token-1-business" {
		t.Fatalf("unexpected token %q", token)
	}
	if profile.BusinessName != "Atome 3D" {
		t.Fatalf("unexpected profile: %+v", profile)
	}

	stored, err := users.GetByEmail(ctx, "shop@example.com")
	if err != nil {
		t.Fatalf("expected account: %v", err)
	}
	if stored.Role != model.RoleBusiness {
		t.Fatalf("unexpected role %q", stored.Role)
	}
	if _, err := businesses.GetByUserID(ctx, stored.ID); err != nil {
		t.Fatalf("expected profile for account: %v", err)
	}
}

func TestAuthUseCaseAuthenticate(t *testing.T) {
	uc, _, _, _ := newAuthUseCase()
	ctx := context.Background()

	if _, _, err := uc.RegisterCustomer(ctx, "carol@example.com", "123456", "Carol", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, err := uc.Authenticate(ctx, "carol@example.com", "bad"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}
	if _, _, err := uc.Authenticate(ctx, "ghost@example.com", "123456"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown email, got %v", err)
	}

	usr, token, err := uc.Authenticate(ctx, "Carol@Example.com", "123456")
	if err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}
	if usr.Role != model.RoleCustomer || token == "" {
		t.Fatalf("unexpected result: %+v token=%q", usr, token)
	}
}

func TestAuthUseCaseParseToken(t *testing.T) {
	uc, _, _, _ := newAuthUseCase()

	if _, _, err := uc.ParseToken(""); !errors.Is(err, pkgAuth.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for empty token, got %v", err)
	}

	id, role, err := uc.ParseToken("token-7-business")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if id != 7 || role != model.RoleBusiness {
		t.Fatalf("unexpected identity: %d %s", id, role)
	}
}
