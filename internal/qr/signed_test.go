package qr

import (
	"errors"
	"testing"
	"time"

	domainErrors "github.com/fideleatome/loyalty/internal/domain/errors"
)

func TestTokenIssuerRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute)
	raw, err := issuer.Issue(42, "tok-42")
	if err != nil {
		t.Fatalf("issue returned error: %v", err)
	}

	customerID, qrToken, err := issuer.Validate(raw)
	if err != nil {
		t.Fatalf("validate returned error: %v", err)
	}
	if customerID != 42 || qrToken != "tok-42" {
		t.Fatalf("unexpected claims: %d %q", customerID, qrToken)
	}
}

func TestTokenIssuerDefaultTTL(t *testing.T) {
	issuer := NewTokenIssuer("secret", 0)
	if issuer.TTL() != 5*time.Minute {
		t.Fatalf("unexpected default ttl %s", issuer.TTL())
	}
}

func TestTokenIssuerRejectsGarbage(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute)
	if _, _, err := issuer.Validate("not-a-token"); !errors.Is(err, domainErrors.ErrMalformedPayload) {
		t.Fatalf("expected ErrMalformedPayload, got %v", err)
	}
}

func TestTokenIssuerRejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute)
	issuer.ttl = -time.Minute
	raw, err := issuer.Issue(1, "tok")
	if err != nil {
		t.Fatalf("issue returned error: %v", err)
	}
	if _, _, err := issuer.Validate(raw); !errors.Is(err, domainErrors.ErrMalformedPayload) {
		t.Fatalf("expected ErrMalformedPayload for expired token, got %v", err)
	}
}

func TestTokenIssuerRejectsForeignSecret(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute)
	other := NewTokenIssuer("different", time.Minute)
	raw, err := other.Issue(1, "tok")
	if err != nil {
		t.Fatalf("issue returned error: %v", err)
	}
	if _, _, err := issuer.Validate(raw); !errors.Is(err, domainErrors.ErrMalformedPayload) {
		t.Fatalf("expected ErrMalformedPayload for foreign signature, got %v", err)
	}
}
