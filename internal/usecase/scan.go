package usecase

import (
	"context"
	"errors"

	domainErrors "github.com/fideleatome/loyalty/internal/domain/errors"
	"github.com/fideleatome/loyalty/internal/domain/model"
	"github.com/fideleatome/loyalty/internal/domain/repository"
	"github.com/fideleatome/loyalty/internal/qr"
)

// ScanUseCase resolves scanned QR strings to customer profiles and issues
// short-lived signed card tokens for display.
type ScanUseCase struct {
	customers repository.CustomerRepository
	codec     qr.Codec
	issuer    *qr.TokenIssuer
}

// NewScanUseCase constructs ScanUseCase.
func NewScanUseCase(customers repository.CustomerRepository, codec qr.Codec, issuer *qr.TokenIssuer) *ScanUseCase {
	return &ScanUseCase{customers: customers, codec: codec, issuer: issuer}
}

// Resolve identifies the customer behind a scanned string. Two formats are
// accepted: the JSON card payload and the signed token from a refreshed
// card. Anything else is rejected as malformed.
func (u *ScanUseCase) Resolve(ctx context.Context, raw string) (*model.CustomerProfile, error) {
	if payload, err := u.codec.Decode(raw); err == nil {
		customer, err := u.customers.GetByQRToken(ctx, payload.Token)
		if err != nil {
			return nil, err
		}
		if payload.CustomerID != customer.ID {
			return nil, domainErrors.ErrQRMismatch
		}
		return customer, nil
	} else if !errors.Is(err, domainErrors.ErrMalformedPayload) {
		return nil, err
	}

	customerID, cardToken, err := u.issuer.Validate(raw)
	if err != nil {
		return nil, err
	}

	customer, err := u.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer.QRToken != cardToken {
		return nil, domainErrors.ErrQRMismatch
	}
	return customer, nil
}

// Card renders the QR payload plus a fresh signed token for display.
func (u *ScanUseCase) Card(ctx context.Context, customerID int64) (*model.Card, error) {
	customer, err := u.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	payload, err := u.codec.Encode(customer)
	if err != nil {
		return nil, err
	}
	token, err := u.issuer.Issue(customer.ID, customer.QRToken)
	if err != nil {
		return nil, err
	}
	return &model.Card{Payload: payload, Token: token, ExpiresIn: u.CardTokenTTL()}, nil
}

// CardPayload renders the static QR payload for a customer's card.
func (u *ScanUseCase) CardPayload(ctx context.Context, customerID int64) (string, error) {
	customer, err := u.customers.GetByID(ctx, customerID)
	if err != nil {
		return "", err
	}
	return u.codec.Encode(customer)
}

// CardToken issues a fresh signed token for a customer's rotating card QR.
func (u *ScanUseCase) CardToken(ctx context.Context, customerID int64) (string, error) {
	customer, err := u.customers.GetByID(ctx, customerID)
	if err != nil {
		return "", err
	}
	return u.issuer.Issue(customer.ID, customer.QRToken)
}

// CardTokenTTL reports how long issued card tokens stay valid.
func (u *ScanUseCase) CardTokenTTL() int64 {
	return int64(u.issuer.TTL().Seconds())
}
