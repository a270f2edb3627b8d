package qr

import (
	"encoding/json"
	"strings"

	domainErrors "github.com/fideleatome/loyalty/internal/domain/errors"
	"github.com/fideleatome/loyalty/internal/domain/model"
)

const (
	payloadApp  = "fideleatome"
	payloadType = "customer"
)

// CardPayload is the JSON document embedded in a customer's QR code.
// Scanners from other apps produce arbitrary strings, so decoding fails
// closed: a payload without the expected app and type markers is rejected.
type CardPayload struct {
	App        string `json:"app"`
	Type       string `json:"type"`
	CustomerID int64  `json:"id"`
	Token      string `json:"token"`
	Name       string `json:"name,omitempty"`
	Points     int    `json:"points,omitempty"`
}

// Codec parses scanned strings into card payloads and serializes the
// inverse for card display. Unknown fields in scanned payloads are ignored.
type Codec struct{}

// Decode parses a raw scanned string.
func (Codec) Decode(raw string) (*CardPayload, error) {
	var payload CardPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, domainErrors.ErrMalformedPayload
	}
	if payload.App != payloadApp || payload.Type != payloadType {
		return nil, domainErrors.ErrMalformedPayload
	}
	return &payload, nil
}

// Encode renders the QR payload for a customer's card.
func (Codec) Encode(customer *model.CustomerProfile) (string, error) {
	payload := CardPayload{
		App:        payloadApp,
		Type:       payloadType,
		CustomerID: customer.ID,
		Token:      customer.QRToken,
		Name:       strings.TrimSpace(customer.FirstName + " " + customer.LastName),
		Points:     customer.Points,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
