package qr

import (
	"encoding/json"
	"errors"
	"testing"

	domainErrors "github.com/fideleatome/loyalty/internal/domain/errors"
	"github.com/fideleatome/loyalty/internal/domain/model"
)

func TestCodecDecode(t *testing.T) {
	codec := Codec{}
	payload, err := codec.Decode(`{"app":"fideleatome","type":"customer","id":42,"token":"tok-42"}`)
	if err != nil {
		t.Fatalf("decode returned error: %v", err)
	}
	if payload.CustomerID != 42 || payload.Token != "tok-42" {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestCodecDecodeIgnoresUnknownFields(t *testing.T) {
	codec := Codec{}
	raw := `{"app":"fideleatome","type":"customer","id":7,"token":"t","first_name":"Léa","extra":{"nested":true}}`
	payload, err := codec.Decode(raw)
	if err != nil {
		t.Fatalf("decode returned error: %v", err)
	}
	if payload.CustomerID != 7 {
		t.Fatalf("unexpected customer id %d", payload.CustomerID)
	}
}

func TestCodecDecodeRejections(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", "79927398713"},
		{"empty", ""},
		{"wrong app", `{"app":"other","type":"customer","id":1}`},
		{"wrong type", `{"app":"fideleatome","type":"business","id":1}`},
		{"missing app", `{"type":"customer","id":1}`},
		{"missing type", `{"app":"fideleatome","id":1}`},
	}
	codec := Codec{}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := codec.Decode(tc.raw); !errors.Is(err, domainErrors.ErrMalformedPayload) {
				t.Fatalf("expected ErrMalformedPayload, got %v", err)
			}
		})
	}
}

func TestCodecEncodeRoundTrip(t *testing.T) {
	codec := Codec{}
	customer := &model.CustomerProfile{ID: 9, FirstName: "Marie", LastName: "Curie", QRToken: "tok-9", Points: 4}
	raw, err := codec.Encode(customer)
	if err != nil {
		t.Fatalf("encode returned error: %v", err)
	}

	var generic map[string]any
	if err := json.Unmarshal([]byte(raw), &generic); err != nil {
		t.Fatalf("encoded payload is not valid JSON: %v", err)
	}
	if generic["app"] != "fideleatome" || generic["type"] != "customer" {
		t.Fatalf("missing app/type markers: %v", generic)
	}
	if generic["name"] != "Marie Curie" {
		t.Fatalf("unexpected name %v", generic["name"])
	}

	payload, err := codec.Decode(raw)
	if err != nil {
		t.Fatalf("decode of encoded payload failed: %v", err)
	}
	if payload.CustomerID != customer.ID || payload.Token != customer.QRToken {
		t.Fatalf("round trip mismatch: %+v", payload)
	}
}
