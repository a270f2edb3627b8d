package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMalformedPayload   = errors.New("malformed qr payload")
	ErrQRMismatch         = errors.New("qr code mismatch")
	ErrForbidden          = errors.New("forbidden")
)
