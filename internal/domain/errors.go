package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrMissingInput           = errors.New("missing input")
	ErrUserNotFound           = errors.New("user not found")
	ErrInvalidCode            = errors.New("invalid verification code")
	ErrCodeExpired            = errors.New("verification code expired")
	ErrInvalidCodePurpose     = errors.New("invalid verification code purpose")
	ErrCredentialUpdateFailed = errors.New("credential update failed")
	ErrInvalidPayload         = errors.New("invalid push payload")
	ErrInvalidToken           = errors.New("invalid push token")
	ErrDeliveryFailed         = errors.New("delivery failed")
	ErrProviderNotInitialized = errors.New("provider not initialized")
	ErrUnexpected             = errors.New("unexpected error")

	ErrNotFound     = errors.New("not found")
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
)
