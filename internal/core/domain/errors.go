package domain

import (
	"errors"
	"fmt"
)

// Error categories. Handlers map these to HTTP status codes with errors.Is,
// so every service error must wrap exactly one of them.
var (
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// User errors
var (
	ErrUserNotFound       = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrEmailAlreadyExists = fmt.Errorf("%w: email already exists", ErrConflict)
	ErrUserInactive       = fmt.Errorf("%w: user account is inactive", ErrForbidden)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	ErrInvalidRole        = fmt.Errorf("%w: invalid role", ErrValidation)
)

// Membership request errors
var (
	ErrRequestNotFound           = fmt.Errorf("%w: membership request not found", ErrNotFound)
	ErrProfileIncomplete         = fmt.Errorf("%w: profile must be 100%% complete to submit a membership request", ErrValidation)
	ErrActiveRequestExists       = fmt.Errorf("%w: an active membership request already exists", ErrConflict)
	ErrInvalidTransition         = fmt.Errorf("%w: invalid status transition", ErrValidation)
	ErrPaymentVerificationFailed = fmt.Errorf("%w: payment verification failed", ErrValidation)
)

// Financial transaction errors
var (
	ErrTransactionNotFound     = fmt.Errorf("%w: transaction not found", ErrNotFound)
	ErrRejectionReasonRequired = fmt.Errorf("%w: rejection reason is required when rejecting a transaction", ErrValidation)
	ErrTransactionLocked       = fmt.Errorf("%w: cannot update approved or rejected transactions", ErrValidation)
	ErrTransactionNotDeletable = fmt.Errorf("%w: only draft or rejected transactions can be deleted", ErrValidation)
)

// Settings errors
var (
	ErrSettingNotFound      = fmt.Errorf("%w: setting not found", ErrNotFound)
	ErrSettingAlreadyExists = fmt.Errorf("%w: setting key already exists", ErrConflict)
)

// Token errors
var (
	ErrTokenExpired = fmt.Errorf("%w: token expired", ErrUnauthorized)
	ErrTokenInvalid = fmt.Errorf("%w: token invalid", ErrUnauthorized)
	ErrTokenRevoked = fmt.Errorf("%w: token revoked", ErrUnauthorized)
)
