// Package common defines shared sentinel errors used across the bot core.
// Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Dialog input errors: missing labels, malformed date, empty required fields.
	ErrValidation = errors.New("validation error")
)
