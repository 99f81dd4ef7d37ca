package app

import "errors"

// Turn-level failures. Each one maps to a dedicated reply.
var (
	ErrTimeZoneMismatch     = errors.New("device time zone differs from the expected zone")
	ErrMissingAddressFields = errors.New("device address lacks street or postal code")
	ErrMissingPermission    = errors.New("address permission not granted")
)
