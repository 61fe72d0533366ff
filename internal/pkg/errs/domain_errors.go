package errs

import "errors"

// Sentinel errors shared across the usecase layers.
// Usecase packages mark their own sentinels with these so handlers can map
// whole categories to a status.
var (
	// Input that fails validation (bad date, malformed code, bad email)
	ErrValidation = errors.New("validation error")

	// Redemption token errors
	ErrTokenNotFound = errors.New("redemption token not found")
	ErrTokenExpired  = errors.New("redemption token expired")

	// Access credential errors
	ErrCredentialInvalid = errors.New("access credential invalid")
	ErrCredentialExpired = errors.New("access credential expired")
	ErrWrongKind         = errors.New("access credential kind mismatch")

	// Object storage has no such product; reported like an unknown token
	ErrProductNotFound = Mark(errors.New("product not found"), ErrTokenNotFound)

	// Scheduling errors
	ErrSlotUnavailable = errors.New("slot unavailable")

	// External dependency (calendar, mail, storage) failed or returned unusable data
	ErrUpstream = errors.New("upstream service error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
