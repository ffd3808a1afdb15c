package errs

import "errors"

// Sentinel errors shared across usecase layers
var (
	// Product errors
	ErrProductNotFound = errors.New("product not found")

	// Group buy errors
	ErrGroupNotFound       = errors.New("group buy not found")
	ErrGroupAlreadyClosed  = errors.New("group buy already closed")
	ErrConcurrencyConflict = errors.New("concurrent group update conflict")

	// Order errors
	ErrOrderNotFound = errors.New("order not found")

	// User errors
	ErrUserNotFound = errors.New("user not found")

	// Sweep errors
	ErrSweepInProgress = errors.New("expiration sweep already in progress")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
