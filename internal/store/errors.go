package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrRunAlreadyExists is returned when a run with the same ID is stored.
	ErrRunAlreadyExists = errors.New("flow run already exists")

	// ErrRunNotFound is returned when no run matches a lookup.
	ErrRunNotFound = errors.New("flow run was not found")

	// ErrRunNotSaved is returned when an INSERT completes without error but
	// affects no rows.
	ErrRunNotSaved = errors.New("flow run was not saved")
)

// Low-level database operation errors.
var (
	ErrBuildingSQLQuery = errors.New("error building sql query")
	ErrExecutingQuery   = errors.New("error executing sql query")
	ErrScanningRow      = errors.New("failed to scan flow run row")
	ErrScanningRows     = errors.New("failed to scan flow run rows")
	ErrUnsupportedDSN   = errors.New("unsupported database dsn")
)
