package geofeed

import "errors"

var (
	// ErrNoRowsProvided rejects an import request with an empty row list
	// before any storage access.
	ErrNoRowsProvided = errors.New("no rows provided")

	// ErrNoValidRows rejects a commit in which every submitted row failed
	// re-validation; nothing has been written when it is returned.
	ErrNoValidRows = errors.New("no valid rows to import")

	// ErrGeofeedNotFound covers both a missing geofeed and an ownership
	// mismatch; callers must not be able to distinguish the two.
	ErrGeofeedNotFound = errors.New("geofeed not found")
)

// Row diagnostic strings, reported per row and shown to the user verbatim.
const (
	ReasonWrongFieldCount   = "Expected 5 comma-separated values"
	ReasonInvalidCIDR       = "Invalid CIDR network"
	ReasonInvalidAlpha2     = "Invalid alpha2code"
	ReasonBatchDuplicate    = "Duplicate in import file"
	ReasonExistingDuplicate = "Duplicate of existing range"
)
