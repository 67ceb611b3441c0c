package social

import (
	"errors"
	"fmt"
)

// The managers report every expected business condition through one of these
// sentinels. Callers branch with errors.Is; the HTTP layer translates them to
// status codes with messages a user can act on ("this group is full" rather
// than a generic failure).
var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrConflict         = errors.New("conflict")
	ErrCapacityExceeded = errors.New("capacity exceeded")
)

// StorageError marks an infrastructure failure underneath a manager call. It is
// the only error class a caller may retry; the managers never retry internally
// so a true capacity race is not masked by silent re-reads.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsStorage reports whether err is (or wraps) a StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
