package ownedbuf

import "errors"

// Contention errors. Expected under concurrent use; the caller decides
// whether to retry (see pkg/retry).
var (
	// ErrAlreadyExclusivelyExported rejects any export while the
	// exclusive view is outstanding.
	ErrAlreadyExclusivelyExported = errors.New("ownedbuf: buffer is already exclusively exported")

	// ErrIncompatibleWithSharedExports rejects an exclusive export while
	// shared views are outstanding.
	ErrIncompatibleWithSharedExports = errors.New("ownedbuf: buffer has shared exports and cannot be exclusively exported")
)

// Usage errors. Caller-input problems, never retried.
var (
	// ErrInvalidExportMode rejects a request that does not name exactly
	// one of ModeShared or ModeExclusive.
	ErrInvalidExportMode = errors.New("ownedbuf: exactly one of ModeShared or ModeExclusive must be requested")

	// ErrUnsupportedLayout rejects a view that is not one flat run of
	// bytes.
	ErrUnsupportedLayout = errors.New("ownedbuf: view layout is not contiguous")

	// ErrIndexOutOfRange rejects a write outside the viewed region.
	ErrIndexOutOfRange = errors.New("ownedbuf: index out of range")

	// ErrOwnerClosed rejects an export from a closed owner.
	ErrOwnerClosed = errors.New("ownedbuf: owner is closed")
)

// IsContention reports whether err is one of the contention errors, i.e.
// the request failed only because a conflicting export was outstanding at
// the time and may succeed later.
func IsContention(err error) bool {
	return errors.Is(err, ErrAlreadyExclusivelyExported) ||
		errors.Is(err, ErrIncompatibleWithSharedExports)
}
