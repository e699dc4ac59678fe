package categorize

import "github.com/cockroachdb/errors"

var (
	// ErrBadShape indicates a name-set document whose root has the wrong type.
	ErrBadShape = errors.New("unexpected name-set document shape")
	// ErrLocked indicates another run holds the output lock.
	ErrLocked = errors.New("output is locked by another run")
	// ErrUnknownFormat indicates an output format other than json or yaml.
	ErrUnknownFormat = errors.New("unknown output format")
	// ErrBadDocument is returned when a categorized document cannot be read back.
	ErrBadDocument = errors.New("malformed categorized document")
)
