package assets

import "github.com/cockroachdb/errors"

var (
	// ErrNotObject indicates the table document root is not a key/URL object.
	ErrNotObject = errors.New("asset table is not an object")
	// ErrNonStringValue indicates a table value that is not a URL string.
	ErrNonStringValue = errors.New("asset table value is not a string")
	// ErrUnsupportedFormat indicates a table file extension we cannot read.
	ErrUnsupportedFormat = errors.New("unsupported asset table format")
)
