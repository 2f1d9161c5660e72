package codec

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrMissingField = errors.New("missing field")
	ErrInvalidType  = errors.New("invalid type")
	ErrInvalidValue = errors.New("invalid value")
	ErrNoVariant    = errors.New("data did not match any variant")
)

// Error is a decode failure at a location in a JSON document.
//
// Path is a chain of object keys and array indexes from the document root,
// for example "vulnerabilities.lodash.via[0].source". Keys that are empty or
// contain '.', '[' or ']' are quoted, as in `vulnerabilities["lodash.merge"]`.
// The root itself is "".
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	path := e.Path
	if path == "" {
		path = "."
	}
	return fmt.Sprintf("%s: %v", path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
