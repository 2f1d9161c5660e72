package types

import "github.com/pkg/errors"

// ErrInvalidUTF8 indicates that captured program output is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("program output is not valid UTF-8")

// ErrUnknownSchema indicates a report schema outside the known versions.
var ErrUnknownSchema = errors.New("unknown report schema")
