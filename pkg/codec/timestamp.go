package codec

import (
	"time"

	"github.com/pkg/errors"
)

// Timestamp decodes an RFC 3339 date-time string.
func Timestamp(n Node) (time.Time, error) {
	s, err := n.Text()
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, n.Fail(errors.Wrapf(ErrInvalidValue, "%q is not an RFC 3339 timestamp", s))
	}
	return t, nil
}

// OptionalTimestamp decodes an RFC 3339 date-time string or null.
func OptionalTimestamp(n Node) (*time.Time, error) {
	if n.IsNull() {
		return nil, nil
	}
	t, err := Timestamp(n)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
