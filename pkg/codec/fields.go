package codec

import "time"

// Fields decodes the members of one JSON object and keeps the first failure.
// Once a failure is recorded every later accessor returns a zero value, so a
// struct can be filled field by field with a single check of Err at the end.
type Fields struct {
	obj Object
	err error
}

// Fields opens n for member-wise decoding. A node that is not an object
// records a type failure immediately.
func (n Node) Fields() *Fields {
	obj, err := n.Object()
	return &Fields{obj: obj, err: err}
}

func (f *Fields) Err() error { return f.err }

func (f *Fields) Object() Object { return f.obj }

func (f *Fields) fail(err error) {
	if f.err == nil {
		f.err = err
	}
}

// Get decodes the required member key with decode.
func Get[T any](f *Fields, key string, decode func(Node) (T, error)) T {
	var zero T
	if f.err != nil {
		return zero
	}
	n, err := f.obj.Required(key)
	if err != nil {
		f.fail(err)
		return zero
	}
	v, err := decode(n)
	if err != nil {
		f.fail(n.Fail(err))
		return zero
	}
	return v
}

// GetOptional decodes the member key with decode, or returns nil when the
// member is absent or null.
func GetOptional[T any](f *Fields, key string, decode func(Node) (T, error)) *T {
	if f.err != nil {
		return nil
	}
	n, ok := f.obj.Optional(key)
	if !ok {
		return nil
	}
	v, err := decode(n)
	if err != nil {
		f.fail(n.Fail(err))
		return nil
	}
	return &v
}

// GetOptionalSlice is GetOptional for list members. An absent or null list
// is nil; a present empty list is non-nil and empty.
func GetOptionalSlice[T any](f *Fields, key string, decode func(Node) (T, error)) []T {
	p := GetOptional(f, key, func(n Node) ([]T, error) { return Slice(n, decode) })
	if p == nil {
		return nil
	}
	return *p
}

func (f *Fields) String(key string) string { return Get(f, key, Node.Text) }

func (f *Fields) OptionalString(key string) *string { return GetOptional(f, key, Node.Text) }

func (f *Fields) Bool(key string) bool { return Get(f, key, Node.Bool) }

func (f *Fields) Uint64(key string) uint64 { return Get(f, key, Node.Uint64) }

func (f *Fields) Uint32(key string) uint32 { return Get(f, key, Node.Uint32) }

func (f *Fields) OptionalUint32(key string) *uint32 { return GetOptional(f, key, Node.Uint32) }

func (f *Fields) Strings(key string) []string { return Get(f, key, Node.Strings) }

func (f *Fields) OptionalStrings(key string) []string {
	return GetOptionalSlice(f, key, Node.Text)
}

func (f *Fields) Timestamp(key string) time.Time { return Get(f, key, Timestamp) }

// OptionalTimestamp decodes key, mapping an absent member or null to nil.
func (f *Fields) OptionalTimestamp(key string) *time.Time {
	return GetOptional(f, key, Timestamp)
}
