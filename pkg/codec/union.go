package codec

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/valyala/fastjson"
	"golang.org/x/exp/slices"
)

// Variant is one candidate shape of an untagged union.
//
// Match inspects only the shape of the value. Decode runs when Match accepts
// the value and must build its result from scratch.
type Variant[T any] struct {
	Name   string
	Match  func(Node) bool
	Decode func(Node) (T, error)
}

// Untagged resolves n against variants in order. The first variant whose
// Match accepts n and whose Decode succeeds wins. When every accepting
// variant fails to decode, the failure of the first one is returned; when no
// variant accepts n at all, the result is an ErrNoVariant failure at n.
func Untagged[T any](n Node, variants ...Variant[T]) (T, error) {
	var (
		zero     T
		firstErr error
	)
	for _, variant := range variants {
		if !variant.Match(n) {
			continue
		}
		v, err := variant.Decode(n)
		if err == nil {
			return v, nil
		}
		if firstErr == nil {
			firstErr = n.Fail(err)
		}
	}
	if firstErr != nil {
		return zero, firstErr
	}
	names := make([]string, len(variants))
	for i, variant := range variants {
		names[i] = variant.Name
	}
	return zero, n.Fail(errors.Wrapf(ErrNoVariant, "found %s, expected %s", n.Kind(), strings.Join(names, " or ")))
}

// Tagged decodes an object whose member tag names its variant.
func Tagged[T any](n Node, tag string, variants map[string]func(Node) (T, error)) (T, error) {
	var zero T
	obj, err := n.Object()
	if err != nil {
		return zero, err
	}
	tn, err := obj.Required(tag)
	if err != nil {
		return zero, err
	}
	name, err := tn.Text()
	if err != nil {
		return zero, err
	}
	decode, ok := variants[name]
	if !ok {
		known := make([]string, 0, len(variants))
		for k := range variants {
			known = append(known, k)
		}
		slices.Sort(known)
		return zero, tn.Fail(errors.Wrapf(ErrInvalidValue, "unknown variant %q, expected one of %s", name, strings.Join(known, ", ")))
	}
	return decode(n)
}

// IsKind matches values of any of the given JSON types.
func IsKind(kinds ...fastjson.Type) func(Node) bool {
	return func(n Node) bool {
		for _, k := range kinds {
			if n.Kind() == k {
				return true
			}
		}
		return false
	}
}

func IsString(n Node) bool { return n.Kind() == fastjson.TypeString }

func IsObject(n Node) bool { return n.Kind() == fastjson.TypeObject }

// IsBool matches true and false.
func IsBool(n Node) bool {
	return IsKind(fastjson.TypeTrue, fastjson.TypeFalse)(n)
}

// HasFields matches objects that contain every named member.
func HasFields(keys ...string) func(Node) bool {
	return func(n Node) bool {
		obj, err := n.Object()
		if err != nil {
			return false
		}
		for _, k := range keys {
			if !obj.Has(k) {
				return false
			}
		}
		return true
	}
}
