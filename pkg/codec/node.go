package codec

import (
	"bytes"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/pkg/errors"
	"github.com/valyala/fastjson"
)

// Node is a parsed JSON value together with its location in the document.
type Node struct {
	v    *fastjson.Value
	path string
}

// Parse parses data into a tree of nodes rooted at the document root.
//
// Every call uses its own parser so concurrent callers share nothing.
// Escaped UTF-16 surrogates without a partner decode to U+FFFD.
func Parse(data []byte) (Node, error) {
	var p fastjson.Parser
	v, err := p.ParseBytes(replaceLoneSurrogates(data))
	if err != nil {
		return Node{}, &Error{Err: errors.Wrap(err, "invalid JSON")}
	}
	return Node{v: v}, nil
}

func (n Node) Path() string { return n.path }

func (n Node) Kind() fastjson.Type { return n.v.Type() }

func (n Node) IsNull() bool { return n.v.Type() == fastjson.TypeNull }

// Fail attaches the node's path to err. Errors that already carry a path are
// returned unchanged.
func (n Node) Fail(err error) error {
	var pe *Error
	if errors.As(err, &pe) {
		return err
	}
	return &Error{Path: n.path, Err: err}
}

func (n Node) key(k string) Node {
	return Node{path: joinKey(n.path, k)}
}

func (n Node) index(i int) string {
	return n.path + "[" + strconv.Itoa(i) + "]"
}

// joinKey appends an object key to a path. Keys that are empty or contain
// path syntax are quoted: vulnerabilities["lodash.merge"].
func joinKey(parent, key string) string {
	if key == "" || strings.ContainsAny(key, ".[]") {
		return parent + "[" + strconv.Quote(key) + "]"
	}
	if parent == "" {
		return key
	}
	return parent + "." + key
}

// replaceLoneSurrogates rewrites every \u escape of an unpaired surrogate
// inside a JSON string to \ufffd. fastjson would otherwise keep such an
// escape as literal text. The rewrite keeps the length of data, and data is
// copied only when something changes.
func replaceLoneSurrogates(data []byte) []byte {
	out := data
	copied := false
	inString := false
	for i := 0; i < len(data); i++ {
		c := data[i]
		switch {
		case !inString:
			inString = c == '"'
		case c == '"':
			inString = false
		case c == '\\':
			r, ok := escapedRune(data, i)
			if !ok {
				// Skip the escaped byte so \" and \\ are not misread.
				i++
				continue
			}
			if r >= 0xd800 && r < 0xdc00 {
				if lo, ok := escapedRune(data, i+6); ok && lo >= 0xdc00 && lo < 0xe000 {
					i += 11
					continue
				}
			}
			if utf16.IsSurrogate(r) {
				if !copied {
					out = bytes.Clone(data)
					copied = true
				}
				copy(out[i+2:i+6], "fffd")
			}
			i += 5
		}
	}
	return out
}

// escapedRune decodes the \uXXXX escape starting at data[i].
func escapedRune(data []byte, i int) (rune, bool) {
	if i+6 > len(data) || data[i] != '\\' || data[i+1] != 'u' {
		return 0, false
	}
	r, err := strconv.ParseUint(string(data[i+2:i+6]), 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(r), true
}

func (n Node) typeError(want string) error {
	return n.Fail(errors.Wrapf(ErrInvalidType, "expected %s, found %s", want, n.Kind()))
}

func (n Node) Text() (string, error) {
	if n.Kind() != fastjson.TypeString {
		return "", n.typeError("string")
	}
	b, err := n.v.StringBytes()
	if err != nil {
		return "", n.Fail(err)
	}
	return string(b), nil
}

func (n Node) Bool() (bool, error) {
	switch n.Kind() {
	case fastjson.TypeTrue:
		return true, nil
	case fastjson.TypeFalse:
		return false, nil
	default:
		return false, n.typeError("boolean")
	}
}

func (n Node) Uint64() (uint64, error) {
	if n.Kind() != fastjson.TypeNumber {
		return 0, n.typeError("unsigned integer")
	}
	u, err := n.v.Uint64()
	if err != nil {
		return 0, n.Fail(errors.Wrapf(ErrInvalidValue, "%s is not an unsigned integer", n.v))
	}
	return u, nil
}

func (n Node) Uint32() (uint32, error) {
	u, err := n.Uint64()
	if err != nil {
		return 0, err
	}
	if u > math.MaxUint32 {
		return 0, n.Fail(errors.Wrapf(ErrInvalidValue, "%d overflows uint32", u))
	}
	return uint32(u), nil
}

// Array returns the elements of a JSON array, each positioned at its index.
func (n Node) Array() ([]Node, error) {
	if n.Kind() != fastjson.TypeArray {
		return nil, n.typeError("array")
	}
	vs, err := n.v.Array()
	if err != nil {
		return nil, n.Fail(err)
	}
	nodes := make([]Node, len(vs))
	for i, v := range vs {
		nodes[i] = Node{v: v, path: n.index(i)}
	}
	return nodes, nil
}

// Object returns the members of a JSON object. When a key repeats, the last
// occurrence wins.
func (n Node) Object() (Object, error) {
	if n.Kind() != fastjson.TypeObject {
		return Object{}, n.typeError("object")
	}
	o, err := n.v.Object()
	if err != nil {
		return Object{}, n.Fail(err)
	}
	obj := Object{node: n, fields: make(map[string]*fastjson.Value, o.Len())}
	o.Visit(func(k []byte, v *fastjson.Value) {
		key := string(k)
		if _, seen := obj.fields[key]; !seen {
			obj.keys = append(obj.keys, key)
		}
		obj.fields[key] = v
	})
	return obj, nil
}

func (n Node) Strings() ([]string, error) {
	return Slice(n, Node.Text)
}

// Object is a decoded JSON object with unique keys.
type Object struct {
	node   Node
	fields map[string]*fastjson.Value
	keys   []string
}

func (o Object) Node() Node { return o.node }

// Keys returns the member names in order of first appearance.
func (o Object) Keys() []string { return o.keys }

func (o Object) Has(key string) bool {
	_, ok := o.fields[key]
	return ok
}

func (o Object) Len() int { return len(o.keys) }

func (o Object) Required(key string) (Node, error) {
	v, ok := o.fields[key]
	if !ok {
		return Node{}, &Error{Path: joinKey(o.node.path, key), Err: ErrMissingField}
	}
	child := o.node.key(key)
	child.v = v
	return child, nil
}

// Optional returns the member named key. Absent members and members holding
// null both report false.
func (o Object) Optional(key string) (Node, bool) {
	v, ok := o.fields[key]
	if !ok || v.Type() == fastjson.TypeNull {
		return Node{}, false
	}
	child := o.node.key(key)
	child.v = v
	return child, true
}

// Slice decodes every element of an array node with decode.
func Slice[T any](n Node, decode func(Node) (T, error)) ([]T, error) {
	nodes, err := n.Array()
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(nodes))
	for _, elem := range nodes {
		v, err := decode(elem)
		if err != nil {
			return nil, elem.Fail(err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Map decodes every member of an object node with decode.
func Map[T any](n Node, decode func(Node) (T, error)) (map[string]T, error) {
	obj, err := n.Object()
	if err != nil {
		return nil, err
	}
	out := make(map[string]T, obj.Len())
	for _, k := range obj.keys {
		child, _ := obj.Required(k)
		v, err := decode(child)
		if err != nil {
			return nil, child.Fail(err)
		}
		out[k] = v
	}
	return out, nil
}

// SliceOf lifts an element decoder to a list decoder.
func SliceOf[T any](decode func(Node) (T, error)) func(Node) ([]T, error) {
	return func(n Node) ([]T, error) { return Slice(n, decode) }
}

// MapOf lifts a member decoder to an object decoder.
func MapOf[T any](decode func(Node) (T, error)) func(Node) (map[string]T, error) {
	return func(n Node) (map[string]T, error) { return Map(n, decode) }
}
