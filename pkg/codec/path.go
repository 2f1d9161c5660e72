package codec

import "strings"

// PathSeparator joins package names in an encoded dependency path.
const PathSeparator = ">"

// ModulePath is a chain of package names from the project root to a
// dependency, root first. It is encoded as one string, e.g. "app>lib-a>lib-b".
type ModulePath []string

func ParseModulePath(s string) ModulePath {
	return strings.Split(s, PathSeparator)
}

func (p ModulePath) String() string {
	return strings.Join(p, PathSeparator)
}

func (p ModulePath) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *ModulePath) UnmarshalText(b []byte) error {
	*p = ParseModulePath(string(b))
	return nil
}

func DecodeModulePath(n Node) (ModulePath, error) {
	s, err := n.Text()
	if err != nil {
		return nil, err
	}
	return ParseModulePath(s), nil
}

// DecodeModulePaths decodes a list of encoded paths, splitting each element
// independently.
func DecodeModulePaths(n Node) ([]ModulePath, error) {
	return Slice(n, DecodeModulePath)
}
