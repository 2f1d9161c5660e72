// Package outdated models the report printed by `npm outdated --json --long`.
package outdated

import "github.com/npmparser/npmparser/pkg/codec"

// Report maps package names to their status.
type Report map[string]PackageStatus

// PackageStatus describes how current one dependency is. Fields that come
// and go between npm releases are pointers.
type PackageStatus struct {
	// Current is the installed version; absent when the package is missing
	// from node_modules.
	Current *string `json:"current,omitempty"`
	// Wanted is the highest version satisfying the range in package.json, or
	// the installed version when there is no such range.
	Wanted string `json:"wanted"`
	// Latest is the version tagged latest in the registry.
	Latest   string  `json:"latest"`
	Location *string `json:"location"`
	// Dependent is the package that depends on this one.
	Dependent   *string `json:"dependent"`
	PackageType string  `json:"type"`
	Homepage    *string `json:"homepage"`
}

// Decode decodes an outdated report rooted at n.
func Decode(n codec.Node) (Report, error) {
	return codec.Map(n, decodePackageStatus)
}

func decodePackageStatus(n codec.Node) (PackageStatus, error) {
	f := n.Fields()
	s := PackageStatus{
		Current:     f.OptionalString("current"),
		Wanted:      f.String("wanted"),
		Latest:      f.String("latest"),
		Location:    f.OptionalString("location"),
		Dependent:   f.OptionalString("dependent"),
		PackageType: f.String("type"),
		Homepage:    f.OptionalString("homepage"),
	}
	return s, f.Err()
}
