package auditv2

import (
	"github.com/npmparser/npmparser/pkg/codec"
	"github.com/npmparser/npmparser/pkg/types"
)

// Decode decodes a version 2 audit report rooted at n.
func Decode(n codec.Node) (*Report, error) {
	f := n.Fields()
	r := &Report{
		AuditReportVersion: f.OptionalUint32("auditReportVersion"),
		Vulnerabilities:    codec.Get(f, "vulnerabilities", codec.MapOf(decodeVulnerablePackage)),
		Metadata:           codec.Get(f, "metadata", decodeMetadata),
	}
	if err := f.Err(); err != nil {
		return nil, err
	}
	return r, nil
}

func decodeVulnerablePackage(n codec.Node) (VulnerablePackage, error) {
	f := n.Fields()
	p := VulnerablePackage{
		Name:         f.String("name"),
		Severity:     codec.Get(f, "severity", types.DecodeSeverity),
		IsDirect:     f.Bool("isDirect"),
		Via:          codec.Get(f, "via", codec.SliceOf(DecodeVulnerability)),
		Effects:      f.Strings("effects"),
		Range:        f.String("range"),
		Nodes:        f.Strings("nodes"),
		FixAvailable: codec.Get(f, "fixAvailable", DecodeFix),
	}
	return p, f.Err()
}

// DecodeVulnerability resolves a via entry by shape: a string is a NameOnly
// reference, anything else must be a complete FullVulnerability object.
func DecodeVulnerability(n codec.Node) (Vulnerability, error) {
	return codec.Untagged(n,
		codec.Variant[Vulnerability]{
			Name:   "package name",
			Match:  codec.IsString,
			Decode: decodeNameOnly,
		},
		codec.Variant[Vulnerability]{
			Name:   "vulnerability object",
			Match:  codec.IsObject,
			Decode: decodeFullVulnerability,
		},
	)
}

func decodeNameOnly(n codec.Node) (Vulnerability, error) {
	s, err := n.Text()
	if err != nil {
		return nil, err
	}
	return NameOnly(s), nil
}

func decodeFullVulnerability(n codec.Node) (Vulnerability, error) {
	f := n.Fields()
	v := FullVulnerability{
		Source:     f.Uint64("source"),
		Name:       f.String("name"),
		Dependency: f.String("dependency"),
		Title:      f.String("title"),
		URL:        f.String("url"),
		Severity:   codec.Get(f, "severity", types.DecodeSeverity),
		Range:      f.String("range"),
	}
	if err := f.Err(); err != nil {
		return nil, err
	}
	return v, nil
}

// DecodeFix resolves fixAvailable by shape: a boolean is FixAvailable,
// anything else must be a complete FixDetails object.
func DecodeFix(n codec.Node) (Fix, error) {
	return codec.Untagged(n,
		codec.Variant[Fix]{
			Name:   "boolean",
			Match:  codec.IsBool,
			Decode: decodeFixAvailable,
		},
		codec.Variant[Fix]{
			Name:   "fix object",
			Match:  codec.IsObject,
			Decode: decodeFixDetails,
		},
	)
}

func decodeFixAvailable(n codec.Node) (Fix, error) {
	b, err := n.Bool()
	if err != nil {
		return nil, err
	}
	return FixAvailable(b), nil
}

func decodeFixDetails(n codec.Node) (Fix, error) {
	f := n.Fields()
	d := FixDetails{
		Name:          f.String("name"),
		Version:       f.String("version"),
		IsSemVerMajor: f.Bool("isSemVerMajor"),
	}
	if err := f.Err(); err != nil {
		return nil, err
	}
	return d, nil
}

func decodeMetadata(n codec.Node) (Metadata, error) {
	f := n.Fields()
	m := Metadata{
		Vulnerabilities: codec.Get(f, "vulnerabilities", decodeVulnerabilityCounts),
		Dependencies:    codec.Get(f, "dependencies", decodeDependencyCounts),
	}
	return m, f.Err()
}

func decodeVulnerabilityCounts(n codec.Node) (VulnerabilityCounts, error) {
	f := n.Fields()
	c := VulnerabilityCounts{
		Info:     f.Uint32("info"),
		Low:      f.Uint32("low"),
		Moderate: f.Uint32("moderate"),
		High:     f.Uint32("high"),
		Critical: f.Uint32("critical"),
		Total:    f.Uint32("total"),
	}
	return c, f.Err()
}

func decodeDependencyCounts(n codec.Node) (DependencyCounts, error) {
	f := n.Fields()
	c := DependencyCounts{
		Prod:         f.Uint32("prod"),
		Dev:          f.Uint32("dev"),
		Optional:     f.Uint32("optional"),
		Peer:         f.Uint32("peer"),
		PeerOptional: f.Uint32("peerOptional"),
		Total:        f.Uint32("total"),
	}
	return c, f.Err()
}
