package auditv1

import (
	"github.com/npmparser/npmparser/pkg/codec"
	"github.com/npmparser/npmparser/pkg/types"
)

// Decode decodes a version 1 audit report rooted at n.
func Decode(n codec.Node) (*Report, error) {
	f := n.Fields()
	r := &Report{
		RunID:      f.OptionalString("runId"),
		Actions:    codec.Get(f, "actions", codec.SliceOf(decodeAction)),
		Advisories: codec.Get(f, "advisories", codec.MapOf(decodeAdvisory)),
		Muted:      f.OptionalStrings("muted"),
		Metadata:   codec.GetOptional(f, "metadata", decodeMetadata),
	}
	if err := f.Err(); err != nil {
		return nil, err
	}
	return r, nil
}

var actionDecoders = map[string]func(codec.Node) (Action, error){
	string(ActionInstall): decodeInstall,
	string(ActionUpdate):  decodeUpdate,
	string(ActionReview):  decodeReview,
}

func decodeAction(n codec.Node) (Action, error) {
	return codec.Tagged(n, "action", actionDecoders)
}

func decodeBase(f *codec.Fields) ActionBase {
	return ActionBase{
		Resolves: codec.Get(f, "resolves", codec.SliceOf(decodeResolves)),
		Module:   f.String("module"),
		Depth:    f.OptionalUint32("depth"),
	}
}

func decodeInstall(n codec.Node) (Action, error) {
	f := n.Fields()
	a := InstallAction{
		ActionBase: decodeBase(f),
		Target:     f.String("target"),
		IsMajor:    f.Bool("isMajor"),
	}
	if err := f.Err(); err != nil {
		return nil, err
	}
	return a, nil
}

func decodeUpdate(n codec.Node) (Action, error) {
	f := n.Fields()
	a := UpdateAction{
		ActionBase: decodeBase(f),
		Target:     f.String("target"),
	}
	if err := f.Err(); err != nil {
		return nil, err
	}
	return a, nil
}

func decodeReview(n codec.Node) (Action, error) {
	f := n.Fields()
	a := ReviewAction{ActionBase: decodeBase(f)}
	if err := f.Err(); err != nil {
		return nil, err
	}
	return a, nil
}

func decodeResolves(n codec.Node) (Resolves, error) {
	f := n.Fields()
	r := Resolves{
		ID:       f.Uint64("id"),
		Path:     codec.Get(f, "path", codec.DecodeModulePath),
		Dev:      f.Bool("dev"),
		Optional: f.Bool("optional"),
		Bundled:  f.Bool("bundled"),
	}
	return r, f.Err()
}

func decodeAdvisory(n codec.Node) (Advisory, error) {
	f := n.Fields()
	a := Advisory{
		ID:                 f.Uint64("id"),
		Title:              f.String("title"),
		Findings:           codec.Get(f, "findings", codec.SliceOf(decodeFinding)),
		VulnerableVersions: f.OptionalString("vulnerableVersions"),
		ModuleName:         f.OptionalString("moduleName"),
		Severity:           codec.Get(f, "severity", types.DecodeSeverity),
		GithubAdvisoryID:   f.OptionalString("githubAdvisoryId"),
		CVEs:               f.OptionalStrings("cves"),
		Access:             f.String("access"),
		PatchedVersions:    f.OptionalString("patchedVersions"),
		Recommendation:     f.String("recommendation"),
		CWE:                f.OptionalString("cwe"),
		FoundBy:            f.OptionalString("foundBy"),
		ReportedBy:         f.OptionalString("reportedBy"),
		Created:            f.Timestamp("created"),
		Updated:            f.OptionalTimestamp("updated"),
		Deleted:            f.OptionalTimestamp("deleted"),
		References:         f.OptionalString("references"),
		NpmAdvisoryID:      f.OptionalString("npmAdvisoryId"),
		Overview:           f.String("overview"),
		URL:                f.String("url"),
	}
	return a, f.Err()
}

func decodeFinding(n codec.Node) (Finding, error) {
	f := n.Fields()
	fd := Finding{
		Version: f.String("version"),
		Paths:   codec.Get(f, "paths", codec.DecodeModulePaths),
	}
	return fd, f.Err()
}

func decodeMetadata(n codec.Node) (Metadata, error) {
	f := n.Fields()
	m := Metadata{
		Vulnerabilities:      codec.Get(f, "vulnerabilities", decodeVulnerabilityCounts),
		Dependencies:         f.Uint32("dependencies"),
		DevDependencies:      f.Uint32("devDependencies"),
		OptionalDependencies: f.Uint32("optionalDependencies"),
		TotalDependencies:    f.Uint32("totalDependencies"),
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
	}
	return c, f.Err()
}
