// Package auditv2 models the audit report printed by npm 7 and later.
package auditv2

import (
	"github.com/npmparser/npmparser/pkg/types"
	"github.com/npmparser/npmparser/pkg/version"
)

type Report struct {
	// AuditReportVersion is not printed by every npm release.
	AuditReportVersion *uint32                      `json:"auditReportVersion"`
	Vulnerabilities    map[string]VulnerablePackage `json:"vulnerabilities"`
	Metadata           Metadata                     `json:"metadata"`
}

func (*Report) Schema() version.Schema { return version.SchemaV2 }

type VulnerablePackage struct {
	Name     string         `json:"name"`
	Severity types.Severity `json:"severity"`
	IsDirect bool           `json:"isDirect"`
	// Via lists what makes the package vulnerable: advisories against the
	// package itself, or names of vulnerable packages it depends on.
	Via []Vulnerability `json:"via"`
	// Effects lists the packages that are vulnerable because they depend on
	// this one.
	Effects      []string `json:"effects"`
	Range        string   `json:"range"`
	Nodes        []string `json:"nodes"`
	FixAvailable Fix      `json:"fixAvailable"`
}

// Vulnerability is either a NameOnly reference to another vulnerable package
// or a FullVulnerability advisory.
type Vulnerability interface {
	isVulnerability()
}

type NameOnly string

func (NameOnly) isVulnerability() {}

type FullVulnerability struct {
	Source     uint64         `json:"source"`
	Name       string         `json:"name"`
	Dependency string         `json:"dependency"`
	Title      string         `json:"title"`
	URL        string         `json:"url"`
	Severity   types.Severity `json:"severity"`
	Range      string         `json:"range"`
}

func (FullVulnerability) isVulnerability() {}

// Fix is either FixAvailable, saying only whether a fix exists, or
// FixDetails naming the fix.
type Fix interface {
	isFix()
}

type FixAvailable bool

func (FixAvailable) isFix() {}

type FixDetails struct {
	Name          string `json:"name"`
	Version       string `json:"version"`
	IsSemVerMajor bool   `json:"isSemVerMajor"`
}

func (FixDetails) isFix() {}

type Metadata struct {
	Vulnerabilities VulnerabilityCounts `json:"vulnerabilities"`
	Dependencies    DependencyCounts    `json:"dependencies"`
}

type VulnerabilityCounts struct {
	Info     uint32 `json:"info"`
	Low      uint32 `json:"low"`
	Moderate uint32 `json:"moderate"`
	High     uint32 `json:"high"`
	Critical uint32 `json:"critical"`
	Total    uint32 `json:"total"`
}

type DependencyCounts struct {
	Prod         uint32 `json:"prod"`
	Dev          uint32 `json:"dev"`
	Optional     uint32 `json:"optional"`
	Peer         uint32 `json:"peer"`
	PeerOptional uint32 `json:"peerOptional"`
	Total        uint32 `json:"total"`
}
