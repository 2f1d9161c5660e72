// Package auditv1 models the audit report printed by npm 6 and earlier.
package auditv1

import (
	"encoding/json"
	"time"

	"github.com/npmparser/npmparser/pkg/codec"
	"github.com/npmparser/npmparser/pkg/types"
	"github.com/npmparser/npmparser/pkg/version"
)

type Report struct {
	// RunID identifies the audit run. Only some npm releases print it.
	RunID      *string             `json:"runId"`
	Actions    []Action            `json:"actions"`
	Advisories map[string]Advisory `json:"advisories"`
	// Muted lists muted packages. Only some npm releases print it.
	Muted    []string  `json:"muted"`
	Metadata *Metadata `json:"metadata,omitempty"`
}

func (*Report) Schema() version.Schema { return version.SchemaV1 }

type ActionKind string

const (
	ActionInstall ActionKind = "install"
	ActionUpdate  ActionKind = "update"
	ActionReview  ActionKind = "review"
)

// Action is a remediation npm suggests: an InstallAction, UpdateAction or
// ReviewAction.
type Action interface {
	Kind() ActionKind
	Base() ActionBase
}

// ActionBase holds the members every action kind carries.
type ActionBase struct {
	Resolves []Resolves `json:"resolves"`
	Module   string     `json:"module"`
	Depth    *uint32    `json:"depth"`
}

func (b ActionBase) Base() ActionBase { return b }

type InstallAction struct {
	ActionBase
	Target  string `json:"target"`
	IsMajor bool   `json:"isMajor"`
}

func (InstallAction) Kind() ActionKind { return ActionInstall }

func (a InstallAction) MarshalJSON() ([]byte, error) {
	type plain InstallAction
	return json.Marshal(struct {
		Action ActionKind `json:"action"`
		plain
	}{ActionInstall, plain(a)})
}

type UpdateAction struct {
	ActionBase
	Target string `json:"target"`
}

func (UpdateAction) Kind() ActionKind { return ActionUpdate }

func (a UpdateAction) MarshalJSON() ([]byte, error) {
	type plain UpdateAction
	return json.Marshal(struct {
		Action ActionKind `json:"action"`
		plain
	}{ActionUpdate, plain(a)})
}

type ReviewAction struct {
	ActionBase
}

func (ReviewAction) Kind() ActionKind { return ActionReview }

func (a ReviewAction) MarshalJSON() ([]byte, error) {
	type plain ReviewAction
	return json.Marshal(struct {
		Action ActionKind `json:"action"`
		plain
	}{ActionReview, plain(a)})
}

// Resolves names one advisory an action fixes and where it was found.
type Resolves struct {
	ID       uint64           `json:"id"`
	Path     codec.ModulePath `json:"path"`
	Dev      bool             `json:"dev"`
	Optional bool             `json:"optional"`
	Bundled  bool             `json:"bundled"`
}

type Advisory struct {
	ID                 uint64         `json:"id"`
	Title              string         `json:"title"`
	Findings           []Finding      `json:"findings"`
	VulnerableVersions *string        `json:"vulnerableVersions"`
	ModuleName         *string        `json:"moduleName"`
	Severity           types.Severity `json:"severity"`
	GithubAdvisoryID   *string        `json:"githubAdvisoryId"`
	CVEs               []string       `json:"cves"`
	Access             string         `json:"access"`
	PatchedVersions    *string        `json:"patchedVersions"`
	Recommendation     string         `json:"recommendation"`
	CWE                *string        `json:"cwe"`
	FoundBy            *string        `json:"foundBy"`
	ReportedBy         *string        `json:"reportedBy"`
	Created            time.Time      `json:"created"`
	Updated            *time.Time     `json:"updated"`
	Deleted            *time.Time     `json:"deleted"`
	// References holds all external references in one newline separated string.
	References    *string `json:"references"`
	NpmAdvisoryID *string `json:"npmAdvisoryId"`
	Overview      string  `json:"overview"`
	URL           string  `json:"url"`
}

// Finding is one installed version of the affected module and the paths
// through which the project depends on it.
type Finding struct {
	Version string             `json:"version"`
	Paths   []codec.ModulePath `json:"paths"`
}

type Metadata struct {
	Vulnerabilities      VulnerabilityCounts `json:"vulnerabilities"`
	Dependencies         uint32              `json:"dependencies"`
	DevDependencies      uint32              `json:"devDependencies"`
	OptionalDependencies uint32              `json:"optionalDependencies"`
	TotalDependencies    uint32              `json:"totalDependencies"`
}

// VulnerabilityCounts counts advisories per severity. Version 1 reports
// carry no total.
type VulnerabilityCounts struct {
	Info     uint32 `json:"info"`
	Low      uint32 `json:"low"`
	Moderate uint32 `json:"moderate"`
	High     uint32 `json:"high"`
	Critical uint32 `json:"critical"`
}
