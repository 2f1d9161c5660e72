package report

import (
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/npmparser/npmparser/pkg/codec"
	"github.com/npmparser/npmparser/pkg/types"
	"github.com/npmparser/npmparser/pkg/types/auditv1"
	"github.com/npmparser/npmparser/pkg/types/auditv2"
	"github.com/npmparser/npmparser/pkg/types/outdated"
	"github.com/npmparser/npmparser/pkg/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFile(t *testing.T, file string) []byte {
	t.Helper()
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	return data
}

func requirePath(t *testing.T, err error, path string, cause error) {
	t.Helper()
	var pe *codec.Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, path, pe.Path)
	if cause != nil {
		assert.ErrorIs(t, err, cause)
	}
}

func TestDecodeAuditV1(t *testing.T) {
	r, err := DecodeAudit(version.SchemaV1, readFile(t, "testdata/audit_v1.json"))
	require.NoError(t, err)

	v1, ok := r.(*auditv1.Report)
	require.True(t, ok, "expected *auditv1.Report, got %T", r)
	assert.Equal(t, version.SchemaV1, r.Schema())

	require.NotNil(t, v1.RunID)
	assert.Equal(t, "a8f3c2e1-6b2d-4c9a-9f3e-2d1b0c7e5a44", *v1.RunID)
	require.Len(t, v1.Actions, 3)
	assert.IsType(t, auditv1.InstallAction{}, v1.Actions[0])
	assert.IsType(t, auditv1.UpdateAction{}, v1.Actions[1])
	assert.IsType(t, auditv1.ReviewAction{}, v1.Actions[2])
	assert.Equal(t, codec.ModulePath{"app", "lib-a", "lib-b", "lodash"}, v1.Actions[2].Base().Resolves[0].Path)
	assert.NotNil(t, v1.Muted)
	assert.Empty(t, v1.Muted)

	require.Len(t, v1.Advisories, 2)
	minimist := v1.Advisories["1179"]
	assert.Equal(t, types.SeverityLow, minimist.Severity)
	assert.Equal(t, []string{"CVE-2020-7598"}, minimist.CVEs)
	require.NotNil(t, minimist.CWE)
	assert.Equal(t, "CWE-471", *minimist.CWE)
	assert.Nil(t, minimist.ModuleName, "snake_case members are not part of the model")
	require.NotNil(t, minimist.Updated)
	assert.True(t, minimist.Updated.Equal(time.Date(2020, 3, 11, 22, 31, 47, 0, time.UTC)))
	assert.Nil(t, minimist.Deleted)

	lodash := v1.Advisories["1523"]
	assert.Equal(t, []codec.ModulePath{{"webpack", "lodash"}, {"app", "lib-a", "lib-b", "lodash"}}, lodash.Findings[0].Paths)
	require.NotNil(t, lodash.GithubAdvisoryID)
	assert.Equal(t, "GHSA-p6mc-m468-83gw", *lodash.GithubAdvisoryID)

	require.NotNil(t, v1.Metadata)
	assert.Equal(t, uint32(646), v1.Metadata.TotalDependencies)
	assert.NoError(t, v1.Validate())
}

func TestDecodeAuditV2(t *testing.T) {
	r, err := DecodeAudit(version.SchemaV2, readFile(t, "testdata/audit_v2.json"))
	require.NoError(t, err)

	v2, ok := r.(*auditv2.Report)
	require.True(t, ok, "expected *auditv2.Report, got %T", r)
	assert.Equal(t, version.SchemaV2, r.Schema())

	require.NotNil(t, v2.AuditReportVersion)
	assert.Equal(t, uint32(2), *v2.AuditReportVersion)
	require.Len(t, v2.Vulnerabilities, 3)

	assert.Equal(t, auditv2.FixAvailable(true), v2.Vulnerabilities["lodash"].FixAvailable)
	assert.Equal(t, auditv2.FixAvailable(false), v2.Vulnerabilities["minimist"].FixAvailable)
	assert.Equal(t, auditv2.FixDetails{Name: "lib-b", Version: "3.0.0", IsSemVerMajor: true}, v2.Vulnerabilities["lib-b"].FixAvailable)

	assert.Equal(t, []auditv2.Vulnerability{auditv2.NameOnly("lodash")}, v2.Vulnerabilities["lib-b"].Via)
	via := v2.Vulnerabilities["minimist"].Via
	require.Len(t, via, 2)
	assert.Equal(t, auditv2.FullVulnerability{
		Source:     1096475,
		Name:       "minimist",
		Dependency: "minimist",
		Title:      "Prototype Pollution in minimist",
		URL:        "https://github.com/advisories/GHSA-xvch-5gv4-984h",
		Severity:   types.SeverityCritical,
		Range:      "<0.2.4",
	}, via[0])
	assert.Equal(t, auditv2.NameOnly("mkdirp"), via[1])

	assert.Equal(t, auditv2.VulnerabilityCounts{High: 2, Critical: 1, Total: 3}, v2.Metadata.Vulnerabilities)
	assert.Equal(t, uint32(467), v2.Metadata.Dependencies.Total)
}

func TestDecodeAuditDoesNotFallBack(t *testing.T) {
	_, err := DecodeAudit(version.SchemaV1, readFile(t, "testdata/audit_v2.json"))
	requirePath(t, err, "actions", codec.ErrMissingField)

	_, err = DecodeAudit(version.SchemaV2, readFile(t, "testdata/audit_v1.json"))
	requirePath(t, err, "vulnerabilities", codec.ErrMissingField)
}

func TestDecodeAuditErrors(t *testing.T) {
	_, err := DecodeAudit(version.Schema(3), []byte(`{}`))
	assert.ErrorIs(t, err, types.ErrUnknownSchema)

	_, err = DecodeAudit(version.SchemaV2, []byte(`npm ERR! code ENOLOCK`))
	requirePath(t, err, "", nil)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestDecodeAuditMissingCreated(t *testing.T) {
	var doc map[string]any
	require.NoError(t, json.Unmarshal(readFile(t, "testdata/audit_v1.json"), &doc))
	delete(doc["advisories"].(map[string]any)["1179"].(map[string]any), "created")
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	_, err = DecodeAudit(version.SchemaV1, data)
	requirePath(t, err, "advisories.1179.created", codec.ErrMissingField)
	assert.Contains(t, err.Error(), "advisories.1179.created: missing field")
}

func TestDecodeAuditAuto(t *testing.T) {
	testCases := []struct {
		file   string
		schema version.Schema
	}{
		{file: "testdata/audit_v1.json", schema: version.SchemaV1},
		{file: "testdata/audit_v2.json", schema: version.SchemaV2},
	}

	for _, tc := range testCases {
		t.Run(tc.file, func(t *testing.T) {
			auto, err := DecodeAuditAuto(readFile(t, tc.file))
			require.NoError(t, err)
			assert.Equal(t, tc.schema, auto.Schema())

			explicit, err := DecodeAudit(tc.schema, readFile(t, tc.file))
			require.NoError(t, err)
			assert.Equal(t, explicit, auto)
		})
	}
}

func TestDecodeAuditAutoUnsupported(t *testing.T) {
	_, err := DecodeAuditAuto(readFile(t, "testdata/invalid.json"))
	var errUnsupported *ErrorUnsupported
	require.ErrorAs(t, err, &errUnsupported)
	assert.ErrorIs(t, err, codec.ErrNoVariant)
	assert.Contains(t, err.Error(), "expected audit report v1 or audit report v2")
}

func TestDecodeAuditAutoFallsThrough(t *testing.T) {
	// Matches the v1 shape but does not decode as v1, then decodes as v2.
	data := []byte(`{
		"actions": "none",
		"advisories": {},
		"vulnerabilities": {},
		"metadata": {
			"vulnerabilities": {"info": 0, "low": 0, "moderate": 0, "high": 0, "critical": 0, "total": 0},
			"dependencies": {"prod": 1, "dev": 0, "optional": 0, "peer": 0, "peerOptional": 0, "total": 1}
		}
	}`)
	r, err := DecodeAuditAuto(data)
	require.NoError(t, err)
	assert.IsType(t, &auditv2.Report{}, r)
}

func TestDecodeAuditAutoReportsFirstShapeFailure(t *testing.T) {
	_, err := DecodeAuditAuto([]byte(`{"actions": [], "advisories": {"1": {"id": "one"}}}`))
	requirePath(t, err, "advisories.1.id", codec.ErrInvalidType)

	var errUnsupported *ErrorUnsupported
	assert.False(t, errors.As(err, &errUnsupported))
}

func TestRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		file   string
		schema version.Schema
	}{
		{file: "testdata/audit_v1.json", schema: version.SchemaV1},
		{file: "testdata/audit_v2.json", schema: version.SchemaV2},
	} {
		t.Run(tc.file, func(t *testing.T) {
			first, err := DecodeAudit(tc.schema, readFile(t, tc.file))
			require.NoError(t, err)

			encoded, err := EncodeAudit(first)
			require.NoError(t, err)

			second, err := DecodeAudit(tc.schema, encoded)
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}
}

func TestEncodeAuditV1Leaves(t *testing.T) {
	r, err := DecodeAudit(version.SchemaV1, readFile(t, "testdata/audit_v1.json"))
	require.NoError(t, err)

	encoded, err := EncodeAudit(r)
	require.NoError(t, err)

	var doc struct {
		Actions []struct {
			Action   string `json:"action"`
			Resolves []struct {
				Path string `json:"path"`
			} `json:"resolves"`
		} `json:"actions"`
		Advisories map[string]struct {
			Created  string  `json:"created"`
			Updated  *string `json:"updated"`
			Deleted  *string `json:"deleted"`
			Findings []struct {
				Paths []string `json:"paths"`
			} `json:"findings"`
		} `json:"advisories"`
	}
	require.NoError(t, json.Unmarshal(encoded, &doc))

	assert.Equal(t, "install", doc.Actions[0].Action)
	assert.Equal(t, "mkdirp>minimist", doc.Actions[0].Resolves[0].Path)
	assert.Equal(t, "review", doc.Actions[2].Action)
	assert.Equal(t, "app>lib-a>lib-b>lodash", doc.Actions[2].Resolves[0].Path)

	adv := doc.Advisories["1179"]
	assert.Equal(t, "2020-03-11T22:25:26Z", adv.Created)
	require.NotNil(t, adv.Updated)
	assert.Equal(t, "2020-03-11T22:31:47Z", *adv.Updated)
	assert.Nil(t, adv.Deleted)
	assert.Equal(t, []string{"webpack>lodash", "app>lib-a>lib-b>lodash"}, doc.Advisories["1523"].Findings[0].Paths)
}

func TestEncodeAuditNil(t *testing.T) {
	_, err := EncodeAudit(nil)
	assert.Error(t, err)
}

func TestDecodeOutdated(t *testing.T) {
	r, err := DecodeOutdated(readFile(t, "testdata/outdated.json"))
	require.NoError(t, err)
	require.Len(t, r, 2)

	glob := r["glob"]
	require.NotNil(t, glob.Current)
	assert.Equal(t, "7.2.3", *glob.Current)
	assert.Equal(t, "10.3.10", glob.Latest)
	assert.Equal(t, "dependencies", glob.PackageType)
	require.NotNil(t, glob.Homepage)

	ts := r["typescript"]
	assert.Nil(t, ts.Current)
	assert.Equal(t, "devDependencies", ts.PackageType)

	old, err := DecodeOutdated(readFile(t, "testdata/outdated_npm6.json"))
	require.NoError(t, err)
	assert.Nil(t, old["glob"].Dependent)
	assert.Nil(t, old["glob"].Homepage)
	assert.Equal(t, "7.2.3", old["glob"].Wanted)

	encoded, err := EncodeOutdated(r)
	require.NoError(t, err)
	again, err := DecodeOutdated(encoded)
	require.NoError(t, err)
	assert.Equal(t, r, again)
}

func TestDecodeOutdatedBlank(t *testing.T) {
	for _, input := range []string{"", "\n", "  \r\n"} {
		r, err := DecodeOutdated([]byte(input))
		require.NoError(t, err)
		assert.Equal(t, outdated.Report{}, r)
	}
}

func TestDecodeOutdatedErrors(t *testing.T) {
	_, err := DecodeOutdated([]byte(`{"glob": {"wanted": 7, "latest": "10.3.10", "type": "dependencies"}}`))
	requirePath(t, err, "glob.wanted", codec.ErrInvalidType)
	assert.Contains(t, err.Error(), "failed to decode outdated report")
}

func TestErrorUnsupported(t *testing.T) {
	originalErr := &codec.Error{Err: codec.ErrNoVariant}
	errUnsupported := &ErrorUnsupported{err: originalErr}

	assert.Equal(t, ".: data did not match any variant", errUnsupported.Error())
	assert.ErrorIs(t, errUnsupported, codec.ErrNoVariant)
}
