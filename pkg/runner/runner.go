// Package runner invokes npm and hands its output to the report decoders.
package runner

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/npmparser/npmparser/pkg/report"
	"github.com/npmparser/npmparser/pkg/types"
	"github.com/npmparser/npmparser/pkg/types/outdated"
	"github.com/npmparser/npmparser/pkg/utils"
	"github.com/npmparser/npmparser/pkg/version"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Output is what one npm invocation printed and how it exited.
type Output struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

func (o Output) Success() bool { return o.ExitCode == 0 }

// Invoker runs npm with args. A non-zero exit is reported through
// Output.ExitCode; the error is reserved for failing to run npm at all.
type Invoker interface {
	Invoke(ctx context.Context, args ...string) (Output, error)
}

// DetectSchema asks npm for its version and picks the audit report schema it
// prints.
func DetectSchema(ctx context.Context, inv Invoker) (version.Schema, error) {
	out, err := inv.Invoke(ctx, "--version")
	if err != nil {
		return 0, err
	}
	if !out.Success() {
		log.Warnf("npm --version did not return with a successful exit code: %d", out.ExitCode)
	}
	v, err := text("npm --version", "stdout", out.Stdout)
	if err != nil {
		return 0, err
	}
	schema := version.Detect(v)
	log.Debugf("Using audit report %s", schema)
	return schema, nil
}

// Audit runs `npm audit --json` and decodes its report with the schema the
// installed npm prints. npm exits non-zero when it finds vulnerabilities;
// that is reported as UpdateRequired, not as an error.
func Audit(ctx context.Context, inv Invoker) (types.Outcome, report.AuditReport, error) {
	schema, err := DetectSchema(ctx, inv)
	if err != nil {
		return types.UpToDate, nil, err
	}

	out, err := inv.Invoke(ctx, "audit", "--json")
	if err != nil {
		return types.UpToDate, nil, err
	}
	stdout, err := checkOutput("npm audit", out)
	if err != nil {
		return types.UpToDate, nil, err
	}

	r, err := report.DecodeAudit(schema, []byte(stdout))
	if err != nil {
		return types.UpToDate, nil, err
	}
	return types.OutcomeFromExit(out.Success()), r, nil
}

// Outdated runs `npm outdated --json --long`. npm exits non-zero when any
// dependency is outdated, which is reported as UpdateRequired.
func Outdated(ctx context.Context, inv Invoker) (types.Outcome, outdated.Report, error) {
	out, err := inv.Invoke(ctx, "outdated", "--json", "--long")
	if err != nil {
		return types.UpToDate, nil, err
	}
	stdout, err := checkOutput("npm outdated", out)
	if err != nil {
		return types.UpToDate, nil, err
	}

	r, err := report.DecodeOutdated([]byte(stdout))
	if err != nil {
		return types.UpToDate, nil, err
	}
	return types.OutcomeFromExit(out.Success()), r, nil
}

// checkOutput logs a failing exit and returns stdout as text.
func checkOutput(name string, out Output) (string, error) {
	stdout, err := text(name, "stdout", out.Stdout)
	if err != nil {
		return "", err
	}
	if out.Success() {
		return stdout, nil
	}

	log.Warnf("%s did not return with a successful exit code: %d", name, out.ExitCode)
	log.Debugf("stdout:\n%s", stdout)
	if len(out.Stderr) > 0 {
		stderr, err := text(name, "stderr", out.Stderr)
		if err != nil {
			return "", err
		}
		utils.LogLines(strings.TrimRight(stderr, "\n"), log.WarnLevel)
	}
	return stdout, nil
}

func text(name, stream string, b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", errors.Wrapf(types.ErrInvalidUTF8, "%s %s", name, stream)
	}
	return string(b), nil
}
