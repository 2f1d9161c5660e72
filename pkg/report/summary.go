package report

import (
	"cmp"
	"strings"

	"github.com/npmparser/npmparser/pkg/types"
	"github.com/npmparser/npmparser/pkg/types/auditv1"
	"github.com/npmparser/npmparser/pkg/types/auditv2"
	"golang.org/x/exp/slices"
)

// Entry is one advisory (version 1) or vulnerable package (version 2).
type Entry struct {
	Name     string
	Severity types.Severity
}

type Summary struct {
	Counts  map[types.Severity]int
	Highest types.Severity
	// Entries is ordered from most to least severe, then by name.
	Entries []Entry
}

// Summarize counts the entries of r per severity. For version 1 reports the
// entries are advisories keyed by advisory id; for version 2 reports they
// are vulnerable packages.
func Summarize(r AuditReport) Summary {
	var entries []Entry
	switch r := r.(type) {
	case *auditv1.Report:
		for key, adv := range r.Advisories {
			entries = append(entries, Entry{Name: key, Severity: adv.Severity})
		}
	case *auditv2.Report:
		for name, pkg := range r.Vulnerabilities {
			entries = append(entries, Entry{Name: name, Severity: pkg.Severity})
		}
	}

	slices.SortStableFunc(entries, func(a, b Entry) int {
		if c := cmp.Compare(b.Severity, a.Severity); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})

	s := Summary{Counts: make(map[types.Severity]int), Entries: entries}
	for _, e := range entries {
		s.Counts[e.Severity]++
		s.Highest = max(s.Highest, e.Severity)
	}
	return s
}
