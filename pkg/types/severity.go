package types

import (
	"github.com/npmparser/npmparser/pkg/codec"
	"github.com/pkg/errors"
)

// Severity is the severity npm assigns to an advisory or vulnerable package.
// Values are ordered, so they compare with < and sort with slices.Sort.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityInfo
	SeverityLow
	SeverityModerate
	SeverityHigh
	SeverityCritical
)

var severityNames = [...]string{
	SeverityNone:     "none",
	SeverityInfo:     "info",
	SeverityLow:      "low",
	SeverityModerate: "moderate",
	SeverityHigh:     "high",
	SeverityCritical: "critical",
}

// AllSeverities returns every severity from lowest to highest.
func AllSeverities() []Severity {
	return []Severity{
		SeverityNone,
		SeverityInfo,
		SeverityLow,
		SeverityModerate,
		SeverityHigh,
		SeverityCritical,
	}
}

// ParseSeverity parses the lowercase name npm prints.
func ParseSeverity(s string) (Severity, error) {
	for i, name := range severityNames {
		if name == s {
			return Severity(i), nil
		}
	}
	return SeverityNone, errors.Wrapf(codec.ErrInvalidValue, "unknown severity %q", s)
}

func (s Severity) IsValid() bool {
	return s >= SeverityNone && s <= SeverityCritical
}

func (s Severity) String() string {
	if !s.IsValid() {
		return "unknown"
	}
	return severityNames[s]
}

func (s Severity) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, errors.Errorf("invalid severity %d", int(s))
	}
	return []byte(severityNames[s]), nil
}

func (s *Severity) UnmarshalText(b []byte) error {
	v, err := ParseSeverity(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// DecodeSeverity decodes a severity name from a JSON string node.
func DecodeSeverity(n codec.Node) (Severity, error) {
	s, err := n.Text()
	if err != nil {
		return SeverityNone, err
	}
	v, err := ParseSeverity(s)
	if err != nil {
		return SeverityNone, n.Fail(err)
	}
	return v, nil
}
