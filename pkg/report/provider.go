package report

import (
	"encoding/json"

	"github.com/npmparser/npmparser/pkg/types/outdated"
	"github.com/pkg/errors"
)

// EncodeAudit serializes a decoded audit report back into npm's JSON shape.
// Dependency paths are joined with ">" and timestamps are written as
// RFC 3339.
func EncodeAudit(r AuditReport) ([]byte, error) {
	if r == nil {
		return nil, errors.New("nil audit report")
	}
	b, err := json.Marshal(r)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode audit report %s", r.Schema())
	}
	return b, nil
}

func EncodeOutdated(r outdated.Report) ([]byte, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode outdated report")
	}
	return b, nil
}
