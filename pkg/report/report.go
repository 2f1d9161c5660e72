package report

import (
	"bytes"

	"github.com/npmparser/npmparser/pkg/codec"
	"github.com/npmparser/npmparser/pkg/types"
	"github.com/npmparser/npmparser/pkg/types/auditv1"
	"github.com/npmparser/npmparser/pkg/types/auditv2"
	"github.com/npmparser/npmparser/pkg/types/outdated"
	"github.com/npmparser/npmparser/pkg/version"
	"github.com/pkg/errors"
)

// ErrorUnsupported reports a document that matches none of the known audit
// report shapes.
type ErrorUnsupported struct {
	err error
}

func (e *ErrorUnsupported) Error() string { return e.err.Error() }

func (e *ErrorUnsupported) Unwrap() error { return e.err }

// AuditReport is a decoded npm audit report: either *auditv1.Report or
// *auditv2.Report. Use a type switch to reach the fields.
type AuditReport interface {
	Schema() version.Schema
}

type auditParser struct {
	schema version.Schema
	// shape lists the members a document must have to be tried against this
	// parser when the schema is not known up front.
	shape  []string
	decode func(codec.Node) (AuditReport, error)
}

// auditParsers is ordered: when the schema is unknown, earlier entries are
// tried first.
var auditParsers = []auditParser{
	{
		schema: version.SchemaV1,
		shape:  []string{"actions", "advisories"},
		decode: func(n codec.Node) (AuditReport, error) {
			r, err := auditv1.Decode(n)
			if err != nil {
				return nil, err
			}
			return r, nil
		},
	},
	{
		schema: version.SchemaV2,
		shape:  []string{"vulnerabilities", "metadata"},
		decode: func(n codec.Node) (AuditReport, error) {
			r, err := auditv2.Decode(n)
			if err != nil {
				return nil, err
			}
			return r, nil
		},
	},
}

// DecodeAudit decodes data as an audit report of the given schema. The
// schema is authoritative: a document of the other shape is a failure, not
// a reason to try again. Failures wrap a *codec.Error naming the JSON path
// where decoding stopped.
func DecodeAudit(schema version.Schema, data []byte) (AuditReport, error) {
	for _, p := range auditParsers {
		if p.schema != schema {
			continue
		}
		root, err := codec.Parse(data)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse audit report %s", schema)
		}
		r, err := p.decode(root)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to decode audit report %s", schema)
		}
		return r, nil
	}
	return nil, errors.Wrapf(types.ErrUnknownSchema, "audit report %s", schema)
}

// DecodeAuditAuto decodes data without a known schema by trying each shape
// in order, version 1 before version 2. A document matching neither shape
// yields an *ErrorUnsupported.
func DecodeAuditAuto(data []byte) (AuditReport, error) {
	root, err := codec.Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse audit report")
	}

	variants := make([]codec.Variant[AuditReport], len(auditParsers))
	for i, p := range auditParsers {
		variants[i] = codec.Variant[AuditReport]{
			Name:   "audit report " + p.schema.String(),
			Match:  codec.HasFields(p.shape...),
			Decode: p.decode,
		}
	}

	r, err := codec.Untagged(root, variants...)
	if err != nil {
		if errors.Is(err, codec.ErrNoVariant) {
			return nil, &ErrorUnsupported{err}
		}
		return nil, errors.Wrap(err, "failed to decode audit report")
	}
	return r, nil
}

// DecodeOutdated decodes the output of `npm outdated --json --long`. npm 6
// prints nothing at all when every dependency is current, so blank input is
// an empty report.
func DecodeOutdated(data []byte) (outdated.Report, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return outdated.Report{}, nil
	}
	root, err := codec.Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse outdated report")
	}
	r, err := outdated.Decode(root)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode outdated report")
	}
	return r, nil
}
