package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	log "github.com/sirupsen/logrus"
)

// Schema identifies the shape of an npm audit report.
type Schema int

const (
	// SchemaV1 is the report npm 6 and earlier print.
	SchemaV1 Schema = 1
	// SchemaV2 is the report npm 7 and later print.
	SchemaV2 Schema = 2
)

func (s Schema) String() string {
	switch s {
	case SchemaV1:
		return "v1"
	case SchemaV2:
		return "v2"
	default:
		return "unknown"
	}
}

// Threshold is the first npm release that prints SchemaV2 audit reports.
const Threshold = "7.0.0"

var threshold = semver.MustParse(Threshold)

// Detect classifies the output of `npm --version`. Versions below Threshold
// select SchemaV1, everything else SchemaV2.
// A string that does not parse as a version selects SchemaV2 as well.
func Detect(raw string) Schema {
	s := strings.TrimSpace(raw)
	log.Debugf("Got version string %q from npm --version", s)

	v, err := semver.NewVersion(s)
	if err != nil {
		log.Debugf("Could not parse npm version %q, defaulting to audit report %s: %v", s, SchemaV2, err)
		return SchemaV2
	}
	if v.LessThan(threshold) {
		log.Debugf("npm %s is before %s, using audit report %s", v, threshold, SchemaV1)
		return SchemaV1
	}
	log.Debugf("npm %s is %s or above, using audit report %s", v, threshold, SchemaV2)
	return SchemaV2
}
