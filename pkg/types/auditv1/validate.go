package auditv1

import (
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
	"k8s.io/apimachinery/pkg/util/sets"
)

// Validate checks the cross references inside a decoded report: every
// advisory an action resolves must be listed under advisories, and every
// dependency path must name at least one package. All violations are
// reported together.
func (r *Report) Validate() error {
	var allErrors *multierror.Error

	known := sets.New[uint64]()
	for _, adv := range r.Advisories {
		known.Insert(adv.ID)
	}
	keys := sets.KeySet(r.Advisories).UnsortedList()
	slices.Sort(keys)

	for i, action := range r.Actions {
		for j, res := range action.Base().Resolves {
			if !known.Has(res.ID) {
				allErrors = multierror.Append(allErrors,
					errors.Errorf("actions[%d].resolves[%d]: advisory %d is not in advisories", i, j, res.ID))
			}
			if len(res.Path) == 0 || res.Path[0] == "" {
				allErrors = multierror.Append(allErrors,
					errors.Errorf("actions[%d].resolves[%d].path: empty dependency path", i, j))
			}
		}
	}

	for _, key := range keys {
		adv := r.Advisories[key]
		if key != strconv.FormatUint(adv.ID, 10) {
			allErrors = multierror.Append(allErrors,
				errors.Errorf("advisories.%s: key does not match advisory id %d", key, adv.ID))
		}
		for i, finding := range adv.Findings {
			for j, p := range finding.Paths {
				if len(p) == 0 || p[0] == "" {
					allErrors = multierror.Append(allErrors,
						errors.Errorf("advisories.%s.findings[%d].paths[%d]: empty dependency path", key, i, j))
				}
			}
		}
	}

	return allErrors.ErrorOrNil()
}
