package runner

import (
	"context"

	"github.com/npmparser/npmparser/pkg/report"
	"github.com/npmparser/npmparser/pkg/types"
	"github.com/npmparser/npmparser/pkg/types/outdated"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Result holds one audit run and one outdated run of the same project.
type Result struct {
	AuditOutcome    types.Outcome
	Audit           report.AuditReport
	OutdatedOutcome types.Outcome
	Outdated        outdated.Report
}

// Check runs Audit and Outdated concurrently. The first failure cancels the
// other run and is returned.
func Check(ctx context.Context, inv Invoker) (*Result, error) {
	var res Result
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		outcome, r, err := Audit(egCtx, inv)
		if err != nil {
			return errors.Wrap(err, "npm audit")
		}
		res.AuditOutcome, res.Audit = outcome, r
		return nil
	})
	eg.Go(func() error {
		outcome, r, err := Outdated(egCtx, inv)
		if err != nil {
			return errors.Wrap(err, "npm outdated")
		}
		res.OutdatedOutcome, res.Outdated = outcome, r
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	log.Debugf("npm audit: %s, npm outdated: %s", res.AuditOutcome, res.OutdatedOutcome)
	return &res, nil
}
