package router

import (
	"context"

	"github.com/railpath-hq/railrouter/pkg/compliance"
	"github.com/railpath-hq/railrouter/pkg/metrics"
	"github.com/railpath-hq/railrouter/pkg/models"
	"github.com/railpath-hq/railrouter/pkg/rails"
	"golang.org/x/sync/errgroup"
)

// eligibleRail is a rail that survived the filter, annotated with the
// compliance decision so scoring reuses the same evaluation.
type eligibleRail struct {
	rail     rails.Rail
	decision compliance.Decision
}

// eligibleRails narrows the catalog to rails usable for this transaction:
// amount within the rail's bounds, circuit closed, geography compatible and
// compliance allowed. Gate calls run concurrently, one per structurally
// eligible rail; output preserves catalog declaration order.
func (s *Service) eligibleRails(ctx context.Context, params models.TransactionParams) ([]eligibleRail, error) {
	crossBorder := params.CrossBorder()

	var candidates []rails.Rail
	for _, r := range s.catalog.Rails() {
		if params.Amount.LessThan(r.MinAmount) || params.Amount.GreaterThan(r.MaxAmount) {
			s.logger.DebugWithRail(string(r.Category), "Rail %s excluded: amount %s outside [%s, %s]",
				r.ID, params.Amount, r.MinAmount, r.MaxAmount)
			continue
		}
		// Open circuits are an exclusion, not an error.
		if s.breakers.IsOpen(r.ID) {
			s.logger.NoticeWithRail(string(r.Category), "Rail %s excluded: circuit open", r.ID)
			continue
		}
		if crossBorder && !r.CrossBorder {
			s.logger.DebugWithRail(string(r.Category), "Rail %s excluded: domestic-only for cross-border transaction", r.ID)
			continue
		}
		candidates = append(candidates, r)
	}

	// One compliance evaluation per rail per transaction; the policy score
	// is carried forward to scoring.
	decisions := make([]compliance.Decision, len(candidates))
	evaluated := make([]bool, len(candidates))

	g, groupCtx := errgroup.WithContext(ctx)
	for i, r := range candidates {
		i, r := i, r
		g.Go(func() error {
			decision, err := s.gate.Evaluate(groupCtx, r.ID, params)
			if err != nil {
				// Fail closed: a rail whose compliance status cannot be
				// established is excluded, not attempted.
				s.logger.ErrorWithRail(string(r.Category), "Compliance evaluation failed for rail %s, excluding: %v", r.ID, err)
				return groupCtx.Err()
			}
			decisions[i] = decision
			evaluated[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	eligible := make([]eligibleRail, 0, len(candidates))
	for i, r := range candidates {
		if !evaluated[i] {
			continue
		}
		if !decisions[i].Allowed {
			metrics.ComplianceDenials.WithLabelValues(r.ID).Inc()
			s.logger.DebugWithRail(string(r.Category), "Rail %s excluded: denied by compliance", r.ID)
			continue
		}
		eligible = append(eligible, eligibleRail{rail: r, decision: decisions[i]})
	}
	return eligible, nil
}
