package housekeeping

import (
	"context"
	"log"
	"time"

	"github.com/vetstoria/k9facts/cmd/loops/hook"
	"github.com/vetstoria/k9facts/cmd/loops/recurring"
	kdb "github.com/vetstoria/k9facts/pkg/db"
)

// Report counts facts purged by the housekeeping loop.
type Report struct {
	// facts removed in the latest cycle.
	Purged int `json:"purged"`

	// facts removed since the loop started.
	Total int `json:"total"`
}

// initial value for the first cycle.
func Seed() Report {
	return Report{}
}

// Task returns a recurring task removing soft-deleted facts which
// have been kept longer than retention.
func Task(
	l *log.Logger,
	facts kdb.FactInterface,
	retention time.Duration,
	h hook.Hook[Report],
) recurring.Task[Report] {
	return func(ctx context.Context, last Report) (Report, bool, error) {
		if err := h.Before(last); err != nil {
			l.Printf("before hook refused housekeeping: %v", err)
			return last, false, nil
		}

		deadline := time.Now().Add(-retention)
		purged, err := facts.Purge(ctx, deadline)
		if err != nil {
			return last, false, err
		}

		report := Report{Purged: purged, Total: last.Total + purged}
		if 0 < purged {
			l.Printf(
				"purged %d soft-deleted facts (deadline: %s)",
				purged, deadline.Format(time.RFC3339),
			)
		}

		if err := h.After(report); err != nil {
			l.Printf("after hook failed: %v", err)
		}
		return report, 0 < purged, nil
	}
}
