package ingest

import (
	"context"
	"errors"
	"log"

	"github.com/vetstoria/k9facts/cmd/loops/hook"
	"github.com/vetstoria/k9facts/cmd/loops/recurring"
	bindruns "github.com/vetstoria/k9facts/pkg/api-types-binding/runs"
	apiruns "github.com/vetstoria/k9facts/pkg/api/types/runs"
	kdb "github.com/vetstoria/k9facts/pkg/db"
	"github.com/vetstoria/k9facts/pkg/etl"
	"github.com/vetstoria/k9facts/pkg/etl/source"
	"github.com/vetstoria/k9facts/pkg/utils/slices"
)

// LockName is the keychain entry serializing ingest cycles
// across processes.
const LockName = "ingest"

var errEmptyBatch = errors.New("source answered an empty batch")

// Report is the outcome of the latest ingest cycle.
type Report struct {
	RunId  string
	Pulled int
	Stats  kdb.SyncStats
}

// initial value for the first cycle.
func Seed() Report {
	return Report{}
}

// Task returns a recurring task pulling facts from src and syncing
// them into the store.
//
// One cycle is one ingest run: its outcome is recorded via runs, and
// the sync itself happens under the "ingest" lock so that no two
// processes rewrite the facts table at once.
//
// A failure of the source or of the before hook marks the run failed
// and lets the loop go on. A failure of the database stops the loop.
func Task(
	l *log.Logger,
	src source.Client,
	facts kdb.FactInterface,
	runs kdb.RunInterface,
	keychain kdb.KeychainInterface,
	threshold float64,
	h hook.Hook[apiruns.Detail],
) recurring.Task[Report] {

	detailOf := func(ctx context.Context, runId string) apiruns.Detail {
		rs, err := runs.Get(ctx, []string{runId})
		if err != nil {
			return apiruns.Detail{RunId: runId}
		}
		r, ok := rs[runId]
		if !ok {
			return apiruns.Detail{RunId: runId}
		}
		return bindruns.ComposeDetail(r)
	}

	markFailed := func(ctx context.Context, runId string, pulled int, reason error) error {
		return runs.Finish(ctx, runId, kdb.RunExit{
			Status: kdb.RunFailed,
			Pulled: pulled,
			Error:  reason.Error(),
		})
	}

	return func(ctx context.Context, last Report) (Report, bool, error) {
		runId, err := runs.NewRun(ctx)
		if err != nil {
			return last, false, err
		}
		report := Report{RunId: runId}

		if err := h.Before(detailOf(ctx, runId)); err != nil {
			l.Printf("run %s: before hook refused: %v", runId, err)
			return report, false, markFailed(ctx, runId, 0, err)
		}

		raw, err := src.Fetch(ctx)
		if err != nil {
			l.Printf("run %s: source failed: %v", runId, err)
			return report, false, markFailed(ctx, runId, 0, err)
		}
		report.Pulled = len(raw)

		if len(raw) == 0 {
			// an empty batch is suspicious. leave the stored facts as they are.
			l.Printf("run %s: %v. facts are left untouched", runId, errEmptyBatch)
			return report, false, markFailed(ctx, runId, 0, errEmptyBatch)
		}

		incoming := etl.Categorize(slices.Map(
			raw, func(r source.RawFact) string { return r.Fact },
		))

		changed := false
		err = keychain.Lock(ctx, LockName, func(ctx context.Context) error {
			existing, err := facts.GetLive(ctx)
			if err != nil {
				return err
			}

			plan := etl.BuildSyncPlan(existing, incoming, threshold)
			if plan.Empty() {
				return nil
			}

			changed = true
			stats, err := facts.Sync(ctx, plan)
			if err != nil {
				return err
			}
			report.Stats = stats
			return nil
		})
		if err != nil {
			return report, false, err
		}

		if err := runs.Finish(ctx, runId, kdb.RunExit{
			Status: kdb.RunDone,
			Pulled: report.Pulled,
			Stats:  report.Stats,
		}); err != nil {
			return report, false, err
		}

		if err := h.After(detailOf(ctx, runId)); err != nil {
			l.Printf("run %s: after hook failed: %v", runId, err)
		}

		l.Printf(
			"run %s: done (pulled %d / updated %d, inserted %d, soft-deleted %d)",
			runId, report.Pulled,
			report.Stats.Updated, report.Stats.Inserted, report.Stats.SoftDeleted,
		)
		return report, changed, nil
	}
}
