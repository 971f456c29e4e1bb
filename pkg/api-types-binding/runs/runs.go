package runs

import (
	apiruns "github.com/vetstoria/k9facts/pkg/api/types/runs"
	kdb "github.com/vetstoria/k9facts/pkg/db"
	"github.com/vetstoria/k9facts/pkg/utils/rfctime"
)

func ComposeDetail(r kdb.IngestRun) apiruns.Detail {
	var finishedAt *rfctime.RFC3339
	if r.FinishedAt != nil {
		f := rfctime.RFC3339(*r.FinishedAt)
		finishedAt = &f
	}

	return apiruns.Detail{
		RunId:       r.RunId,
		Status:      r.Status.String(),
		StartedAt:   rfctime.RFC3339(r.StartedAt),
		FinishedAt:  finishedAt,
		Pulled:      r.Pulled,
		Updated:     r.Stats.Updated,
		Inserted:    r.Stats.Inserted,
		SoftDeleted: r.Stats.SoftDeleted,
		Error:       r.Error,
	}
}
