package runs

import (
	"github.com/vetstoria/k9facts/pkg/utils/rfctime"
)

type Detail struct {
	RunId       string           `json:"runId"`
	Status      string           `json:"status"`
	StartedAt   rfctime.RFC3339  `json:"startedAt"`
	FinishedAt  *rfctime.RFC3339 `json:"finishedAt,omitempty"`
	Pulled      int              `json:"pulled"`
	Updated     int              `json:"updated"`
	Inserted    int              `json:"inserted"`
	SoftDeleted int              `json:"softDeleted"`
	Error       string           `json:"error,omitempty"`
}

func (d Detail) Equal(o Detail) bool {
	if (d.FinishedAt == nil) != (o.FinishedAt == nil) {
		return false
	}
	if d.FinishedAt != nil && !d.FinishedAt.Equal(*o.FinishedAt) {
		return false
	}
	return d.RunId == o.RunId &&
		d.Status == o.Status &&
		d.StartedAt.Equal(o.StartedAt) &&
		d.Pulled == o.Pulled &&
		d.Updated == o.Updated &&
		d.Inserted == o.Inserted &&
		d.SoftDeleted == o.SoftDeleted &&
		d.Error == o.Error
}
