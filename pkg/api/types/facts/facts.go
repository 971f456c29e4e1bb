package facts

import (
	"github.com/vetstoria/k9facts/pkg/utils/rfctime"
)

type Detail struct {
	Id        int             `json:"id"`
	Fact      string          `json:"fact"`
	Category  string          `json:"category"`
	Version   int             `json:"version"`
	Deleted   bool            `json:"deleted"`
	CreatedAt rfctime.RFC3339 `json:"createdAt"`
	UpdatedAt rfctime.RFC3339 `json:"updatedAt"`
}

func (d Detail) Equal(o Detail) bool {
	return d.Id == o.Id &&
		d.Fact == o.Fact &&
		d.Category == o.Category &&
		d.Version == o.Version &&
		d.Deleted == o.Deleted &&
		d.CreatedAt.Equal(o.CreatedAt) &&
		d.UpdatedAt.Equal(o.UpdatedAt)
}
