package facts

import (
	apifacts "github.com/vetstoria/k9facts/pkg/api/types/facts"
	kdb "github.com/vetstoria/k9facts/pkg/db"
	"github.com/vetstoria/k9facts/pkg/utils/rfctime"
)

func ComposeDetail(f kdb.Fact) apifacts.Detail {
	return apifacts.Detail{
		Id:        f.Id,
		Fact:      f.Fact,
		Category:  f.Category.String(),
		Version:   f.Version,
		Deleted:   f.IsDeleted,
		CreatedAt: rfctime.RFC3339(f.CreatedAt),
		UpdatedAt: rfctime.RFC3339(f.UpdatedAt),
	}
}
