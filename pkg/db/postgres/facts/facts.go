package facts

import (
	"context"
	"fmt"
	"time"

	kdb "github.com/vetstoria/k9facts/pkg/db"
	kpgerr "github.com/vetstoria/k9facts/pkg/db/postgres/errors"
	kpool "github.com/vetstoria/k9facts/pkg/db/postgres/pool"
	"github.com/vetstoria/k9facts/pkg/db/postgres/scanner"
	"github.com/vetstoria/k9facts/pkg/utils/slices"
)

type pgFacts struct {
	pool kpool.Pool
}

func New(pool kpool.Pool) kdb.FactInterface {
	return &pgFacts{pool: pool}
}

type factRecord struct {
	Id        int       `sql:"id"`
	Fact      string    `sql:"fact"`
	Category  string    `sql:"category"`
	Version   int       `sql:"version"`
	IsDeleted bool      `sql:"is_deleted"`
	CreatedAt time.Time `sql:"created_at"`
	UpdatedAt time.Time `sql:"updated_at"`
}

func (r factRecord) Body() (kdb.Fact, error) {
	category, err := kdb.AsCategory(r.Category)
	if err != nil {
		return kdb.Fact{}, err
	}
	return kdb.Fact{
		Id:        r.Id,
		Fact:      r.Fact,
		Category:  category,
		Version:   r.Version,
		IsDeleted: r.IsDeleted,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

const factColumns = `"id", "fact", "category", "version", "is_deleted", "created_at", "updated_at"`

func (f *pgFacts) GetLive(ctx context.Context) ([]kdb.Fact, error) {
	conn, err := f.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	records, err := scanner.New[factRecord]().QueryAll(
		ctx, conn,
		`select `+factColumns+` from "facts" where not "is_deleted" order by "id"`,
	)
	if err != nil {
		return nil, err
	}

	return slices.MapUntilError(records, factRecord.Body)
}

func (f *pgFacts) Find(ctx context.Context, query kdb.FactFindQuery) ([]kdb.Fact, error) {
	conn, err := f.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	var category *string
	if query.Category != nil {
		c := query.Category.String()
		category = &c
	}

	records, err := scanner.New[factRecord]().QueryAll(
		ctx, conn,
		`
		select `+factColumns+` from "facts"
		where ($1 or not "is_deleted")
		and ($2::text is null or "category" = $2::text)
		order by "id"
		`,
		query.IncludeDeleted, category,
	)
	if err != nil {
		return nil, err
	}

	return slices.MapUntilError(records, factRecord.Body)
}

func (f *pgFacts) Get(ctx context.Context, id int) (kdb.Fact, error) {
	conn, err := f.pool.Acquire(ctx)
	if err != nil {
		return kdb.Fact{}, err
	}
	defer conn.Release()

	records, err := scanner.New[factRecord]().QueryAll(
		ctx, conn,
		`select `+factColumns+` from "facts" where "id" = $1`,
		id,
	)
	if err != nil {
		return kdb.Fact{}, err
	}

	switch len(records) {
	case 0:
		return kdb.Fact{}, kpgerr.Missing{
			Table: "facts", Identity: fmt.Sprintf("id=%d", id),
		}
	case 1:
		return records[0].Body()
	default:
		return kdb.Fact{}, kpgerr.TooMuch{
			Table: "facts", Identity: fmt.Sprintf("id=%d", id), Expected: 1,
		}
	}
}

func (f *pgFacts) Sync(ctx context.Context, plan kdb.SyncPlan) (kdb.SyncStats, error) {
	stats := kdb.SyncStats{}

	tx, err := f.pool.Begin(ctx)
	if err != nil {
		return stats, err
	}
	defer tx.Rollback(ctx)

	for _, u := range plan.Updates {
		tag, err := tx.Exec(
			ctx,
			`
			update "facts"
			set "fact" = $2, "category" = $3, "version" = $4, "updated_at" = now()
			where "id" = $1 and not "is_deleted"
			`,
			u.Id, u.Fact, u.Category.String(), u.Version,
		)
		if err != nil {
			return kdb.SyncStats{}, err
		}
		if tag.RowsAffected() == 0 {
			return kdb.SyncStats{}, kpgerr.Missing{
				Table: "facts", Identity: fmt.Sprintf("id=%d", u.Id),
			}
		}
		stats.Updated += 1
	}

	for _, n := range plan.Inserts {
		if _, err := tx.Exec(
			ctx,
			`insert into "facts" ("fact", "category") values ($1, $2)`,
			n.Fact, n.Category.String(),
		); err != nil {
			return kdb.SyncStats{}, err
		}
		stats.Inserted += 1
	}

	for _, id := range plan.SoftDeletes {
		tag, err := tx.Exec(
			ctx,
			`
			update "facts"
			set "is_deleted" = true, "updated_at" = now()
			where "id" = $1 and not "is_deleted"
			`,
			id,
		)
		if err != nil {
			return kdb.SyncStats{}, err
		}
		stats.SoftDeleted += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return kdb.SyncStats{}, err
	}
	return stats, nil
}

func (f *pgFacts) SoftDelete(ctx context.Context, id int) error {
	tx, err := f.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(
		ctx,
		`
		update "facts"
		set "is_deleted" = true, "updated_at" = now()
		where "id" = $1 and not "is_deleted"
		`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return kpgerr.Missing{
			Table: "facts", Identity: fmt.Sprintf("id=%d (live)", id),
		}
	}

	return tx.Commit(ctx)
}

func (f *pgFacts) Purge(ctx context.Context, deadline time.Time) (int, error) {
	conn, err := f.pool.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Release()

	tag, err := conn.Exec(
		ctx,
		`delete from "facts" where "is_deleted" and "updated_at" < $1`,
		deadline,
	)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
