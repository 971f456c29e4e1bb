package runs

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	kdb "github.com/vetstoria/k9facts/pkg/db"
	kpgerr "github.com/vetstoria/k9facts/pkg/db/postgres/errors"
	kpool "github.com/vetstoria/k9facts/pkg/db/postgres/pool"
	"github.com/vetstoria/k9facts/pkg/db/postgres/scanner"
	"github.com/vetstoria/k9facts/pkg/utils/pointer"
)

type pgRuns struct {
	pool kpool.Pool
}

func New(pool kpool.Pool) kdb.RunInterface {
	return &pgRuns{pool: pool}
}

type runRecord struct {
	RunId       string     `sql:"run_id"`
	Status      string     `sql:"status"`
	StartedAt   time.Time  `sql:"started_at"`
	FinishedAt  *time.Time `sql:"finished_at"`
	Pulled      int        `sql:"pulled"`
	Updated     int        `sql:"updated"`
	Inserted    int        `sql:"inserted"`
	SoftDeleted int        `sql:"soft_deleted"`
	Error       string     `sql:"error"`
}

func (r runRecord) Body() (kdb.IngestRun, error) {
	status, err := kdb.AsRunStatus(r.Status)
	if err != nil {
		return kdb.IngestRun{}, err
	}
	return kdb.IngestRun{
		RunId:      r.RunId,
		Status:     status,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		Pulled:     r.Pulled,
		Stats: kdb.SyncStats{
			Updated:     r.Updated,
			Inserted:    r.Inserted,
			SoftDeleted: r.SoftDeleted,
		},
		Error: r.Error,
	}, nil
}

func (r *pgRuns) NewRun(ctx context.Context) (string, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return "", err
	}
	defer conn.Release()

	runId := uuid.NewString()
	if _, err := conn.Exec(
		ctx,
		`insert into "ingest_runs" ("run_id", "status") values ($1, $2)`,
		runId, kdb.RunRunning.String(),
	); err != nil {
		return "", err
	}
	return runId, nil
}

func (r *pgRuns) Finish(ctx context.Context, runId string, exit kdb.RunExit) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(
		ctx,
		`
		update "ingest_runs"
		set "status" = $2, "finished_at" = now(),
			"pulled" = $3, "updated" = $4, "inserted" = $5, "soft_deleted" = $6,
			"error" = $7
		where "run_id" = $1 and "status" = $8
		`,
		runId, exit.Status.String(),
		exit.Pulled, exit.Stats.Updated, exit.Stats.Inserted, exit.Stats.SoftDeleted,
		exit.Error, kdb.RunRunning.String(),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return kpgerr.Missing{
			Table: "ingest_runs", Identity: fmt.Sprintf("run_id=%s (running)", runId),
		}
	}

	return tx.Commit(ctx)
}

func (r *pgRuns) Find(ctx context.Context, query kdb.RunFindQuery) ([]string, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	var status *string
	if query.Status != nil {
		status = pointer.Ref(query.Status.String())
	}

	return scanner.New[string]().QueryAll(
		ctx, conn,
		`
		select "run_id" from "ingest_runs"
		where ($1::text is null or "status" = $1::text)
		and ($2::timestamptz is null or $2::timestamptz <= "started_at")
		order by "started_at" desc
		`,
		status, query.Since,
	)
}

func (r *pgRuns) Get(ctx context.Context, runIds []string) (map[string]kdb.IngestRun, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	records, err := scanner.New[runRecord]().QueryAll(
		ctx, conn,
		`
		select
			"run_id", "status", "started_at", "finished_at",
			"pulled", "updated", "inserted", "soft_deleted", "error"
		from "ingest_runs"
		where "run_id" = any($1)
		`,
		runIds,
	)
	if err != nil {
		return nil, err
	}

	runs := map[string]kdb.IngestRun{}
	for _, rec := range records {
		run, err := rec.Body()
		if err != nil {
			return nil, err
		}
		runs[run.RunId] = run
	}
	return runs, nil
}
