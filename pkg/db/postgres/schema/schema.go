package schema

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	kpool "github.com/vetstoria/k9facts/pkg/db/postgres/pool"
)

// repository is a directory holding one numbered subdirectory per schema
// revision. Each subdirectory contains the .sql files bringing the schema
// up from the revision before it.
type repository string

// revision of the facts schema, backed by a directory of .sql files.
type revision struct {
	number int
	dir    string
}

func (rep repository) revisions() ([]revision, error) {
	entries, err := os.ReadDir(string(rep))
	if err != nil {
		return nil, err
	}

	revs := []revision{}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		n, err := strconv.Atoi(e.Name())
		if err != nil {
			// not a revision. a README, for example.
			continue
		}
		revs = append(revs, revision{
			number: n, dir: filepath.Join(string(rep), e.Name()),
		})
	}

	slices.SortFunc(revs, func(a, b revision) int { return a.number - b.number })
	return revs, nil
}

// latest is the highest revision number found in the repository,
// or 0 when it holds none.
func (rep repository) latest() (int, error) {
	revs, err := rep.revisions()
	if err != nil {
		return 0, err
	}
	if len(revs) == 0 {
		return 0, nil
	}
	return revs[len(revs)-1].number, nil
}

// apply runs the .sql files of the revision, in filename order.
func (r revision) apply(ctx context.Context, q kpool.Queryer) error {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return err
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		query, err := os.ReadFile(filepath.Join(r.dir, e.Name()))
		if err != nil {
			return err
		}
		if _, err := q.Exec(ctx, string(query)); err != nil {
			return fmt.Errorf("schema revision %d (%s): %w", r.number, e.Name(), err)
		}
	}
	return nil
}

type pgSchema struct {
	pool kpool.Pool
	repo repository
}

// New creates a Schema over the schema repository directory.
func New(pool kpool.Pool, schemaRepository string) *pgSchema {
	return &pgSchema{
		pool: pool,
		repo: repository(schemaRepository),
	}
}

// Version reads the schema revision recorded in the database.
//
// A database where the "schema_version" table does not exist yet is
// at version 0, ready to be upgraded.
func (s *pgSchema) Version(ctx context.Context) (int, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return -1, err
	}
	defer conn.Release()

	var version int
	if err := conn.QueryRow(
		ctx, `SELECT max("version") FROM "schema_version"`,
	).Scan(&version); err != nil {
		if pgerr := new(pgconn.PgError); errors.As(err, &pgerr) {
			if pgerr.Code == pgerrcode.UndefinedTable {
				return 0, nil
			}
		}
		return -1, err
	}

	return version, nil
}

// Upgrade applies the repository revisions newer than the recorded
// version, in one transaction.
func (s *pgSchema) Upgrade(ctx context.Context) error {
	revs, err := s.repo.revisions()
	if err != nil {
		return err
	}

	current, err := s.Version(ctx)
	if err != nil {
		return err
	}

	pending := []revision{}
	for _, r := range revs {
		if current < r.number {
			pending = append(pending, r)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, r := range pending {
		if err := r.apply(ctx, tx); err != nil {
			return err
		}
		if err := record(ctx, tx, r.number); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// record rewrites the "schema_version" table to hold just the number.
func record(ctx context.Context, tx kpool.Tx, number int) error {
	if _, err := tx.Exec(ctx, `DELETE FROM "schema_version"`); err != nil {
		return err
	}
	_, err := tx.Exec(
		ctx, `INSERT INTO "schema_version" ("version") VALUES ($1)`, number,
	)
	return err
}

// Context derives a context which is canceled when the database schema
// falls behind the repository. It verifies once at start, and again
// whenever a revision directory appears or disappears.
func (s *pgSchema) Context(ctx context.Context) (context.Context, context.CancelFunc) {
	cctx, can := context.WithCancelCause(ctx)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		can(err)
		return cctx, func() {}
	}
	if err := w.Add(string(s.repo)); err != nil {
		can(err)
		return cctx, func() {}
	}

	verify := func() {
		latest, err := s.repo.latest()
		if err != nil {
			can(fmt.Errorf("failed to read schema repository: %w", err))
			return
		}
		current, err := s.Version(ctx)
		if err != nil {
			can(fmt.Errorf("failed to get current schema version: %w", err))
			return
		}
		if current < latest {
			can(fmt.Errorf(
				"schema is outdated: %d (in db) < %d (in repository)",
				current, latest,
			))
		}
	}

	go func() {
		defer w.Close()

		for {
			select {
			case <-cctx.Done():
				return
			case ev := <-w.Events:
				if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) {
					continue
				}
				if string(s.repo) != filepath.Dir(ev.Name) {
					continue
				}

				verify()
			}
		}
	}()

	verify()
	return cctx, func() { can(nil) }
}

// Detached serves a process running without a schema repository at hand.
//
// It can neither upgrade nor watch revisions, but Version still proves
// the database answers: it pings the pool and reports -1, or the error
// when the database is unreachable.
func Detached(pool kpool.Pool) *detachedSchema {
	return &detachedSchema{pool: pool}
}

type detachedSchema struct {
	pool kpool.Pool
}

func (*detachedSchema) Upgrade(ctx context.Context) error {
	return errors.New("no schema repository available")
}

func (d *detachedSchema) Version(ctx context.Context) (int, error) {
	if err := d.pool.Ping(ctx); err != nil {
		return -1, err
	}
	return -1, nil
}

func (*detachedSchema) Context(ctx context.Context) (context.Context, context.CancelFunc) {
	return ctx, func() {}
}
