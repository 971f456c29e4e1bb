package schema_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"
	kpool "github.com/vetstoria/k9facts/pkg/db/postgres/pool"
	"github.com/vetstoria/k9facts/pkg/db/postgres/pool/mock"
	"github.com/vetstoria/k9facts/pkg/db/postgres/schema"
)

// repoDir builds a schema repository like:
//
//	1/00_base.sql
//	2/00_runs.sql, 2/01_index.sql
//	10/00_locks.sql
//	README.md, notes/
//
// non-numeric entries are not revisions and must be ignored.
func repoDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	files := map[string]string{
		"1/00_base.sql":   `create table "facts" ()`,
		"2/00_runs.sql":   `create table "ingest_runs" ()`,
		"2/01_index.sql":  `create index "idx_runs" on "ingest_runs" ()`,
		"10/00_locks.sql": `create table "locks" ()`,
		"README.md":       "not sql",
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.MkdirAll(filepath.Join(root, "notes"), 0o755); err != nil {
		t.Fatal(err)
	}
	return root
}

func versionConn(v int) *mock.Conn {
	conn := mock.NewConn()
	conn.Impl.QueryRow = func(context.Context, string, ...interface{}) pgx.Row {
		return mock.Row{ScanFn: func(dest ...interface{}) error {
			*(dest[0].(*int)) = v
			return nil
		}}
	}
	return conn
}

func TestUpgrade_AppliesPendingRevisions(t *testing.T) {
	repo := repoDir(t)

	tx := mock.NewTx()
	tx.Impl.Exec = func(context.Context, string, ...interface{}) (pgconn.CommandTag, error) {
		return pgconn.CommandTag("OK"), nil
	}

	pool := mock.NewPool()
	pool.Impl.Acquire = func(context.Context) (kpool.Conn, error) {
		return versionConn(1), nil
	}
	pool.Impl.Begin = func(context.Context) (kpool.Tx, error) { return tx, nil }

	testee := schema.New(pool, repo)
	if err := testee.Upgrade(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// revision 1 is applied already. 2 and 10 remain, in that order,
	// each followed by a rewrite of the version record.
	wantSql := []string{
		`create table "ingest_runs" ()`,
		`create index "idx_runs" on "ingest_runs" ()`,
		`DELETE FROM "schema_version"`,
		`INSERT INTO "schema_version" ("version") VALUES ($1)`,
		`create table "locks" ()`,
		`DELETE FROM "schema_version"`,
		`INSERT INTO "schema_version" ("version") VALUES ($1)`,
	}
	if tx.Calls.Exec.Times() != uint(len(wantSql)) {
		t.Fatalf("unexpected statements: %+v", tx.Calls.Exec)
	}
	for i, want := range wantSql {
		if got := tx.Calls.Exec[i].Sql; got != want {
			t.Errorf("statement %d: want %q, got %q", i, want, got)
		}
	}
	if tx.Calls.Exec[3].Args[0] != 2 || tx.Calls.Exec[6].Args[0] != 10 {
		t.Errorf("unexpected version records: %+v", tx.Calls.Exec)
	}

	if tx.Calls.Commit.Times() != 1 {
		t.Error("Commit should be called")
	}
}

func TestUpgrade_UpToDate(t *testing.T) {
	repo := repoDir(t)

	pool := mock.NewPool()
	pool.Impl.Acquire = func(context.Context) (kpool.Conn, error) {
		return versionConn(10), nil
	}
	// Impl.Begin is left nil. beginning a transaction would panic.

	testee := schema.New(pool, repo)
	if err := testee.Upgrade(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pool.Calls.Begin.Times() != 0 {
		t.Error("no transaction should be started")
	}
}

func TestVersion(t *testing.T) {
	t.Run("when the version table exists, it should answer the recorded version", func(t *testing.T) {
		pool := mock.NewPool()
		pool.Impl.Acquire = func(context.Context) (kpool.Conn, error) {
			return versionConn(3), nil
		}

		testee := schema.New(pool, "testdata/no-such-repo")
		version, err := testee.Version(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if version != 3 {
			t.Errorf("version: want 3, got %d", version)
		}
	})

	t.Run("when the version table does not exist yet, it should answer 0", func(t *testing.T) {
		conn := mock.NewConn()
		conn.Impl.QueryRow = func(context.Context, string, ...interface{}) pgx.Row {
			return mock.Row{ScanFn: func(...interface{}) error {
				return &pgconn.PgError{Code: pgerrcode.UndefinedTable}
			}}
		}
		pool := mock.NewPool()
		pool.Impl.Acquire = func(context.Context) (kpool.Conn, error) { return conn, nil }

		testee := schema.New(pool, "testdata/no-such-repo")
		version, err := testee.Version(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if version != 0 {
			t.Errorf("version: want 0, got %d", version)
		}
	})

	t.Run("when the query fails otherwise, it should answer the error", func(t *testing.T) {
		fakeErr := errors.New("fake error")
		conn := mock.NewConn()
		conn.Impl.QueryRow = func(context.Context, string, ...interface{}) pgx.Row {
			return mock.Row{ScanFn: func(...interface{}) error { return fakeErr }}
		}
		pool := mock.NewPool()
		pool.Impl.Acquire = func(context.Context) (kpool.Conn, error) { return conn, nil }

		testee := schema.New(pool, "testdata/no-such-repo")
		if _, err := testee.Version(context.Background()); !errors.Is(err, fakeErr) {
			t.Errorf("error: want %v, got %v", fakeErr, err)
		}
	})
}

func TestDetached(t *testing.T) {
	t.Run("when the database answers, Version reports -1", func(t *testing.T) {
		pool := mock.NewPool()
		pool.Impl.Ping = func(context.Context) error { return nil }

		testee := schema.Detached(pool)
		version, err := testee.Version(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if version != -1 {
			t.Errorf("version: want -1, got %d", version)
		}
		if pool.Calls.Ping.Times() != 1 {
			t.Errorf("Ping should be called once, but %d times", pool.Calls.Ping.Times())
		}
	})

	t.Run("when the database is unreachable, Version answers the error", func(t *testing.T) {
		fakeErr := errors.New("fake error")
		pool := mock.NewPool()
		pool.Impl.Ping = func(context.Context) error { return fakeErr }

		testee := schema.Detached(pool)
		if _, err := testee.Version(context.Background()); !errors.Is(err, fakeErr) {
			t.Errorf("error: want %v, got %v", fakeErr, err)
		}
	})

	t.Run("Upgrade is refused", func(t *testing.T) {
		testee := schema.Detached(mock.NewPool())
		err := testee.Upgrade(context.Background())
		if err == nil || !strings.Contains(err.Error(), "no schema repository") {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
