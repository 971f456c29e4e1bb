package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
	kdb "github.com/vetstoria/k9facts/pkg/db"
	kpgfacts "github.com/vetstoria/k9facts/pkg/db/postgres/facts"
	kpgkeychain "github.com/vetstoria/k9facts/pkg/db/postgres/keychain"
	kpool "github.com/vetstoria/k9facts/pkg/db/postgres/pool"
	kpgruns "github.com/vetstoria/k9facts/pkg/db/postgres/runs"
	kpgschema "github.com/vetstoria/k9facts/pkg/db/postgres/schema"
	xe "github.com/vetstoria/k9facts/pkg/errors"
)

type factsDBPostgres struct {
	pool     *pgxpool.Pool
	facts    kdb.FactInterface
	runs     kdb.RunInterface
	keychain kdb.KeychainInterface
	schema   kdb.SchemaInterface
}

type Config struct {
	SchemaRepository string
}

type Option func(*Config) *Config

func WithSchemaRepository(repository string) Option {
	return func(c *Config) *Config {
		c.SchemaRepository = repository
		return c
	}
}

func New(
	ctx context.Context,
	url string,
	options ...Option,
) (kdb.FactsDatabase, error) {
	pool, err := pgxpool.Connect(ctx, url)
	if err != nil {
		return nil, xe.Wrap(err)
	}

	c := Config{}
	for _, option := range options {
		c = *option(&c)
	}

	p := kpool.Wrap(pool)
	var schema kdb.SchemaInterface = kpgschema.Detached(p)
	if c.SchemaRepository != "" {
		schema = kpgschema.New(p, c.SchemaRepository)
	}

	return &factsDBPostgres{
		pool:     pool,
		facts:    kpgfacts.New(p),
		runs:     kpgruns.New(p),
		keychain: kpgkeychain.New(p),
		schema:   schema,
	}, nil
}

func (k *factsDBPostgres) Facts() kdb.FactInterface {
	return k.facts
}

func (k *factsDBPostgres) Runs() kdb.RunInterface {
	return k.runs
}

func (k *factsDBPostgres) Keychain() kdb.KeychainInterface {
	return k.keychain
}

func (k *factsDBPostgres) Schema() kdb.SchemaInterface {
	return k.schema
}

func (k *factsDBPostgres) Close() error {
	k.pool.Close()
	return nil
}
