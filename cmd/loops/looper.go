package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/vetstoria/k9facts/cmd/loops/hook"
	"github.com/vetstoria/k9facts/cmd/loops/recurring"
	"github.com/vetstoria/k9facts/cmd/loops/tasks/housekeeping"
	"github.com/vetstoria/k9facts/cmd/loops/tasks/ingest"
	apiruns "github.com/vetstoria/k9facts/pkg/api/types/runs"
	configs "github.com/vetstoria/k9facts/pkg/configs/backend"
	cfg_hook "github.com/vetstoria/k9facts/pkg/configs/hook"
	kdb "github.com/vetstoria/k9facts/pkg/db"
	"github.com/vetstoria/k9facts/pkg/etl/source"
	"github.com/vetstoria/k9facts/pkg/loop"
)

type LoggerOptions func(*log.Logger) *log.Logger

func byLogger(l *log.Logger, opt ...LoggerOptions) *log.Logger {
	for _, o := range opt {
		l = o(l)
	}
	return l
}

func Copied() LoggerOptions {
	return func(l *log.Logger) *log.Logger {
		return log.New(l.Writer(), l.Prefix(), l.Flags())
	}
}

func WithPrefix(pre string) LoggerOptions {
	return func(l *log.Logger) *log.Logger {
		l.SetPrefix(pre)
		return l
	}
}

// Wrapper for monitoring loop tasks.
//
// Log the start and end of each time a task is executed.
func monitor[T any](logger *log.Logger, task loop.Task[T]) loop.Task[T] {
	var counter uint64
	return func(ctx context.Context, t T) (ret T, next loop.Next) {
		counter += 1
		timestamp := time.Now()

		logger.Printf("task start: #0x%X: ", counter)
		defer func() {
			logger.Printf(
				"task end: #0x%X (takes %s): %s\n with value = %#v",
				counter, time.Since(timestamp), next, ret,
			)
		}()

		ret, next = task(ctx, t)
		return
	}
}

// Manifest for starting a loop, which determines how the loop should behave.
type LoopManifest struct {
	// which loop to run
	Type kdb.LoopType

	// Policy for the looping
	Policy recurring.Policy

	// webhook configuration, per loop type
	Hooks cfg_hook.Config
}

func StartLoop(
	ctx context.Context,
	logger *log.Logger,
	db kdb.FactsDatabase,
	src source.Client,
	conf *configs.BackendConfig,
	manifest LoopManifest,
) error {
	switch manifest.Type {
	case kdb.Ingest:
		return StartIngestLoop(ctx, logger, db, src, conf, manifest)
	case kdb.Housekeeping:
		return StartHousekeepingLoop(ctx, logger, db, conf, manifest)
	default:
		return fmt.Errorf("%w: %s", kdb.ErrUnknownLoopType, manifest.Type)
	}
}

func StartIngestLoop(
	ctx context.Context,
	logger *log.Logger,
	db kdb.FactsDatabase,
	src source.Client,
	conf *configs.BackendConfig,
	manifest LoopManifest,
) error {
	l := byLogger(logger, Copied(), WithPrefix("[ingest loop]"))
	_, err := loop.Start(
		ctx, ingest.Seed(),
		monitor(
			l,
			ingest.Task(
				l, src,
				db.Facts(), db.Runs(), db.Keychain(),
				conf.Ingest().SimilarityThreshold(),
				hook.Build[apiruns.Detail](manifest.Hooks.Ingest),
			).Applied(manifest.Policy),
		),
	)
	return err
}

func StartHousekeepingLoop(
	ctx context.Context,
	logger *log.Logger,
	db kdb.FactsDatabase,
	conf *configs.BackendConfig,
	manifest LoopManifest,
) error {
	l := byLogger(logger, Copied(), WithPrefix("[housekeeping loop]"))
	_, err := loop.Start(
		ctx, housekeeping.Seed(),
		monitor(
			l,
			housekeeping.Task(
				l, db.Facts(),
				conf.Housekeeping().Retention(),
				hook.Build[housekeeping.Report](manifest.Hooks.Housekeeping),
			).Applied(manifest.Policy),
		),
	)
	return err
}
