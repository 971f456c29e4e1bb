package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vetstoria/k9facts/cmd/loops/recurring"
	configs "github.com/vetstoria/k9facts/pkg/configs/backend"
	cfg_hook "github.com/vetstoria/k9facts/pkg/configs/hook"
	kdb "github.com/vetstoria/k9facts/pkg/db"
	kpg "github.com/vetstoria/k9facts/pkg/db/postgres"
	"github.com/vetstoria/k9facts/pkg/etl/source"
	"github.com/vetstoria/k9facts/pkg/utils/args"
	"github.com/vetstoria/k9facts/pkg/utils/filewatch"
	"github.com/vetstoria/k9facts/pkg/utils/try"
)

func main() {
	logger := log.Default()
	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, os.Kill, syscall.SIGTERM,
	)
	// call cancel() when this function exits
	defer cancel()

	// define command line flags
	//-- path to config file
	pconfig := flag.String(
		"config", os.Getenv("K9FACTS_BACKEND_CONFIG"), "path to config file",
	)
	pSchemaRepo := flag.String(
		"schema-repo", os.Getenv("K9FACTS_SCHEMA"), "schema repository path",
	)
	phooks := flag.String(
		"hooks", os.Getenv("K9FACTS_HOOK_CONFIG"), "path to hook config file",
	)
	//-- which loop type to run
	loopType := args.Parser(kdb.AsLoopType)
	flag.Var(loopType, "type", "one of loop type (ingest|housekeeping)")
	//-- loop policy
	policy := args.Default[recurring.Policy](
		recurring.Forever(30*time.Second), recurring.ParsePolicy,
	)
	flag.Var(
		policy, "policy",
		`loop policy (syntax: forever[:COOLDOWN]|backlog).`+
			` "forever[:COOLDOWN]" = run forever until error. When backlog is over, `+
			`wait COOLDOWN (optional duration. default: 0) as inteval.`+
			` "backlog" = run until error or backlog is over.`,
	)
	// parse command line flags
	flag.Parse()

	{
		// watch config & hooks
		watched := []string{*pconfig}
		if *phooks != "" {
			watched = append(watched, *phooks)
		}
		wctx, cancel, err := filewatch.UntilModifyContext(ctx, watched...)
		if err != nil {
			logger.Fatal(err)
		}
		defer cancel()
		ctx = wctx
	}

	conf := try.To(configs.LoadBackendConfig(*pconfig)).OrFatal(logger)

	db := try.To(kpg.New(
		ctx, conf.Database(), kpg.WithSchemaRepository(*pSchemaRepo),
	)).OrFatal(logger)
	defer db.Close()

	{
		ctx_, ccan := db.Schema().Context(ctx)
		defer ccan()
		ctx = ctx_
	}

	hooks := cfg_hook.Config{}
	if hookPath := *phooks; hookPath != "" {
		hooks = try.To(cfg_hook.Load(hookPath)).OrFatal(logger)
	}

	src := source.New(
		conf.Source().URL(),
		source.WithTimeout(conf.Source().Timeout()),
	)

	logger.Printf(
		`start loop "%s" /w policy "%s"`,
		loopType.Value().String(), policy.Value().String(),
	)

	err := StartLoop(
		ctx, logger, db, src, conf,
		LoopManifest{
			Type:   loopType.Value(),
			Policy: recurring.UntilError(policy.Value()),
			Hooks:  hooks,
		},
	)

	if err == nil {
		return
	}
	if errors.Is(err, context.Canceled) {
		logger.Fatal(err, " (loop context is cancelled by: ", context.Cause(ctx), ")")
	}
	logger.Fatal(err)
}
