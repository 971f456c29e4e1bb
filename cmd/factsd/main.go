package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/vetstoria/k9facts/pkg/auth"
	"github.com/vetstoria/k9facts/pkg/auth/key"
	kcf "github.com/vetstoria/k9facts/pkg/configs/frontend"
	kdb "github.com/vetstoria/k9facts/pkg/db"
	kpg "github.com/vetstoria/k9facts/pkg/db/postgres"
	"github.com/vetstoria/k9facts/pkg/utils/echoutil"
	"github.com/vetstoria/k9facts/pkg/utils/filewatch"

	"github.com/vetstoria/k9facts/cmd/factsd/handlers"
)

func main() {

	configPath := flag.String(
		"config-path", os.Getenv("K9FACTS_FRONTEND_CONFIG"), "frontend config path",
	)
	schemaRepo := flag.String("schema-repo", "", "path to schema repository directory")
	loglevel := flag.String("loglevel", "info", "log level. debug|info|warn|error|off")
	pcert := flag.String("cert", "", "certification file for TLS")
	pkey := flag.String("certkey", "", "key of certification file for TLS")
	flag.Parse()

	e := echo.New()
	e.Pre(middleware.AddTrailingSlash())

	// set log
	echoutil.SetLevel(e, *loglevel)
	e.HTTPErrorHandler = func(err error, ctx echo.Context) {
		e.DefaultHTTPErrorHandler(err, ctx)
		e.Logger.Error(err)
	}
	e.Use(echoutil.LogHandlerFunc)

	shutdown := func(reason string) {
		log.Println(reason)
		graceful, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := e.Shutdown(graceful); err != nil {
			log.Printf("error on shutdown: %s", err)
		}
	}

	// read configfile
	conf, err := kcf.LoadFrontendConfig(*configPath)
	if err != nil {
		log.Fatalf("can not read configration: %s", err)
	}

	tokenTTL, err := time.ParseDuration(conf.TokenTTL)
	if err != nil {
		log.Fatalf("tokenTTL in configration can not be parsed: %s", err)
	}

	{
		ctx, cancel, err := filewatch.UntilModifyContext(context.Background(), *configPath)
		if err != nil {
			log.Fatalf("can not watch configration: %s", err)
		}
		defer cancel()
		context.AfterFunc(ctx, func() {
			shutdown("config file is updated. quit to restart server.")
		})
	}

	// get dbaccesor
	ctx := context.Background()
	db, err := getDBAccesor(ctx, conf.DBURI, *schemaRepo)
	if err != nil {
		log.Fatalf("can not connect to database: %s", err.Error())
	}
	defer db.Close()

	{
		// quit when the schema repository outruns the database.
		sctx, scancel := db.Schema().Context(ctx)
		defer scancel()
		context.AfterFunc(sctx, func() {
			shutdown("schema version mismatch. quit to wait for an upgrade.")
		})
	}

	// keys to sign api tokens. tokens do not survive restart.
	keychain := auth.NewKeychain()
	{
		k, err := key.HS256(24*time.Hour, 32).Issue()
		if err != nil {
			log.Fatalf("can not issue signing key: %s", err)
		}
		keychain.Set("boot", k)
	}

	// handlers
	{
		e.GET("/api/facts/", handlers.FindFactHandler(db.Facts()))
		e.GET("/api/facts/:factid/", handlers.GetFactHandler(db.Facts(), "factid"))
		e.DELETE(
			"/api/facts/:factid/",
			handlers.DeleteFactHandler(db.Facts(), "factid"),
			handlers.TokenAuthMiddleware(keychain),
		)
	}

	{
		e.GET("/api/runs/", handlers.FindRunHandler(db.Runs()))
		e.GET("/api/runs/:runid/", handlers.GetRunHandler(db.Runs(), "runid"))
	}

	{
		e.GET("/api/health/", handlers.HealthHandler(db.Schema()))
		e.POST("/api/auth/token/", handlers.AuthTokenHandler(
			conf.AdminUser, conf.AdminPassword, keychain, tokenTTL,
		))
	}

	log.Println("registred routes:")
	for _, r := range e.Routes() {
		log.Println(r.Method, r.Path)
	}

	cert, certkey := *pcert, *pkey
	if cert != "" && certkey != "" {
		e.Logger.Fatal(e.StartTLS(":"+conf.ServerPort, cert, certkey))
	} else {
		e.Logger.Fatal(e.Start(":" + conf.ServerPort))
	}
}

func getDBAccesor(ctx context.Context, dburi string, schemaRepo string) (kdb.FactsDatabase, error) {
	options := []kpg.Option{}
	if schemaRepo != "" {
		options = append(options, kpg.WithSchemaRepository(schemaRepo))
	}
	return kpg.New(ctx, dburi, options...)
}
