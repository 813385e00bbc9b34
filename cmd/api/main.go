package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "offmarket_estates/internal/adapters/http_server"
	"offmarket_estates/internal/adapters/objstore"
	"offmarket_estates/internal/adapters/observability"
	redisad "offmarket_estates/internal/adapters/redis"
	"offmarket_estates/internal/adapters/relay"
	"offmarket_estates/internal/app"
	"offmarket_estates/internal/routes"
	"offmarket_estates/internal/shared"
	mysqlrepo "offmarket_estates/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	relayClient, err := relay.New(cfg.RelayURL, cfg.RelayRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize relay client")
	}
	store := objstore.New(cfg.StorageBase)

	q := app.NewQueryService(repo, cache, cfg.CacheTTL)
	leads := app.NewLeadService(repo, cache, relayClient, cfg.SubmitTTL)
	contracts := app.NewContractService(repo, store, cfg.Bucket)
	resolver := routes.NewResolver(routes.DefaultSlugTable())

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Q:            q,
		Leads:        leads,
		Contracts:    contracts,
		LeadRepo:     repo,
		ProfileRepo:  repo,
		PropertyRepo: repo,
		Resolver:     resolver,
		Catalog:      routes.DefaultCatalog(),
		SiteURL:      cfg.SiteURL,
	})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
