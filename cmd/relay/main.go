package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"offmarket_estates/internal/adapters/observability"
	redisad "offmarket_estates/internal/adapters/redis"
	"offmarket_estates/internal/adapters/relay"
	"offmarket_estates/internal/app"
	"offmarket_estates/internal/shared"
	mysqlrepo "offmarket_estates/internal/storage/mysql"
)

// batchSize bounds one drain pass; the worker runs under cron, leftovers
// wait for the next pass.
const batchSize = 200

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("relay", cfg.RelayURL).
		Int("workers", cfg.Workers).
		Msg("relay worker starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	client, err := relay.New(cfg.RelayURL, cfg.RelayRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize relay client")
	}
	leads := app.NewLeadService(repo, cache, client, cfg.SubmitTTL)

	pending, err := leads.ListUnrelayed(ctx, batchSize)
	if err != nil {
		log.Fatal().Err(err).Msg("listing unrelayed leads failed")
	}
	log.Info().Int("pending", len(pending)).Msg("draining")

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for _, l := range pending {
		l := l

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, int64(1)); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(int64(1))

			if err := leads.RelayPending(ctx, l.ID, l); err != nil {
				log.Warn().Int64("lead", l.ID).Err(err).Msg("relay failed")
				return
			}
			log.Info().Int64("lead", l.ID).Msg("relayed")
		}()
	}

	wg.Wait()
	log.Info().Msg("drain completed")
}
