package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"ifcb/internal/modkit"
	"ifcb/internal/modkit/module"
	"ifcb/internal/modkit/repokit"
	"ifcb/internal/platform/config"
	"ifcb/internal/platform/logger"
	"ifcb/internal/platform/store"

	indexdom "ifcb/internal/services/index/domain"
	indexmod "ifcb/internal/services/index/module"
)

func main() {
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")

	logger.Init(logger.FromEnv())
	l := logger.Get()

	st, err := store.Open(context.Background(), store.Config{
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", true),
		},
		CH: store.CHConfig{
			Enabled: chCfg.MayBool("ENABLED", true),
			URL:     chCfg.MayString("DBURL", ""),
			Role:    "index",
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// fail fast when a backend is down rather than partway into a pass
	repokit.MustGuard(ctx, st)

	deps := modkit.Deps{
		Log: *l,
		Cfg: root,
		PG:  st.PG,
		CH:  st.CH,
	}

	idx := indexmod.New(deps)
	runner := module.MustPortsOf[indexdom.RunnerPort](idx)

	stats, err := runner.Run(ctx)
	if err != nil {
		l.Fatal().Err(err).Msg("index pass failed")
	}
	l.Info().
		Int("bins", stats.Bins).
		Int("targets", stats.Targets).
		Int("skipped", stats.Skipped).
		Msg("index pass complete")
}
