package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// The engine assumes exactly one process instance per draft: the selection
// lease is process-local. Run one of these per league.
func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	configPath := getEnv("CONFIG_PATH", "config.yaml")
	cfg, err := loadConfig(configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", configPath).Msg("failed to load config")
	}

	db, err := setupDatabase()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up database")
	}
	defer db.Close()

	svcs, err := setupServices(cfg, db)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to wire services")
	}

	if svcs.gateway != nil {
		go func() {
			if err := svcs.gateway.Start(); err != nil {
				log.Error().Err(err).Msg("gateway stopped")
			}
		}()
	}

	if st, err := svcs.coordinator.GetDraftState(context.Background(), cfg.Engine.Season); err != nil {
		log.Warn().Err(err).Int("season", cfg.Engine.Season).Msg("draft state not loaded yet")
	} else {
		log.Info().
			Int("season", st.Season).
			Str("phase", string(st.Phase)).
			Int("current_pick", st.CurrentPick).
			Msg("draft engine ready")
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	if svcs.gateway != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := svcs.gateway.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("gateway shutdown failed")
		}
	}
	if svcs.natsConn != nil {
		svcs.natsConn.Close()
	}
}
