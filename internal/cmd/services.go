package main

import (
	"database/sql"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/draftline/draftline/clients"
	"github.com/draftline/draftline/internal/draft/coordinator"
	"github.com/draftline/draftline/internal/draft/gateway"
	pickstore "github.com/draftline/draftline/internal/draft/pick"
	"github.com/draftline/draftline/internal/draft/queue"
	"github.com/draftline/draftline/internal/draft/state"
	"github.com/draftline/draftline/internal/notify"
	"github.com/draftline/draftline/internal/players"
	"github.com/draftline/draftline/internal/teams"
)

type services struct {
	coordinator *coordinator.Coordinator
	gateway     *gateway.Service
	natsConn    *nats.Conn
}

// setupServices wires the whole engine bottom-up: repositories over the
// database, apps over the repositories, the coordinator over everything.
func setupServices(cfg *Config, db *sql.DB) (*services, error) {
	clock := clockwork.NewRealClock()

	pickApp := pickstore.NewApp(pickstore.NewRepository(db))
	stateApp := state.NewApp(state.NewRepository(db), pickApp, clock)
	queueApp := queue.NewApp(queue.NewRepository(db))
	teamDir := teams.NewRepository(db)
	playerDir := players.NewRepository(db)

	tracker := clients.NewTrackerClient(cfg.Tracker.BaseURL, getEnv("TRACKER_API_KEY", ""))

	svcs := &services{}

	var publisher notify.Publisher
	if cfg.NATS.URL != "" {
		natsCfg := notify.DefaultNATSConfig()
		natsCfg.URL = cfg.NATS.URL
		natsCfg.SubjectPrefix = cfg.NATS.SubjectPrefix

		natsPub, err := notify.NewNATSPublisher(natsCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to set up NATS publisher: %w", err)
		}
		publisher = natsPub

		// The gateway consumes the same subjects over its own connection.
		nc, err := nats.Connect(cfg.NATS.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect gateway to NATS: %w", err)
		}
		svcs.natsConn = nc

		manager := gateway.NewConnectionManager()
		consumer := gateway.NewEventConsumer(nc, cfg.NATS.SubjectPrefix, manager)
		svcs.gateway = gateway.NewService(cfg.Gateway.Addr, manager, consumer)
	} else {
		log.Warn().Msg("no NATS url configured, events go to the log only")
		publisher = notify.NewLogPublisher(log.Logger)
	}

	svcs.coordinator = coordinator.NewCoordinator(
		pickApp, stateApp, teamDir, playerDir, queueApp, tracker, publisher,
		clock, cfg.leaseTTL())

	return svcs, nil
}
