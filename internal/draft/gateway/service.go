package gateway

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
)

// Service serves the websocket endpoint and runs the event consumer.
type Service struct {
	manager  *ConnectionManager
	consumer *EventConsumer
	server   *http.Server
}

func NewService(addr string, manager *ConnectionManager, consumer *EventConsumer) *Service {
	mux := http.NewServeMux()
	s := &Service{manager: manager, consumer: consumer}
	mux.HandleFunc("/ws/draft", s.handleDraftConnection)
	mux.HandleFunc("/ws/stats", s.handleStats)

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	}).Handler(mux)

	s.server = &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Service) handleDraftConnection(w http.ResponseWriter, r *http.Request) {
	season, err := strconv.Atoi(r.URL.Query().Get("season"))
	if err != nil {
		http.Error(w, "season is required", http.StatusBadRequest)
		return
	}

	if err := s.manager.UpgradeConnection(w, r, season); err != nil {
		log.Error().Err(err).Int("season", season).Msg("failed to upgrade websocket connection")
	}
}

func (s *Service) handleStats(w http.ResponseWriter, r *http.Request) {
	season, err := strconv.Atoi(r.URL.Query().Get("season"))
	if err != nil {
		http.Error(w, "season is required", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"season":%d,"connections":%d}`, season, s.manager.ConnectionCount(season))
}

// Start begins consuming events and serving websocket upgrades.
func (s *Service) Start() error {
	if err := s.consumer.Start(); err != nil {
		return err
	}
	log.Info().Str("addr", s.server.Addr).Msg("gateway listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("gateway server failed: %w", err)
	}
	return nil
}

// Shutdown stops the consumer and drains the server.
func (s *Service) Shutdown(ctx context.Context) error {
	if err := s.consumer.Stop(); err != nil {
		log.Warn().Err(err).Msg("failed to unsubscribe gateway consumer")
	}
	return s.server.Shutdown(ctx)
}
