// Package gateway fans draft events out to spectating websocket clients. It
// consumes the same NATS subjects the notification sink publishes to and
// carries no draft logic of its own.
package gateway

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const writeTimeout = 10 * time.Second

// ConnectionManager tracks live websocket connections grouped by season.
type ConnectionManager struct {
	upgrader websocket.Upgrader

	mu    sync.RWMutex
	conns map[int]map[*websocket.Conn]struct{}
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin policy is enforced by the CORS layer in front.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		conns: make(map[int]map[*websocket.Conn]struct{}),
	}
}

// UpgradeConnection upgrades an HTTP request and registers the connection
// under the given season until the peer goes away.
func (cm *ConnectionManager) UpgradeConnection(w http.ResponseWriter, r *http.Request, season int) error {
	conn, err := cm.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade connection: %w", err)
	}

	cm.register(season, conn)
	log.Info().Int("season", season).Str("remote", conn.RemoteAddr().String()).
		Msg("websocket client connected")

	// The gateway is broadcast-only; the read loop exists to notice closes.
	go func() {
		defer cm.unregister(season, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
	return nil
}

// Broadcast sends raw event bytes to every connection watching the season.
func (cm *ConnectionManager) Broadcast(season int, data []byte) {
	cm.mu.RLock()
	targets := make([]*websocket.Conn, 0, len(cm.conns[season]))
	for conn := range cm.conns[season] {
		targets = append(targets, conn)
	}
	cm.mu.RUnlock()

	for _, conn := range targets {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Warn().Err(err).Int("season", season).Msg("dropping dead websocket client")
			cm.unregister(season, conn)
		}
	}
}

// ConnectionCount reports the number of live connections for a season.
func (cm *ConnectionManager) ConnectionCount(season int) int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.conns[season])
}

func (cm *ConnectionManager) register(season int, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if cm.conns[season] == nil {
		cm.conns[season] = make(map[*websocket.Conn]struct{})
	}
	cm.conns[season][conn] = struct{}{}
}

func (cm *ConnectionManager) unregister(season int, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if _, ok := cm.conns[season][conn]; !ok {
		return
	}
	delete(cm.conns[season], conn)
	conn.Close()
}
