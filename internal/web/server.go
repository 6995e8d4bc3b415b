// Package web serves the optional ops surface next to the game port: a
// read-only spectator websocket, a health check, and session counters.
// It shares nothing with the turn loop beyond the metrics struct and
// the snapshot tap.
package web

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"unoserver/internal/protocol"
	"unoserver/internal/session"
)

func protocolStateBytes(snap *protocol.GameSnapshot) ([]byte, error) {
	return json.Marshal(protocol.State(snap))
}

// Server is the HTTP listener for /watch, /healthz and /metrics.
type Server struct {
	log     *zap.SugaredLogger
	feed    *Feed
	metrics *session.Metrics
}

func NewServer(log *zap.SugaredLogger, feed *Feed, metrics *session.Metrics) *Server {
	return &Server{log: log, feed: feed, metrics: metrics}
}

// Start serves in the background. Errors other than a clean shutdown
// are logged, never fatal: the game session does not depend on this
// listener.
func (s *Server) Start(addr string) {
	router := httprouter.New()
	router.HandlerFunc(http.MethodGet, "/watch", s.feed.handleWatch)
	router.HandlerFunc(http.MethodGet, "/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	router.HandlerFunc(http.MethodGet, "/metrics", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(s.metrics.Snapshot())
	})

	srv := &http.Server{Addr: addr, Handler: router}
	go func() {
		s.log.Infow("ops listener up", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Warnw("ops listener failed", "addr", addr, "err", err)
		}
	}()
}
