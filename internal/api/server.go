package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/ThePuug/unnamed-hex-tile-mmo-sub003/internal/game"

	"github.com/go-chi/chi/v5"
)

// Server is the HTTP API server with WebSocket support.
// It combines the HTTP router with the WebSocket hub for real-time combat
// messages.
type Server struct {
	engine      *game.Engine
	router      *chi.Mux
	wsHub       *WebSocketHub
	rateLimiter *IPRateLimiter
}

// NewServer creates a new API server with default production configuration.
//
// IMPORTANT: Background workers do NOT start until Start() is called.
// This enables testing by allowing the server to be constructed without
// starting goroutines or opening network listeners.
//
// For testing HTTP endpoints without WebSocket support, use NewRouter() directly.
func NewServer(engine *game.Engine) *Server {
	s := &Server{
		engine: engine,
		wsHub:  NewWebSocketHub(),
	}

	// Create rate limiter (we track it for potential cleanup)
	s.rateLimiter = NewIPRateLimiter(DefaultRateLimitConfig)

	// Build router using the factory
	s.router = NewRouter(RouterConfig{
		Engine:      engine,
		RateLimiter: s.rateLimiter,
	})

	// The hello message anchors client countdown prediction to the engine
	// clock.
	s.wsHub.SetHello(func() interface{} {
		snap := engine.GetSnapshot()
		return map[string]interface{}{
			"serverClockMs": engine.Clock().Milliseconds(),
			"tickNumber":    snap.TickNumber,
		}
	})

	// Add WebSocket routes (these need the wsHub instance)
	s.setupWebSocketRoutes()

	return s
}

// setupWebSocketRoutes adds WebSocket-specific routes to the router.
// These routes need access to the wsHub instance, so they can't be
// part of the generic NewRouter factory.
func (s *Server) setupWebSocketRoutes() {
	s.router.Get("/ws", s.handleWS)
}

// Start begins the HTTP server AND starts background workers.
// This is the ONLY method that starts goroutines or opens network listeners.
//
// Call this method only once. To stop the server, signal the process.
func (s *Server) Start(addr string) error {
	// Start background workers NOW, not in constructor
	// This is critical for testability - tests can construct the server
	// and use Router() without these workers running.
	go s.wsHub.Run()
	s.wsHub.StartBroadcastLoop(s.engine)

	// Combat events fan out to clients the moment they happen. The sink runs
	// under the engine lock, so it only does a non-blocking channel send.
	s.engine.SetEventSink(func(ev game.Event) {
		s.wsHub.BroadcastEvent(ev)
		if ev.Type == game.EventTypeThreatResolved {
			var p game.ThreatResolvedPayload
			if err := json.Unmarshal(ev.Payload, &p); err == nil {
				RecordThreatResolved(p.Cause)
			}
		}
	})
	s.engine.SetTickObserver(RecordTick)

	// Gauge poll loop: cheap snapshot reads, no engine lock contention.
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for range ticker.C {
			snap := s.engine.GetSnapshot()
			UpdateActorCount(snap.ActorCount)
			UpdatePendingThreats(snap.PendingThreats)
			if stats := s.engine.GetEventLogStats(); stats != nil {
				if pending, ok := stats["pending"].(uint64); ok {
					UpdateEventLogPending(pending)
				}
			}
		}
	}()

	log.Printf("🌐 API server starting on %s", addr)

	return http.ListenAndServe(addr, s.router)
}

// Router returns the HTTP handler for use with httptest.
// Use this in integration tests instead of calling Start().
//
// Example:
//
//	server := api.NewServer(engine)
//	ts := httptest.NewServer(server.Router())
//	defer ts.Close()
//	resp, _ := http.Get(ts.URL + "/api/state")
func (s *Server) Router() http.Handler {
	return s.router
}

// Stop performs graceful shutdown of background workers.
// Call this before process exit to ensure clean cleanup.
func (s *Server) Stop() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	// Note: WebSocket hub doesn't have a Stop method yet,
	// connections will be closed when the process exits.
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	s.wsHub.HandleWebSocket(w, r)
}
