package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"petskub/internal/lineauth"
	"petskub/internal/share"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Server struct {
	resolver *share.Resolver
	bridge   *lineauth.Bridge
	logger   *zap.Logger
	router   *mux.Router
	server   *http.Server
}

func NewServer(resolver *share.Resolver, bridge *lineauth.Bridge, logger *zap.Logger) *Server {
	s := &Server{
		resolver: resolver,
		bridge:   bridge,
		logger:   logger,
		router:   mux.NewRouter(),
	}
	s.routes()
	s.server = &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	return s
}

func (s *Server) routes() {
	s.router.Use(s.requestLogging)

	s.router.HandleFunc("/share/article", s.handleShareArticle).Methods(http.MethodGet, http.MethodHead)
	// Method dispatch happens in the handler so CORS headers go on every reply.
	s.router.HandleFunc("/api/line-oauth-callback", s.handleLineCallback)

	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
}

// ServeHTTP lets the server be mounted or exercised directly in tests.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start listens on addr and serves until Stop is called.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	s.logger.Info("Web server listening", zap.String("addr", ln.Addr().String()))
	return s.server.Serve(ln)
}

// Stop gracefully shuts down
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, "ok")
}
