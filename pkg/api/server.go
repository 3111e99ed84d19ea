package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/todos/pkg/auth"
	"github.com/platinummonkey/todos/pkg/middleware"
	"github.com/platinummonkey/todos/pkg/observability"
	"github.com/platinummonkey/todos/pkg/storage"
	"github.com/platinummonkey/todos/pkg/todos"
	"github.com/platinummonkey/todos/pkg/users"
)

// Server is the HTTP surface of the todos service. It wires the account
// and todo handlers behind the authentication guard and the ambient
// middleware chain.
type Server struct {
	handler http.Handler
	router  *mux.Router
}

// NewServer creates a fully wired server. metrics may be nil when metrics
// are disabled.
func NewServer(store storage.Store, hasher auth.Hasher, tokens *auth.TokenService, logger *observability.Logger, metrics *observability.Metrics) *Server {
	router := mux.NewRouter()

	guard := middleware.NewAuthMiddleware(tokens, store, metrics)

	userService := users.NewService(store, hasher, tokens)
	userHandlers := users.NewHandlers(userService, metrics)
	userHandlers.RegisterRoutes(router, guard.Handler)

	todoService := todos.NewService(store)
	todoHandlers := todos.NewHandlers(todoService, metrics)
	todoHandlers.RegisterRoutes(router, guard.Handler)

	health := observability.NewHealthChecker(store)
	router.HandleFunc("/healthz", health.Liveness).Methods("GET")
	router.HandleFunc("/readyz", health.Readiness).Methods("GET")
	if metrics != nil {
		router.Handle("/metrics", metrics.Handler()).Methods("GET")
	}

	// Route-aware middleware runs inside the router so the metrics path
	// label is the route template, not the raw URL.
	accessLog := logrus.New()
	accessLog.SetFormatter(&logrus.JSONFormatter{})
	router.Use(middleware.AccessLog(accessLog))
	if metrics != nil {
		router.Use(middleware.Metrics(metrics))
	}

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.ContextLogger(logger),
	)(router)

	return &Server{
		handler: handler,
		router:  router,
	}
}

// Router exposes the underlying router for tests
func (s *Server) Router() *mux.Router {
	return s.router
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}
