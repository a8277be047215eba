// Package router wires the user handlers and middleware into an
// http.Handler.
package router

import (
	"net/http"

	"github.com/dtroode/userdir/internal/api/http/handler"
	"github.com/dtroode/userdir/internal/api/http/middleware"
	"github.com/dtroode/userdir/internal/logger"
)

// Router registers HTTP routes for the user directory.
type Router struct {
	userService handler.UserService
	logger      *logger.Logger
}

// New creates a new Router instance.
func New(userService handler.UserService, logger *logger.Logger) *Router {
	return &Router{
		userService: userService,
		logger:      logger,
	}
}

// Register builds the route table and wraps it with request-ID and
// logging middleware.
func (r *Router) Register() http.Handler {
	h := handler.NewUser(r.userService, r.logger)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /users/{$}", h.Create)
	mux.HandleFunc("GET /users", h.List)
	mux.HandleFunc("GET /users/{email}", h.Get)

	logging := middleware.NewLogging(r.logger)

	return middleware.RequestID(logging.Handle(mux))
}
