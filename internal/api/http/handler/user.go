package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dtroode/userdir/internal/logger"
	"github.com/dtroode/userdir/internal/model"
)

// UserService defines directory operations consumed by the HTTP layer.
type UserService interface {
	Create(ctx context.Context, name, email string) (model.User, bool, error)
	Get(ctx context.Context, email string) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

// User handles HTTP endpoints for the user directory.
type User struct {
	service UserService
	logger  *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(service UserService, logger *logger.Logger) *User {
	return &User{
		service: service,
		logger:  logger,
	}
}

type createUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type userResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type createResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

type getResponse struct {
	User userResponse `json:"user"`
}

type listResponse struct {
	Users []userResponse `json:"users"`
}

// Create handles POST /users/.
func (h *User) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, messageResponse{Message: "invalid request body"})
		return
	}
	if req.Name == "" || req.Email == "" {
		h.writeJSON(w, http.StatusBadRequest, messageResponse{Message: "name and email are required"})
		return
	}

	user, created, err := h.service.Create(r.Context(), req.Name, req.Email)
	if err != nil {
		h.logger.Error("User handler: create failed",
			"email", req.Email,
			"error", err.Error())
		h.handleError(w, err)
		return
	}

	message := "User already exists in database"
	if created {
		message = "User created"
	}

	h.writeJSON(w, http.StatusOK, createResponse{
		Message: message,
		User:    userResponse{Email: user.Email, Name: user.Name},
	})
}

// Get handles GET /users/{email}.
func (h *User) Get(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")

	user, err := h.service.Get(r.Context(), email)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			h.logger.Error("User handler: get failed",
				"email", email,
				"error", err.Error())
		}
		h.handleError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, getResponse{
		User: userResponse{Email: user.Email, Name: user.Name},
	})
}

// List handles GET /users.
func (h *User) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("User handler: list failed",
			"error", err.Error())
		h.handleError(w, err)
		return
	}

	resp := listResponse{Users: make([]userResponse, 0, len(users))}
	for _, u := range users {
		resp.Users = append(resp.Users, userResponse{Email: u.Email, Name: u.Name})
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *User) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("User handler: failed to encode response",
			"error", err.Error())
	}
}
