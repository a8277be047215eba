package handler

import (
	"errors"
	"net/http"

	"github.com/dtroode/userdir/internal/model"
)

type messageResponse struct {
	Message string `json:"message"`
}

func (h *User) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		h.writeJSON(w, http.StatusNotFound, messageResponse{Message: "User not found"})
	default:
		h.writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "internal server error"})
	}
}
