// README: HTTP helper utilities for JSON and error mapping.
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"carona/internal/modules/user"
	"carona/internal/session"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(c *gin.Context, status int, msg string) {
	c.JSON(status, errorResponse{Error: msg})
}

func writeSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrValidation):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, session.ErrInvalidState),
		errors.Is(err, session.ErrPaymentRequired),
		errors.Is(err, session.ErrAlreadyRated),
		errors.Is(err, user.ErrRoleAlreadySet),
		errors.Is(err, user.ErrVehicleAlreadySet):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, user.ErrBadRequest), errors.Is(err, user.ErrUnknownRole):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, user.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
