package model

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"github.com/Krushna-ai/GDVG/internal/shared/middleware"
	"github.com/Krushna-ai/GDVG/internal/shared/response"
)

var (
	ErrAdminNotFound      = errors.New("admin not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
)

func HandleAdminError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		response.ValidationError(c, verrs)
	case errors.Is(err, ErrInvalidCredentials):
		response.Unauthorized(c, "Invalid username or password")
	case errors.Is(err, ErrTooManyAttempts):
		response.ErrorResponse(c, http.StatusTooManyRequests, "TOO_MANY_ATTEMPTS", "Too many failed attempts, try again later")
	default:
		log.Error().
			Err(err).
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Msg("admin request failed")
		response.InternalServerError(c, "Internal server error")
	}
	return true
}
