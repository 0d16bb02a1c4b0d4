package model

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"github.com/Krushna-ai/GDVG/internal/lookup"
	"github.com/Krushna-ai/GDVG/internal/shared/middleware"
	"github.com/Krushna-ai/GDVG/internal/shared/response"
)

var ErrPersonNotFound = fmt.Errorf("person %w", lookup.ErrNotFound)

func HandlePersonError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		response.ValidationError(c, verrs)
	case errors.Is(err, ErrPersonNotFound):
		response.ErrorResponse(c, http.StatusNotFound, "PERSON_NOT_FOUND", "Person not found")
	default:
		log.Error().
			Err(err).
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Msg("person request failed")
		response.InternalServerError(c, "Internal server error")
	}
	return true
}
