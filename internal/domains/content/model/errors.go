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

var (
	ErrContentNotFound = fmt.Errorf("content %w", lookup.ErrNotFound)
	ErrDuplicateSlug   = errors.New("content with this slug already exists")
	ErrInvalidID       = errors.New("invalid content id")
)

var contentErrorMap = map[error]struct {
	Status  int
	Code    string
	Message string
}{
	ErrContentNotFound: {Status: http.StatusNotFound, Code: "CONTENT_NOT_FOUND", Message: "Content not found"},
	ErrDuplicateSlug:   {Status: http.StatusConflict, Code: "DUPLICATE_SLUG", Message: "A content item with a similar title already exists"},
	ErrInvalidID:       {Status: http.StatusBadRequest, Code: "INVALID_ID", Message: "Content id must be a UUID"},
}

// HandleContentError writes the response for err and reports whether it
// did. Unknown errors become a logged 500.
func HandleContentError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.ValidationError(c, verrs)
		return true
	}

	for target, mapped := range contentErrorMap {
		if errors.Is(err, target) {
			response.ErrorResponse(c, mapped.Status, mapped.Code, mapped.Message)
			return true
		}
	}

	log.Error().
		Err(err).
		Str("request_id", c.GetString(middleware.RequestIDKey)).
		Str("path", c.Request.URL.Path).
		Msg("content request failed")
	response.InternalServerError(c, "Internal server error")
	return true
}
