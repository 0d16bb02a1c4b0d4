package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Krushna-ai/GDVG/internal/lookup"
	"github.com/Krushna-ai/GDVG/internal/shared/response"
	"github.com/Krushna-ai/GDVG/pkg/jwt"
)

// Viewer is who is making the request. The zero value is an anonymous
// visitor.
type Viewer struct {
	Admin    bool
	Username string
}

// Scope is the lookup visibility this viewer is entitled to.
func (v Viewer) Scope() lookup.Scope {
	return lookup.Scope{IncludeHidden: v.Admin}
}

type viewerKey struct{}

// WithViewer returns a copy of ctx carrying v.
func WithViewer(ctx context.Context, v Viewer) context.Context {
	return context.WithValue(ctx, viewerKey{}, v)
}

// ViewerFromContext returns the viewer stored by Authenticate, or an
// anonymous viewer.
func ViewerFromContext(ctx context.Context) Viewer {
	v, _ := ctx.Value(viewerKey{}).(Viewer)
	return v
}

// ViewerFrom is ViewerFromContext for a gin request.
func ViewerFrom(c *gin.Context) Viewer {
	return ViewerFromContext(c.Request.Context())
}

// TokenValidator is the part of jwt.Manager the middleware needs.
type TokenValidator interface {
	ValidateAdminToken(token string) (*jwt.Claims, error)
}

// Authenticate resolves an optional bearer token into a Viewer. Requests
// without a usable token continue as anonymous; RequireAdmin decides
// whether that is acceptable.
func Authenticate(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer := Viewer{}

		if token, ok := bearerToken(c.GetHeader("Authorization")); ok {
			claims, err := tokens.ValidateAdminToken(token)
			if err != nil {
				log.Debug().
					Str("request_id", c.GetString(RequestIDKey)).
					Err(err).
					Msg("ignoring invalid bearer token")
			} else {
				viewer = Viewer{Admin: true, Username: claims.Subject}
			}
		}

		c.Request = c.Request.WithContext(WithViewer(c.Request.Context(), viewer))
		c.Next()
	}
}

// RequireAdmin rejects requests whose viewer is not an administrator.
// It must run after Authenticate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ViewerFrom(c).Admin {
			response.Unauthorized(c, "admin token required")
			c.Abort()
			return
		}
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
