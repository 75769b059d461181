package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/distribops/backend/internal/domain/identity"
	"github.com/distribops/backend/internal/infrastructure/auth"
	"github.com/distribops/backend/internal/infrastructure/logger"
	"github.com/distribops/backend/internal/interfaces/http/dto"
)

// Auth context keys
const (
	ActorKey      = "auth_actor"
	ClaimsKey     = "auth_claims"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// AuthConfig holds configuration for the authentication middleware
type AuthConfig struct {
	JWTService *auth.JWTService
	// Blacklist is optional; when set, revoked tokens are rejected
	Blacklist auth.TokenBlacklist
	// SkipPaths bypass authentication (health checks)
	SkipPaths []string
	Logger    *zap.Logger
}

// DefaultAuthConfig returns the standard auth middleware configuration
func DefaultAuthConfig(jwtService *auth.JWTService) AuthConfig {
	return AuthConfig{
		JWTService: jwtService,
		SkipPaths:  []string{"/health", "/ready"},
	}
}

// Auth validates the bearer token and places the authorized actor in the
// request context. Everything behind it can assume an Actor is present.
func Auth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skip := range cfg.SkipPaths {
			if path == skip {
				c.Next()
				return
			}
		}

		header := c.GetHeader(AuthHeaderKey)
		if !strings.HasPrefix(header, BearerPrefix) {
			abortUnauthorized(c, cfg, auth.ErrInvalidToken, "Missing bearer token")
			return
		}
		tokenString := strings.TrimPrefix(header, BearerPrefix)
		if tokenString == "" {
			abortUnauthorized(c, cfg, auth.ErrInvalidToken, "Missing bearer token")
			return
		}

		claims, err := cfg.JWTService.ValidateToken(tokenString)
		if err != nil {
			abortUnauthorized(c, cfg, err, "Token validation failed")
			return
		}

		if cfg.Blacklist != nil && claims.ID != "" {
			revoked, err := cfg.Blacklist.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				// Fail open: availability beats revocation strictness here
				if cfg.Logger != nil {
					cfg.Logger.Error("token revocation check failed",
						zap.String("jti", claims.ID),
						zap.Error(err))
				}
			} else if revoked {
				abortUnauthorized(c, cfg, auth.ErrTokenRevoked, "Token has been revoked")
				return
			}
		}

		actor, err := claims.Actor()
		if err != nil {
			abortUnauthorized(c, cfg, err, "Malformed claims")
			return
		}

		c.Set(ActorKey, actor)
		c.Set(ClaimsKey, claims)

		ctx := c.Request.Context()
		log := logger.FromContext(ctx)
		ctx, log = logger.WithUserID(ctx, log, actor.ID.String())
		ctx, _ = logger.WithRole(ctx, log, actor.Role.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, cfg AuthConfig, err error, message string) {
	if cfg.Logger != nil {
		cfg.Logger.Warn("authentication failed",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
	}

	code := dto.CodeUnauthorized
	switch err {
	case auth.ErrExpiredToken:
		message = "Token has expired"
	case auth.ErrTokenRevoked:
		message = "Token has been revoked"
	case auth.ErrUnknownRole:
		message = "Token carries an unknown role"
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, message, c.GetString("request_id")))
}

// GetActor retrieves the authorized actor from the gin context
func GetActor(c *gin.Context) (identity.Actor, bool) {
	value, exists := c.Get(ActorKey)
	if !exists {
		return identity.Actor{}, false
	}
	actor, ok := value.(identity.Actor)
	return actor, ok
}

// GetClaims retrieves the validated JWT claims from the gin context
func GetClaims(c *gin.Context) *auth.Claims {
	if value, exists := c.Get(ClaimsKey); exists {
		if claims, ok := value.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}
