package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/proptraka/backend/internal/infrastructure/auth"
	"github.com/proptraka/backend/internal/infrastructure/logger"
	"github.com/proptraka/backend/internal/interfaces/http/dto"
)

// Context keys for values extracted from the access token
const (
	JWTClaimsKey     = "jwt_claims"
	JWTLandlordIDKey = "jwt_landlord_id"
	JWTEmailKey      = "jwt_email"
)

// JWTConfig holds JWT middleware configuration
type JWTConfig struct {
	JWTService *auth.JWTService
	Blacklist  auth.TokenBlacklist
	// SkipPaths are exact paths that bypass authentication
	SkipPaths []string
	// SkipPathPrefixes are path prefixes that bypass authentication
	SkipPathPrefixes []string
}

// JWT returns a middleware that validates Bearer access tokens and puts the
// landlord scope on the request context. Every authenticated handler reads
// the landlord ID from here rather than from request input.
func JWT(cfg JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		for _, skip := range cfg.SkipPaths {
			if path == skip {
				c.Next()
				return
			}
		}
		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		tokenString := extractBearerToken(c)
		if tokenString == "" {
			handleAuthError(c, dto.ErrCodeUnauthorized, "missing authorization token")
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(tokenString)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				handleAuthError(c, dto.ErrCodeTokenExpired, "access token has expired")
			case errors.Is(err, auth.ErrTokenNotYetValid):
				handleAuthError(c, dto.ErrCodeTokenInvalid, "token is not yet valid")
			case errors.Is(err, auth.ErrInvalidTokenType):
				handleAuthError(c, dto.ErrCodeTokenInvalid, "wrong token type for this endpoint")
			default:
				handleAuthError(c, dto.ErrCodeTokenInvalid, "invalid authorization token")
			}
			return
		}

		if cfg.Blacklist != nil {
			if revoked, berr := cfg.Blacklist.IsBlacklisted(c.Request.Context(), claims.ID); berr == nil && revoked {
				handleAuthError(c, dto.ErrCodeTokenInvalid, "token has been revoked")
				return
			}
			// Password changes invalidate every token issued before the change
			if claims.IssuedAt != nil {
				invalidated, berr := cfg.Blacklist.IsLandlordTokenInvalidated(c.Request.Context(), claims.LandlordID, claims.IssuedAt.Time)
				if berr == nil && invalidated {
					handleAuthError(c, dto.ErrCodeTokenInvalid, "token has been revoked")
					return
				}
			}
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTLandlordIDKey, claims.LandlordID)
		c.Set(JWTEmailKey, claims.Email)

		// Stamp the landlord onto the request-scoped logger
		reqLogger := logger.GetGinLogger(c)
		ctx, reqLogger := logger.WithLandlordID(c.Request.Context(), reqLogger, claims.LandlordID)
		c.Request = c.Request.WithContext(ctx)
		c.Set("logger", reqLogger)

		c.Next()
	}
}

func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func handleAuthError(c *gin.Context, code, message string) {
	requestID := c.GetString("request_id")
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(code, message, requestID))
}

// GetJWTClaims returns the validated claims set by the JWT middleware.
func GetJWTClaims(c *gin.Context) (*auth.Claims, bool) {
	value, exists := c.Get(JWTClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}

// GetJWTLandlordID returns the landlord ID from the validated token.
func GetJWTLandlordID(c *gin.Context) (string, bool) {
	value, exists := c.Get(JWTLandlordIDKey)
	if !exists {
		return "", false
	}
	id, ok := value.(string)
	return id, ok && id != ""
}
