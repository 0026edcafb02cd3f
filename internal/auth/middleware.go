package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID = "user_id"
	ctxGymID  = "gym_id"
	ctxEmail  = "user_email"
	ctxRole   = "user_role"
)

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"message": message})
}

// AuthMiddleware accepts only access tokens scoped to a gym.
func AuthMiddleware(accessTokenSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) != "Bearer" {
			abort(c, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			abort(c, http.StatusUnauthorized, "Token is empty")
			return
		}

		claims, err := ValidateToken(tokenString, accessTokenSecret)
		if err != nil {
			switch {
			case errors.Is(err, ErrTokenExpired):
				abort(c, http.StatusUnauthorized, "Token expired")
			default:
				abort(c, http.StatusUnauthorized, "Invalid or malformed token")
			}
			return
		}

		if claims.TokenType != tokenTypeAccess {
			abort(c, http.StatusUnauthorized, "Access token required")
			return
		}

		if claims.GymID <= 0 {
			abort(c, http.StatusUnauthorized, ErrMissingGym.Error())
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxGymID, claims.GymID)
		c.Set(ctxEmail, claims.Email)
		c.Set(ctxRole, claims.Role)

		c.Next()
	}
}

// RequireRole lets the request through when the caller holds any of roles.
func RequireRole(roles ...Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(ctxRole)
		if !exists {
			abort(c, http.StatusUnauthorized, "User role not found")
			return
		}

		role, ok := value.(Role)
		if !ok {
			abort(c, http.StatusUnauthorized, "Invalid role type")
			return
		}

		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}

		abort(c, http.StatusForbidden, "Insufficient permissions")
	}
}

func GetUserID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(ctxUserID)
	if !exists {
		return 0, false
	}
	id, ok := value.(int64)
	return id, ok
}

func GetGymID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(ctxGymID)
	if !exists {
		return 0, false
	}
	id, ok := value.(int64)
	return id, ok && id > 0
}

// RequireGymID returns the caller's gym id, or aborts with 401 when the
// request carries none.
func RequireGymID(c *gin.Context) (int64, bool) {
	gymID, ok := GetGymID(c)
	if !ok {
		abort(c, http.StatusUnauthorized, ErrMissingGym.Error())
	}
	return gymID, ok
}
