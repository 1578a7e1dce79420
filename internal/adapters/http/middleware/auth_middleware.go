package middleware

import (
	"errors"
	"strings"

	"sfms-backend/internal/config"
	"sfms-backend/internal/core/domain"
	"sfms-backend/internal/pkg/jwt"
	"sfms-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Context local keys set by AuthMiddleware
const (
	LocalUserID   = "userID"
	LocalUsername = "username"
	LocalRole     = "role"
)

// AuthMiddleware authenticates the bearer token and attaches the
// identity claims to the request context. Every verification failure
// short-circuits with 401; there is no anonymous fallthrough.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		authHeader := c.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			accessToken = strings.TrimPrefix(authHeader, "Bearer ")
		}

		// Cookie fallback for browser clients
		if accessToken == "" {
			accessToken = c.Cookies("access_token")
		}

		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := jwt.Validate(accessToken, cfg.JWT.Secret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalUsername, claims.Username)
		c.Locals(LocalRole, domain.Role(claims.Role))

		return c.Next()
	}
}

// RoleMiddleware gates a route on a declared allow-set. The caller
// must already be authenticated.
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(LocalRole).(domain.Role)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// SuperAdminOnly allows only the super_admin role
func SuperAdminOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleSuperAdmin)
}

// StaffOnly allows any elevated role
func StaffOnly() fiber.Handler {
	return RoleMiddleware(domain.StaffRoles...)
}

// TreasuryOnly allows the roles that manage money records
func TreasuryOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleTreasurer, domain.RoleSuperAdmin)
}
