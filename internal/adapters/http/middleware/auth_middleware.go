package middleware

import (
	"strings"

	"diu-alumnihub/internal/config"
	"diu-alumnihub/internal/core/domain"
	"diu-alumnihub/internal/pkg/jwt"
	"diu-alumnihub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware creates authentication middleware
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := extractToken(c)
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		c.Locals("userID", claims.UserID)
		c.Locals("email", claims.Email)
		c.Locals("roles", domain.RolesFromStrings(claims.Roles))

		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roles, ok := c.Locals("roles").(domain.RoleList)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		if roles.HasAny(allowedRoles...) {
			return c.Next()
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly allows admin and system_admin roles
func AdminOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleAdmin, domain.RoleSystemAdmin)
}

// FinanceOnly allows roles with financial authority
func FinanceOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleAdmin, domain.RoleSystemAdmin, domain.RoleAccountant)
}

// OptionalAuth sets user info if a valid token is present but never rejects
func OptionalAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := extractToken(c)
		if accessToken != "" {
			claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
			if err == nil {
				c.Locals("userID", claims.UserID)
				c.Locals("email", claims.Email)
				c.Locals("roles", domain.RolesFromStrings(claims.Roles))
			}
		}

		return c.Next()
	}
}

// extractToken reads the access token from cookie or Authorization header
func extractToken(c *fiber.Ctx) string {
	if token := c.Cookies("access_token"); token != "" {
		return token
	}

	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// UserID returns the authenticated user's ID from context
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}

// Roles returns the authenticated user's roles from context
func Roles(c *fiber.Ctx) domain.RoleList {
	roles, _ := c.Locals("roles").(domain.RoleList)
	return roles
}
