package handlers

import (
	"sfms-backend/internal/adapters/http/middleware"
	"sfms-backend/internal/core/domain"

	"github.com/gofiber/fiber/v2"
)

// callerIdentity reads the identity attached by the auth middleware
func callerIdentity(c *fiber.Ctx) (uint, domain.Role, bool) {
	id, idOK := c.Locals(middleware.LocalUserID).(uint)
	role, roleOK := c.Locals(middleware.LocalRole).(domain.Role)
	return id, role, idOK && roleOK
}

// canActOn implements the self-or-elevated ownership rule: a member
// may only touch resources tied to their own id, staff roles may touch
// anyone's.
func canActOn(c *fiber.Ctx, targetID uint) bool {
	id, role, ok := callerIdentity(c)
	if !ok {
		return false
	}
	if role.IsStaff() {
		return true
	}
	return id == targetID
}
