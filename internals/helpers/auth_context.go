// file: internals/helpers/auth_context.go
package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals keys written by the auth middlewares.
const (
	LocalsUserID   = "user_id"
	LocalsSchoolID = "school_id"
	LocalsRole     = "role"
	LocalsParentID = "parent_id"
)

var ErrNoAuthContext = errors.New("missing auth context")

func localUUID(c *fiber.Ctx, key string) (uuid.UUID, error) {
	raw, _ := c.Locals(key).(string)
	if raw == "" {
		return uuid.Nil, ErrNoAuthContext
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrNoAuthContext
	}
	return id, nil
}

func GetUserID(c *fiber.Ctx) (uuid.UUID, error)   { return localUUID(c, LocalsUserID) }
func GetSchoolID(c *fiber.Ctx) (uuid.UUID, error) { return localUUID(c, LocalsSchoolID) }
func GetParentID(c *fiber.Ctx) (uuid.UUID, error) { return localUUID(c, LocalsParentID) }

func GetRole(c *fiber.Ctx) string {
	role, _ := c.Locals(LocalsRole).(string)
	return role
}
