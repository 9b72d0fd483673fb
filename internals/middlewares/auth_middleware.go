// file: internals/middlewares/auth_middleware.go
package middlewares

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"eduanalytics_backend/internals/configs"
	helper "eduanalytics_backend/internals/helpers"
)

func extractBearerToken(c *fiber.Ctx) (string, error) {
	auth := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer ")), nil
	}
	if cookie := c.Cookies("token"); cookie != "" {
		return cookie, nil
	}
	return "", fiber.NewError(fiber.StatusUnauthorized, "Missing authorization token")
}

func parseClaims(tokenString, secret string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func claimString(claims jwt.MapClaims, key string) string {
	v, _ := claims[key].(string)
	return v
}

// StaffAuth validates a staff JWT and stores user_id, school_id and role in
// locals for downstream handlers.
func StaffAuth(cfg configs.JWTConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return err
		}

		claims, err := parseClaims(tokenString, cfg.Secret)
		if err != nil {
			log.Printf("[AUTH] token parse failed: %v", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
		}

		userID := claimString(claims, "user_id")
		schoolID := claimString(claims, "school_id")
		if userID == "" || schoolID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
		}

		c.Locals(helper.LocalsUserID, userID)
		c.Locals(helper.LocalsSchoolID, schoolID)
		c.Locals(helper.LocalsRole, claimString(claims, "role"))
		return c.Next()
	}
}

// ParentAuth validates a parent JWT (separate audience from staff tokens).
func ParentAuth(cfg configs.JWTConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return err
		}

		claims, err := parseClaims(tokenString, cfg.Secret)
		if err != nil {
			log.Printf("[AUTH] parent token parse failed: %v", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
		}

		parentID := claimString(claims, "parent_id")
		if parentID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
		}

		c.Locals(helper.LocalsParentID, parentID)
		if schoolID := claimString(claims, "school_id"); schoolID != "" {
			c.Locals(helper.LocalsSchoolID, schoolID)
		}
		return c.Next()
	}
}

// RequireRoles rejects the request unless the authenticated staff role is one
// of the given roles. Must run after StaffAuth.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := helper.GetRole(c)
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "Insufficient role for this resource")
	}
}
