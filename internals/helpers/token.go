// file: internals/helpers/token.go
package helper

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"eduanalytics_backend/internals/configs"
)

// SignStaffToken issues the JWT a staff member carries. Claims mirror what
// the auth middleware reads back into locals.
func SignStaffToken(cfg configs.JWTConfig, userID, schoolID uuid.UUID, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":   userID.String(),
		"school_id": schoolID.String(),
		"role":      role,
		"iss":       cfg.Issuer,
		"iat":       now.Unix(),
		"exp":       now.Add(cfg.ExpiresIn).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
}

// SignParentToken issues the parent-portal JWT. Parents never carry a role
// claim, which is what keeps them off staff routes.
func SignParentToken(cfg configs.JWTConfig, parentID, schoolID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"parent_id": parentID.String(),
		"school_id": schoolID.String(),
		"iss":       cfg.Issuer,
		"iat":       now.Unix(),
		"exp":       now.Add(cfg.ExpiresIn).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
}
