// file: internals/features/users/model/password_reset_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// PasswordResetModel is a single-use reset token; one live row per user,
// upserted on every forgot-password request.
type PasswordResetModel struct {
	PasswordResetID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:password_reset_id" json:"password_reset_id"`
	PasswordResetUserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_password_resets_user;column:password_reset_user_id" json:"password_reset_user_id"`
	PasswordResetToken     string    `gorm:"type:text;not null;index:idx_password_resets_token;column:password_reset_token" json:"password_reset_token"`
	PasswordResetExpiresAt time.Time `gorm:"type:timestamptz;not null;column:password_reset_expires_at" json:"password_reset_expires_at"`
	PasswordResetUsed      bool      `gorm:"not null;default:false;column:password_reset_used" json:"password_reset_used"`

	PasswordResetCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:password_reset_created_at" json:"password_reset_created_at"`
	PasswordResetUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:password_reset_updated_at" json:"password_reset_updated_at"`
}

func (PasswordResetModel) TableName() string { return "password_resets" }
