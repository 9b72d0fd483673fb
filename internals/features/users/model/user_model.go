// file: internals/features/users/model/user_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserModel is a staff account (admin / principal / teacher / hod). The
// password column holds the bcrypt hash; API responses go through DTOs which
// never carry it, while backup serialization keeps it so a restore preserves
// credentials.
type UserModel struct {
	UserID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:user_id" json:"user_id"`
	UserSchoolID uuid.UUID `gorm:"type:uuid;not null;index:idx_users_school;column:user_school_id" json:"user_school_id"`

	UserFirstName string `gorm:"type:text;not null;column:user_first_name" json:"user_first_name"`
	UserLastName  string `gorm:"type:text;not null;column:user_last_name" json:"user_last_name"`
	UserEmail     string `gorm:"type:text;not null;uniqueIndex:ux_users_email;column:user_email" json:"user_email"`
	UserPassword  string `gorm:"type:text;not null;column:user_password" json:"user_password"`
	UserRole      string `gorm:"type:varchar(16);not null;column:user_role" json:"user_role"`

	UserSubjects datatypes.JSONType[[]string]    `gorm:"type:jsonb;column:user_subjects" json:"user_subjects"`
	UserClasses  datatypes.JSONType[[]uuid.UUID] `gorm:"type:jsonb;column:user_classes" json:"user_classes"`

	UserIsActive bool `gorm:"not null;default:true;column:user_is_active" json:"user_is_active"`

	UserCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:user_created_at" json:"user_created_at"`
	UserUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:user_updated_at" json:"user_updated_at"`
}

func (UserModel) TableName() string { return "users" }

func (m *UserModel) BeforeSave(tx *gorm.DB) error {
	m.UserEmail = strings.ToLower(strings.TrimSpace(m.UserEmail))
	m.UserFirstName = strings.TrimSpace(m.UserFirstName)
	m.UserLastName = strings.TrimSpace(m.UserLastName)
	return nil
}

// SetPassword hashes the plaintext with bcrypt cost 12, matching what the
// rest of the platform has always stored.
func (m *UserModel) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), 12)
	if err != nil {
		return err
	}
	m.UserPassword = string(hash)
	return nil
}

func (m *UserModel) ComparePassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(m.UserPassword), []byte(plain)) == nil
}
