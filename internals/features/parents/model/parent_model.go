// file: internals/features/parents/model/parent_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// StudentLink ties a parent to one student. The parent can see that
// student's data only after school staff flip is_verified.
type StudentLink struct {
	StudentID    uuid.UUID `json:"student_id"`
	Relationship string    `json:"relationship"`
	IsVerified   bool      `json:"is_verified"`
}

type NotificationPrefs struct {
	Email bool `json:"email"`
	SMS   bool `json:"sms"`
	Push  bool `json:"push"`
}

type ParentModel struct {
	ParentID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:parent_id" json:"parent_id"`
	ParentSchoolID uuid.UUID `gorm:"type:uuid;not null;index:idx_parents_school;column:parent_school_id" json:"parent_school_id"`

	ParentFirstName string `gorm:"type:text;not null;column:parent_first_name" json:"parent_first_name"`
	ParentLastName  string `gorm:"type:text;not null;column:parent_last_name" json:"parent_last_name"`
	ParentEmail     string `gorm:"type:text;not null;uniqueIndex:ux_parents_email;column:parent_email" json:"parent_email"`
	ParentPhone     string `gorm:"type:text;not null;column:parent_phone" json:"parent_phone"`
	ParentPassword  string `gorm:"type:text;not null;column:parent_password" json:"parent_password"`

	ParentStudents      datatypes.JSONType[[]StudentLink]      `gorm:"type:jsonb;column:parent_students" json:"parent_students"`
	ParentNotifications datatypes.JSONType[NotificationPrefs] `gorm:"type:jsonb;column:parent_notifications" json:"parent_notifications"`

	ParentLastLogin *time.Time `gorm:"type:timestamptz;column:parent_last_login" json:"parent_last_login,omitempty"`
	ParentIsActive  bool       `gorm:"not null;default:true;column:parent_is_active" json:"parent_is_active"`

	ParentCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:parent_created_at" json:"parent_created_at"`
	ParentUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:parent_updated_at" json:"parent_updated_at"`
}

func (ParentModel) TableName() string { return "parents" }

func (m *ParentModel) BeforeSave(tx *gorm.DB) error {
	m.ParentEmail = strings.ToLower(strings.TrimSpace(m.ParentEmail))
	m.ParentFirstName = strings.TrimSpace(m.ParentFirstName)
	m.ParentLastName = strings.TrimSpace(m.ParentLastName)
	return nil
}

func (m *ParentModel) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), 12)
	if err != nil {
		return err
	}
	m.ParentPassword = string(hash)
	return nil
}

func (m *ParentModel) ComparePassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(m.ParentPassword), []byte(plain)) == nil
}

// VerifiedLinks returns only the student links staff have approved.
func (m *ParentModel) VerifiedLinks() []StudentLink {
	var out []StudentLink
	for _, l := range m.ParentStudents.Data() {
		if l.IsVerified {
			out = append(out, l)
		}
	}
	return out
}

// HasVerifiedLink reports whether the parent may view the given student.
func (m *ParentModel) HasVerifiedLink(studentID uuid.UUID) bool {
	for _, l := range m.ParentStudents.Data() {
		if l.StudentID == studentID && l.IsVerified {
			return true
		}
	}
	return false
}
