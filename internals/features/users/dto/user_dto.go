// file: internals/features/users/dto/user_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"eduanalytics_backend/internals/features/users/model"
)

// RegisterRequest creates a school together with its first admin account.
type RegisterRequest struct {
	SchoolName       string `json:"school_name" validate:"required,min=2"`
	SchoolEmisNumber string `json:"school_emis_number" validate:"required,min=4"`
	SchoolProvince   string `json:"school_province" validate:"required"`
	SchoolDistrict   string `json:"school_district" validate:"required"`

	AdminFirstName string `json:"admin_first_name" validate:"required"`
	AdminLastName  string `json:"admin_last_name" validate:"required"`
	AdminEmail     string `json:"admin_email" validate:"required,email"`
	AdminPassword  string `json:"admin_password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type CreateUserRequest struct {
	FirstName string      `json:"first_name" validate:"required"`
	LastName  string      `json:"last_name" validate:"required"`
	Email     string      `json:"email" validate:"required,email"`
	Password  string      `json:"password" validate:"required,min=8"`
	Role      string      `json:"role" validate:"required,oneof=admin principal teacher hod"`
	Subjects  []string    `json:"subjects"`
	Classes   []uuid.UUID `json:"classes"`
}

type UpdateUserRequest struct {
	FirstName *string      `json:"first_name"`
	LastName  *string      `json:"last_name"`
	Role      *string      `json:"role" validate:"omitempty,oneof=admin principal teacher hod"`
	Subjects  *[]string    `json:"subjects"`
	Classes   *[]uuid.UUID `json:"classes"`
	IsActive  *bool        `json:"is_active"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// UserResponse is the API shape of a staff account. The password hash never
// leaves through here.
type UserResponse struct {
	UserID    uuid.UUID   `json:"user_id"`
	SchoolID  uuid.UUID   `json:"school_id"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Email     string      `json:"email"`
	Role      string      `json:"role"`
	Subjects  []string    `json:"subjects"`
	Classes   []uuid.UUID `json:"classes"`
	IsActive  bool        `json:"is_active"`
	CreatedAt time.Time   `json:"created_at"`
}

func FromUserModel(m *model.UserModel) UserResponse {
	return UserResponse{
		UserID:    m.UserID,
		SchoolID:  m.UserSchoolID,
		FirstName: m.UserFirstName,
		LastName:  m.UserLastName,
		Email:     m.UserEmail,
		Role:      m.UserRole,
		Subjects:  m.UserSubjects.Data(),
		Classes:   m.UserClasses.Data(),
		IsActive:  m.UserIsActive,
		CreatedAt: m.UserCreatedAt,
	}
}

func FromUserModels(ms []model.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromUserModel(&ms[i]))
	}
	return out
}
