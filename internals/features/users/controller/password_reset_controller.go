// file: internals/features/users/controller/password_reset_controller.go
package controller

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"eduanalytics_backend/internals/constants"
	auditService "eduanalytics_backend/internals/features/auditlog/service"
	"eduanalytics_backend/internals/features/users/dto"
	"eduanalytics_backend/internals/features/users/model"
	helper "eduanalytics_backend/internals/helpers"
	"eduanalytics_backend/internals/services/email"
)

const resetTokenTTL = time.Hour

type PasswordResetController struct {
	DB          *gorm.DB
	Validator   *validator.Validate
	Email       email.Service
	FrontendURL string
}

func NewPasswordResetController(db *gorm.DB, v *validator.Validate, mail email.Service, frontendURL string) *PasswordResetController {
	return &PasswordResetController{DB: db, Validator: v, Email: mail, FrontendURL: frontendURL}
}

// Forgot issues a single-use reset token and emails it. The response is the
// same whether or not the address exists, so the endpoint cannot be used to
// probe for accounts.
func (ctl *PasswordResetController) Forgot(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}
	neutral := "If that email is registered, a reset link has been sent"

	var user model.UserModel
	if err := ctl.DB.Where("user_email = ? AND user_is_active = true", req.Email).First(&user).Error; err != nil {
		if !helper.IsNotFound(err) {
			log.Printf("[RESET] lookup: %v", err)
		}
		return helper.JsonOK(c, neutral, nil)
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		log.Printf("[RESET] token generation: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not process request")
	}
	token := hex.EncodeToString(raw)

	reset := model.PasswordResetModel{
		PasswordResetUserID:    user.UserID,
		PasswordResetToken:     token,
		PasswordResetExpiresAt: time.Now().Add(resetTokenTTL),
		PasswordResetUsed:      false,
	}
	err := ctl.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "password_reset_user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"password_reset_token", "password_reset_expires_at", "password_reset_used",
		}),
	}).Create(&reset).Error
	if err != nil {
		log.Printf("[RESET] store token: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not process request")
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", ctl.FrontendURL, token)
	if err := ctl.Email.SendPasswordReset(user.UserEmail, user.UserFirstName, resetURL); err != nil {
		log.Printf("[RESET] send email: %v", err)
	}
	return helper.JsonOK(c, neutral, nil)
}

// Reset consumes a token and sets the new password.
func (ctl *PasswordResetController) Reset(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}

	var reset model.PasswordResetModel
	err := ctl.DB.
		Where("password_reset_token = ? AND password_reset_used = false AND password_reset_expires_at > ?", req.Token, time.Now()).
		First(&reset).Error
	if err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid or expired reset token")
		}
		log.Printf("[RESET] token lookup: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not reset password")
	}

	var user model.UserModel
	if err := ctl.DB.First(&user, "user_id = ?", reset.PasswordResetUserID).Error; err != nil {
		log.Printf("[RESET] user lookup: %v", err)
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid or expired reset token")
	}
	if err := user.SetPassword(req.Password); err != nil {
		log.Printf("[RESET] hash password: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not reset password")
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&user).Update("user_password", user.UserPassword).Error; err != nil {
			return err
		}
		return tx.Model(&reset).Update("password_reset_used", true).Error
	})
	if err != nil {
		log.Printf("[RESET] apply: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not reset password")
	}

	if err := ctl.Email.SendPasswordChanged(user.UserEmail, user.UserFirstName); err != nil {
		log.Printf("[RESET] changed notice: %v", err)
	}
	auditService.Record(ctl.DB, c, auditService.Entry{
		Action:   constants.ActionPasswordReset,
		UserID:   user.UserID,
		SchoolID: user.UserSchoolID,
	})
	return helper.JsonOK(c, "Password has been reset", nil)
}

// Change updates the password of the logged-in staff member.
func (ctl *PasswordResetController) Change(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var req dto.ChangePasswordRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}

	var user model.UserModel
	if err := ctl.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		log.Printf("[RESET] change lookup: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not change password")
	}
	if !user.ComparePassword(req.CurrentPassword) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Current password is incorrect")
	}
	if err := user.SetPassword(req.NewPassword); err != nil {
		log.Printf("[RESET] hash password: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not change password")
	}
	if err := ctl.DB.Model(&user).Update("user_password", user.UserPassword).Error; err != nil {
		log.Printf("[RESET] save password: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not change password")
	}

	if err := ctl.Email.SendPasswordChanged(user.UserEmail, user.UserFirstName); err != nil {
		log.Printf("[RESET] changed notice: %v", err)
	}
	auditService.RecordFromCtx(ctl.DB, c, auditService.Entry{Action: constants.ActionPasswordReset})
	return helper.JsonOK(c, "Password changed", nil)
}
