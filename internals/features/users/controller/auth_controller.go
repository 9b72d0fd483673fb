// file: internals/features/users/controller/auth_controller.go
package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"eduanalytics_backend/internals/configs"
	"eduanalytics_backend/internals/constants"
	auditService "eduanalytics_backend/internals/features/auditlog/service"
	schoolModel "eduanalytics_backend/internals/features/schools/model"
	"eduanalytics_backend/internals/features/users/dto"
	"eduanalytics_backend/internals/features/users/model"
	helper "eduanalytics_backend/internals/helpers"
)

type AuthController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	JWT       configs.JWTConfig
}

func NewAuthController(db *gorm.DB, v *validator.Validate, jwt configs.JWTConfig) *AuthController {
	return &AuthController{DB: db, Validator: v, JWT: jwt}
}

// Register creates a school tenant together with its first admin account in
// one transaction. Either both rows exist afterwards or neither does.
func (ctl *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}
	if !constants.IsValidProvince(req.SchoolProvince) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Unknown province")
	}

	school := schoolModel.SchoolModel{
		SchoolName:       req.SchoolName,
		SchoolEmisNumber: req.SchoolEmisNumber,
		SchoolProvince:   req.SchoolProvince,
		SchoolDistrict:   req.SchoolDistrict,
	}
	admin := model.UserModel{
		UserFirstName: req.AdminFirstName,
		UserLastName:  req.AdminLastName,
		UserEmail:     req.AdminEmail,
		UserRole:      constants.RoleAdmin,
		UserIsActive:  true,
	}
	if err := admin.SetPassword(req.AdminPassword); err != nil {
		log.Printf("[AUTH] hash password: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not register school")
	}

	err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&school).Error; err != nil {
			return err
		}
		admin.UserSchoolID = school.SchoolID
		return tx.Create(&admin).Error
	})
	if err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "A school or user with those details already exists")
		}
		log.Printf("[AUTH] register school: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not register school")
	}

	token, err := helper.SignStaffToken(ctl.JWT, admin.UserID, school.SchoolID, admin.UserRole)
	if err != nil {
		log.Printf("[AUTH] sign token: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not register school")
	}

	auditService.Record(ctl.DB, c, auditService.Entry{
		Action:       constants.ActionUserCreate,
		UserID:       admin.UserID,
		SchoolID:     school.SchoolID,
		ResourceID:   &admin.UserID,
		ResourceType: "user",
		Details:      fiber.Map{"email": admin.UserEmail, "role": admin.UserRole},
	})

	return helper.JsonCreated(c, "School registered", dto.LoginResponse{
		Token: token,
		User:  dto.FromUserModel(&admin),
	})
}

// Login authenticates a staff member and returns a JWT. Failed attempts are
// audited when the account exists.
func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}

	var user model.UserModel
	if err := ctl.DB.Where("user_email = ?", req.Email).First(&user).Error; err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
		}
		log.Printf("[AUTH] login lookup: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not log in")
	}
	if !user.UserIsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Account is deactivated")
	}
	if !user.ComparePassword(req.Password) {
		auditService.Record(ctl.DB, c, auditService.Entry{
			Action:       constants.ActionUserLogin,
			UserID:       user.UserID,
			SchoolID:     user.UserSchoolID,
			Status:       constants.AuditStatusFailure,
			ErrorMessage: "wrong password",
		})
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	token, err := helper.SignStaffToken(ctl.JWT, user.UserID, user.UserSchoolID, user.UserRole)
	if err != nil {
		log.Printf("[AUTH] sign token: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not log in")
	}

	auditService.Record(ctl.DB, c, auditService.Entry{
		Action:   constants.ActionUserLogin,
		UserID:   user.UserID,
		SchoolID: user.UserSchoolID,
	})

	return helper.JsonOK(c, "Logged in", dto.LoginResponse{
		Token: token,
		User:  dto.FromUserModel(&user),
	})
}

// Profile returns the authenticated staff member's own account.
func (ctl *AuthController) Profile(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var user model.UserModel
	if err := ctl.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		log.Printf("[AUTH] profile lookup: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load profile")
	}
	return helper.JsonOK(c, "Profile", dto.FromUserModel(&user))
}
