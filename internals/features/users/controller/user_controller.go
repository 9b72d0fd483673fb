// file: internals/features/users/controller/user_controller.go
package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"eduanalytics_backend/internals/constants"
	auditService "eduanalytics_backend/internals/features/auditlog/service"
	"eduanalytics_backend/internals/features/users/dto"
	"eduanalytics_backend/internals/features/users/model"
	helper "eduanalytics_backend/internals/helpers"
)

// UserController manages the staff accounts of one school. All queries are
// pinned to the caller's school_id from the token.
type UserController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewUserController(db *gorm.DB, v *validator.Validate) *UserController {
	return &UserController{DB: db, Validator: v}
}

func (ctl *UserController) List(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	q := ctl.DB.Where("user_school_id = ?", schoolID)
	if role := c.Query("role"); role != "" {
		q = q.Where("user_role = ?", role)
	}

	var users []model.UserModel
	if err := q.Order("user_last_name, user_first_name").Find(&users).Error; err != nil {
		log.Printf("[USERS] list: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load users")
	}
	return helper.JsonOK(c, "Users", dto.FromUserModels(users))
}

func (ctl *UserController) Create(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var req dto.CreateUserRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}

	user := model.UserModel{
		UserSchoolID:  schoolID,
		UserFirstName: req.FirstName,
		UserLastName:  req.LastName,
		UserEmail:     req.Email,
		UserRole:      req.Role,
		UserSubjects:  datatypes.NewJSONType(req.Subjects),
		UserClasses:   datatypes.NewJSONType(req.Classes),
		UserIsActive:  true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		log.Printf("[USERS] hash password: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not create user")
	}

	if err := ctl.DB.Create(&user).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "A user with that email already exists")
		}
		log.Printf("[USERS] create: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not create user")
	}

	auditService.RecordFromCtx(ctl.DB, c, auditService.Entry{
		Action:       constants.ActionUserCreate,
		ResourceID:   &user.UserID,
		ResourceType: "user",
		Details:      fiber.Map{"email": user.UserEmail, "role": user.UserRole},
	})
	return helper.JsonCreated(c, "User created", dto.FromUserModel(&user))
}

func (ctl *UserController) Update(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}

	var req dto.UpdateUserRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}

	var user model.UserModel
	if err := ctl.DB.Where("user_id = ? AND user_school_id = ?", userID, schoolID).First(&user).Error; err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		log.Printf("[USERS] update lookup: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not update user")
	}

	if req.FirstName != nil {
		user.UserFirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.UserLastName = *req.LastName
	}
	if req.Role != nil {
		user.UserRole = *req.Role
	}
	if req.Subjects != nil {
		user.UserSubjects = datatypes.NewJSONType(*req.Subjects)
	}
	if req.Classes != nil {
		user.UserClasses = datatypes.NewJSONType(*req.Classes)
	}
	if req.IsActive != nil {
		user.UserIsActive = *req.IsActive
	}

	if err := ctl.DB.Save(&user).Error; err != nil {
		log.Printf("[USERS] update save: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not update user")
	}

	auditService.RecordFromCtx(ctl.DB, c, auditService.Entry{
		Action:       constants.ActionUserUpdate,
		ResourceID:   &user.UserID,
		ResourceType: "user",
	})
	return helper.JsonOK(c, "User updated", dto.FromUserModel(&user))
}
