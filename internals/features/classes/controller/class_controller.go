// file: internals/features/classes/controller/class_controller.go
package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"eduanalytics_backend/internals/constants"
	"eduanalytics_backend/internals/features/classes/dto"
	"eduanalytics_backend/internals/features/classes/model"
	helper "eduanalytics_backend/internals/helpers"
)

type ClassController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewClassController(db *gorm.DB, v *validator.Validate) *ClassController {
	return &ClassController{DB: db, Validator: v}
}

// List returns the school's classes with homeroom teacher names and student
// counts resolved, optionally filtered by grade.
func (ctl *ClassController) List(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	q := ctl.DB.Where("class_school_id = ?", schoolID)
	if grade := c.Query("grade"); grade != "" {
		q = q.Where("class_grade = ?", grade)
	}

	var classes []model.ClassModel
	if err := q.Order("class_grade, class_name").Find(&classes).Error; err != nil {
		log.Printf("[CLASSES] list: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load classes")
	}

	out, err := ctl.decorate(classes)
	if err != nil {
		log.Printf("[CLASSES] decorate: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load classes")
	}
	return helper.JsonOK(c, "Classes", out)
}

// GradeStructure buckets every class under its grade, including empty
// grades, for the school-structure screen.
func (ctl *ClassController) GradeStructure(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var classes []model.ClassModel
	if err := ctl.DB.Where("class_school_id = ?", schoolID).Order("class_name").Find(&classes).Error; err != nil {
		log.Printf("[CLASSES] grade structure: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load grade structure")
	}

	decorated, err := ctl.decorate(classes)
	if err != nil {
		log.Printf("[CLASSES] decorate: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load grade structure")
	}

	grades := map[string]*dto.GradeBucket{}
	for _, g := range constants.Grades {
		grades[g] = &dto.GradeBucket{Name: "Grade " + g, Classes: []dto.ClassResponse{}}
	}
	for _, cls := range decorated {
		if bucket, ok := grades[cls.Grade]; ok {
			bucket.Classes = append(bucket.Classes, cls)
		}
	}
	return helper.JsonOK(c, "Grade structure", grades)
}

func (ctl *ClassController) Create(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var req dto.CreateClassRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}
	if !constants.IsValidGrade(req.Grade) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Unknown grade")
	}

	cls := model.ClassModel{
		ClassSchoolID:     schoolID,
		ClassName:         req.Name,
		ClassGrade:        req.Grade,
		ClassTeacherID:    req.TeacherID,
		ClassSubjects:     datatypes.NewJSONType(req.Subjects),
		ClassAcademicYear: req.AcademicYear,
	}
	if err := ctl.DB.Create(&cls).Error; err != nil {
		log.Printf("[CLASSES] create: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not create class")
	}
	return helper.JsonCreated(c, "Class created", dto.FromClassModel(&cls))
}

func (ctl *ClassController) Update(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}
	classID, err := uuid.Parse(c.Params("classId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}

	var req dto.UpdateClassRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}

	var cls model.ClassModel
	if err := ctl.DB.Where("class_id = ? AND class_school_id = ?", classID, schoolID).First(&cls).Error; err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
		}
		log.Printf("[CLASSES] update lookup: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not update class")
	}

	if req.Name != nil {
		cls.ClassName = *req.Name
	}
	if req.TeacherID != nil {
		cls.ClassTeacherID = req.TeacherID
	}
	if req.Subjects != nil {
		cls.ClassSubjects = datatypes.NewJSONType(*req.Subjects)
	}

	if err := ctl.DB.Save(&cls).Error; err != nil {
		log.Printf("[CLASSES] update save: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not update class")
	}
	return helper.JsonOK(c, "Class updated", dto.FromClassModel(&cls))
}

// decorate resolves teacher names and student counts for a class list.
func (ctl *ClassController) decorate(classes []model.ClassModel) ([]dto.ClassResponse, error) {
	out := make([]dto.ClassResponse, 0, len(classes))
	if len(classes) == 0 {
		return out, nil
	}

	teacherIDs := []uuid.UUID{}
	classIDs := make([]uuid.UUID, 0, len(classes))
	for i := range classes {
		classIDs = append(classIDs, classes[i].ClassID)
		if classes[i].ClassTeacherID != nil {
			teacherIDs = append(teacherIDs, *classes[i].ClassTeacherID)
		}
	}

	teacherNames := map[uuid.UUID]string{}
	if len(teacherIDs) > 0 {
		type teacherRow struct {
			UserID        uuid.UUID `json:"user_id"`
			UserFirstName string    `json:"user_first_name"`
			UserLastName  string    `json:"user_last_name"`
		}
		var teachers []teacherRow
		if err := ctl.DB.Table("users").Where("user_id IN ?", teacherIDs).Scan(&teachers).Error; err != nil {
			return nil, err
		}
		for _, t := range teachers {
			teacherNames[t.UserID] = t.UserFirstName + " " + t.UserLastName
		}
	}

	type countRow struct {
		StudentClassID uuid.UUID `json:"student_class_id"`
		Count          int64     `json:"count"`
	}
	counts := map[uuid.UUID]int64{}
	var rows []countRow
	err := ctl.DB.Table("students").
		Select("student_class_id, COUNT(*) AS count").
		Where("student_class_id IN ?", classIDs).
		Group("student_class_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		counts[r.StudentClassID] = r.Count
	}

	for i := range classes {
		resp := dto.FromClassModel(&classes[i])
		if classes[i].ClassTeacherID != nil {
			resp.TeacherName = teacherNames[*classes[i].ClassTeacherID]
		}
		resp.StudentCount = counts[classes[i].ClassID]
		out = append(out, resp)
	}
	return out, nil
}
