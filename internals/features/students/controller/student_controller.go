// file: internals/features/students/controller/student_controller.go
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
	classModel "eduanalytics_backend/internals/features/classes/model"
	"eduanalytics_backend/internals/features/students/dto"
	"eduanalytics_backend/internals/features/students/model"
	helper "eduanalytics_backend/internals/helpers"
)

type StudentController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewStudentController(db *gorm.DB, v *validator.Validate) *StudentController {
	return &StudentController{DB: db, Validator: v}
}

// List returns the school's students, paginated, optionally filtered by
// grade and class, sorted by first name.
func (ctl *StudentController) List(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.Model(&model.StudentModel{}).Where("student_school_id = ?", schoolID)
	if grade := c.Query("grade"); grade != "" {
		q = q.Where("student_grade = ?", grade)
	}
	if classID := c.Query("class_id"); classID != "" {
		id, err := uuid.Parse(classID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
		}
		q = q.Where("student_class_id = ?", id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("[STUDENTS] count: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load students")
	}

	var students []model.StudentModel
	if err := q.Order("student_first_name").Offset(paging.Offset).Limit(paging.Limit).Find(&students).Error; err != nil {
		log.Printf("[STUDENTS] list: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load students")
	}

	// Resolve class names in one query instead of one per student.
	classNames := map[uuid.UUID]string{}
	ids := make([]uuid.UUID, 0, len(students))
	for i := range students {
		ids = append(ids, students[i].StudentClassID)
	}
	if len(ids) > 0 {
		var classes []classModel.ClassModel
		if err := ctl.DB.Where("class_id IN ?", ids).Find(&classes).Error; err == nil {
			for i := range classes {
				classNames[classes[i].ClassID] = classes[i].ClassName
			}
		}
	}

	out := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		resp := dto.FromStudentModel(&students[i])
		resp.ClassName = classNames[students[i].StudentClassID]
		out = append(out, resp)
	}
	return helper.JsonList(c, "Students", out, helper.BuildPagination(total, paging.Page, paging.PerPage))
}

func (ctl *StudentController) Get(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	var student model.StudentModel
	if err := ctl.DB.Where("student_id = ? AND student_school_id = ?", studentID, schoolID).First(&student).Error; err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		log.Printf("[STUDENTS] get: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load student")
	}
	return helper.JsonOK(c, "Student", dto.FromStudentModel(&student))
}

func (ctl *StudentController) Create(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var req dto.CreateStudentRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}
	if !constants.IsValidGrade(req.Grade) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Unknown grade")
	}

	student := ctl.toModel(schoolID, &req)
	if err := ctl.DB.Create(&student).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Student number already exists")
		}
		log.Printf("[STUDENTS] create: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not create student")
	}

	auditService.RecordFromCtx(ctl.DB, c, auditService.Entry{
		Action:       constants.ActionStudentCreate,
		ResourceID:   &student.StudentID,
		ResourceType: "student",
		Details:      fiber.Map{"student_number": student.StudentNumber},
	})
	return helper.JsonCreated(c, "Student created", dto.FromStudentModel(&student))
}

// BulkCreate inserts many students inside one transaction and reports a
// per-row outcome. A row that fails its own insert is recorded and skipped;
// the remaining rows still commit.
func (ctl *StudentController) BulkCreate(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var req dto.BulkCreateRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}

	resp := dto.BulkCreateResponse{Results: make([]dto.BulkRowResult, 0, len(req.Students))}
	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		for i := range req.Students {
			row := dto.BulkRowResult{Index: i, StudentNumber: req.Students[i].StudentNumber}
			if !constants.IsValidGrade(req.Students[i].Grade) {
				row.Error = "unknown grade"
				resp.Failed++
				resp.Results = append(resp.Results, row)
				continue
			}
			student := ctl.toModel(schoolID, &req.Students[i])
			// Savepoint per row so one duplicate cannot poison the batch.
			if err := tx.Transaction(func(inner *gorm.DB) error {
				return inner.Create(&student).Error
			}); err != nil {
				if helper.IsUniqueViolation(err) {
					row.Error = "student number already exists"
				} else {
					row.Error = "could not create student"
					log.Printf("[STUDENTS] bulk row %d: %v", i, err)
				}
				resp.Failed++
			} else {
				row.Created = true
				resp.Created++
			}
			resp.Results = append(resp.Results, row)
		}
		return nil
	})
	if err != nil {
		log.Printf("[STUDENTS] bulk create: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not create students")
	}

	auditService.RecordFromCtx(ctl.DB, c, auditService.Entry{
		Action:  constants.ActionStudentCreate,
		Details: fiber.Map{"bulk": true, "created": resp.Created, "failed": resp.Failed},
	})
	return helper.JsonCreated(c, "Bulk create finished", resp)
}

func (ctl *StudentController) Update(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	var req dto.UpdateStudentRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}

	var student model.StudentModel
	if err := ctl.DB.Where("student_id = ? AND student_school_id = ?", studentID, schoolID).First(&student).Error; err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		log.Printf("[STUDENTS] update lookup: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not update student")
	}

	if req.FirstName != nil {
		student.StudentFirstName = *req.FirstName
	}
	if req.LastName != nil {
		student.StudentLastName = *req.LastName
	}
	if req.Grade != nil {
		if !constants.IsValidGrade(*req.Grade) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Unknown grade")
		}
		student.StudentGrade = *req.Grade
	}
	if req.ClassID != nil {
		student.StudentClassID = *req.ClassID
	}
	if req.Contact != nil {
		student.StudentContact = datatypes.NewJSONType(*req.Contact)
	}
	if req.IsActive != nil {
		student.StudentIsActive = *req.IsActive
	}

	if err := ctl.DB.Save(&student).Error; err != nil {
		log.Printf("[STUDENTS] update save: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not update student")
	}

	auditService.RecordFromCtx(ctl.DB, c, auditService.Entry{
		Action:       constants.ActionStudentUpdate,
		ResourceID:   &student.StudentID,
		ResourceType: "student",
	})
	return helper.JsonOK(c, "Student updated", dto.FromStudentModel(&student))
}

func (ctl *StudentController) toModel(schoolID uuid.UUID, req *dto.CreateStudentRequest) model.StudentModel {
	return model.StudentModel{
		StudentSchoolID:  schoolID,
		StudentNumber:    req.StudentNumber,
		StudentFirstName: req.FirstName,
		StudentLastName:  req.LastName,
		StudentDOB:       req.DateOfBirth,
		StudentGender:    req.Gender,
		StudentGrade:     req.Grade,
		StudentClassID:   req.ClassID,
		StudentContact:   datatypes.NewJSONType(req.Contact),
		StudentIsActive:  true,
	}
}
