// file: internals/features/assessments/controller/teacher_controller.go
package controller

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	assessmentDto "eduanalytics_backend/internals/features/assessments/dto"
	assessmentModel "eduanalytics_backend/internals/features/assessments/model"
	classDto "eduanalytics_backend/internals/features/classes/dto"
	classModel "eduanalytics_backend/internals/features/classes/model"
	studentDto "eduanalytics_backend/internals/features/students/dto"
	studentModel "eduanalytics_backend/internals/features/students/model"
	userModel "eduanalytics_backend/internals/features/users/model"
	helper "eduanalytics_backend/internals/helpers"
)

// TeacherController serves the teacher-facing dashboard: the classes the
// caller teaches, their students, and marks statistics.
type TeacherController struct {
	DB *gorm.DB
}

func NewTeacherController(db *gorm.DB) *TeacherController {
	return &TeacherController{DB: db}
}

// taughtBy matches classes where the user is homeroom teacher or assigned to
// a subject inside the class_subjects document.
func taughtBy(q *gorm.DB, userID uuid.UUID) *gorm.DB {
	subjectMatch := datatypes.JSON(fmt.Sprintf(`[{"teacher_id":%q}]`, userID))
	return q.Where("class_teacher_id = ? OR class_subjects @> ?", userID, subjectMatch)
}

func (ctl *TeacherController) myClasses(schoolID, userID uuid.UUID) ([]classModel.ClassModel, error) {
	var classes []classModel.ClassModel
	err := taughtBy(ctl.DB.Where("class_school_id = ?", schoolID), userID).
		Order("class_grade, class_name").
		Find(&classes).Error
	return classes, err
}

// MyClasses lists the caller's classes with student counts and how many
// assessments they created in the last 30 days.
func (ctl *TeacherController) MyClasses(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}
	userID, err := helper.GetUserID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	classes, err := ctl.myClasses(schoolID, userID)
	if err != nil {
		log.Printf("[TEACHERS] my classes: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load classes")
	}

	monthAgo := time.Now().AddDate(0, 0, -30)
	type classStats struct {
		classDto.ClassResponse
		RecentAssessments int64 `json:"recent_assessments"`
	}
	out := make([]classStats, 0, len(classes))
	for i := range classes {
		stats := classStats{ClassResponse: classDto.FromClassModel(&classes[i])}
		if err := ctl.DB.Model(&studentModel.StudentModel{}).
			Where("student_class_id = ?", classes[i].ClassID).
			Count(&stats.StudentCount).Error; err != nil {
			log.Printf("[TEACHERS] class student count: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load classes")
		}
		if err := ctl.DB.Model(&assessmentModel.AssessmentModel{}).
			Where("assessment_class_id = ? AND assessment_teacher_id = ? AND assessment_created_at >= ?",
				classes[i].ClassID, userID, monthAgo).
			Count(&stats.RecentAssessments).Error; err != nil {
			log.Printf("[TEACHERS] class assessment count: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load classes")
		}
		out = append(out, stats)
	}
	return helper.JsonOK(c, "My classes", out)
}

// Dashboard summarizes the caller's teaching load and marks entered so far.
func (ctl *TeacherController) Dashboard(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}
	userID, err := helper.GetUserID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var teacher userModel.UserModel
	if err := ctl.DB.First(&teacher, "user_id = ?", userID).Error; err != nil {
		log.Printf("[TEACHERS] dashboard teacher: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load dashboard")
	}

	classes, err := ctl.myClasses(schoolID, userID)
	if err != nil {
		log.Printf("[TEACHERS] dashboard classes: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load dashboard")
	}

	var studentCount int64
	if len(classes) > 0 {
		ids := make([]uuid.UUID, 0, len(classes))
		for i := range classes {
			ids = append(ids, classes[i].ClassID)
		}
		if err := ctl.DB.Model(&studentModel.StudentModel{}).
			Where("student_class_id IN ? AND student_school_id = ?", ids, schoolID).
			Count(&studentCount).Error; err != nil {
			log.Printf("[TEACHERS] dashboard students: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load dashboard")
		}
	}

	var recent []assessmentModel.AssessmentModel
	err = ctl.DB.Where("assessment_teacher_id = ? AND assessment_school_id = ?", userID, schoolID).
		Order("assessment_date DESC").
		Limit(5).
		Find(&recent).Error
	if err != nil {
		log.Printf("[TEACHERS] dashboard assessments: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load dashboard")
	}

	type marksStats struct {
		TotalMarks        int64   `json:"total_marks"`
		AveragePercentage float64 `json:"average_percentage"`
	}
	var stats marksStats
	err = ctl.DB.Table("assessment_results AS r").
		Select("COUNT(*) AS total_marks, COALESCE(AVG(r.assessment_result_percentage), 0) AS average_percentage").
		Joins("JOIN assessments a ON a.assessment_id = r.assessment_result_assessment_id").
		Where("a.assessment_teacher_id = ? AND a.assessment_school_id = ?", userID, schoolID).
		Scan(&stats).Error
	if err != nil {
		log.Printf("[TEACHERS] dashboard marks: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load dashboard")
	}

	return helper.JsonOK(c, "Teacher dashboard", fiber.Map{
		"teacher": fiber.Map{
			"first_name": teacher.UserFirstName,
			"last_name":  teacher.UserLastName,
			"subjects":   teacher.UserSubjects.Data(),
			"role":       teacher.UserRole,
		},
		"statistics": fiber.Map{
			"classes":            len(classes),
			"students":           studentCount,
			"total_marks":        stats.TotalMarks,
			"average_percentage": stats.AveragePercentage,
		},
		"recent_assessments": assessmentDto.FromAssessmentModels(recent),
	})
}

// ClassStudents lists a class roster, refusing classes the caller does not
// teach.
func (ctl *TeacherController) ClassStudents(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}
	userID, err := helper.GetUserID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}
	classID, err := uuid.Parse(c.Params("classId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}

	var cls classModel.ClassModel
	err = taughtBy(ctl.DB.Where("class_id = ? AND class_school_id = ?", classID, schoolID), userID).
		First(&cls).Error
	if err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusForbidden, "Access denied to this class")
		}
		log.Printf("[TEACHERS] class access: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load students")
	}

	var students []studentModel.StudentModel
	err = ctl.DB.Where("student_class_id = ? AND student_school_id = ?", classID, schoolID).
		Order("student_first_name").
		Find(&students).Error
	if err != nil {
		log.Printf("[TEACHERS] class students: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load students")
	}

	out := make([]studentDto.StudentResponse, 0, len(students))
	for i := range students {
		out = append(out, studentDto.FromStudentModel(&students[i]))
	}
	return helper.JsonOK(c, "Class students", out)
}
