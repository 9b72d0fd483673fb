// file: internals/features/reports/controller/report_controller.go
package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"eduanalytics_backend/internals/constants"
	analyticsService "eduanalytics_backend/internals/features/analytics/service"
	auditService "eduanalytics_backend/internals/features/auditlog/service"
	classModel "eduanalytics_backend/internals/features/classes/model"
	studentDto "eduanalytics_backend/internals/features/students/dto"
	studentModel "eduanalytics_backend/internals/features/students/model"
	helper "eduanalytics_backend/internals/helpers"
)

// ReportController builds printable report-card payloads. The client renders
// them; the server only assembles the numbers.
type ReportController struct {
	DB        *gorm.DB
	Analytics *analyticsService.AnalyticsService
}

func NewReportController(db *gorm.DB, analytics *analyticsService.AnalyticsService) *ReportController {
	return &ReportController{DB: db, Analytics: analytics}
}

// StudentReport assembles one student's report card: identity, per-term
// subject breakdown and overall stats, optionally limited to one term.
func (ctl *ReportController) StudentReport(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	var student studentModel.StudentModel
	if err := ctl.DB.Where("student_id = ? AND student_school_id = ?", studentID, schoolID).First(&student).Error; err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		log.Printf("[REPORTS] student lookup: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not generate report")
	}

	progress, err := ctl.Analytics.StudentProgress(c.Context(), schoolID, studentID, "")
	if err != nil {
		log.Printf("[REPORTS] student progress: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not generate report")
	}
	if term := c.QueryInt("term"); term != 0 {
		filtered := progress[:0]
		for _, p := range progress {
			if p.Term == term {
				filtered = append(filtered, p)
			}
		}
		progress = filtered
	}

	var sum float64
	count := 0
	for _, p := range progress {
		for _, a := range p.Assessments {
			sum += a.Percentage
			count++
		}
	}
	average := 0.0
	if count > 0 {
		average = sum / float64(count)
	}

	auditService.RecordFromCtx(ctl.DB, c, auditService.Entry{
		Action:       constants.ActionReportGenerate,
		ResourceID:   &student.StudentID,
		ResourceType: "student",
	})

	return helper.JsonOK(c, "Student report", fiber.Map{
		"student":     studentDto.FromStudentModel(&student),
		"performance": progress,
		"stats": fiber.Map{
			"average":           average,
			"total_assessments": count,
		},
	})
}

// ClassReport ranks a class's students by their average percentage and
// summarizes the class as a whole.
func (ctl *ReportController) ClassReport(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}
	classID, err := uuid.Parse(c.Params("classId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}

	var cls classModel.ClassModel
	if err := ctl.DB.Where("class_id = ? AND class_school_id = ?", classID, schoolID).First(&cls).Error; err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
		}
		log.Printf("[REPORTS] class lookup: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not generate report")
	}

	type studentAvg struct {
		StudentID uuid.UUID `json:"student_id"`
		Average   float64   `json:"average"`
	}
	q := ctl.DB.Table("assessment_results AS r").
		Select("r.assessment_result_student_id AS student_id, AVG(r.assessment_result_percentage) AS average").
		Joins("JOIN assessments a ON a.assessment_id = r.assessment_result_assessment_id").
		Where("a.assessment_class_id = ? AND a.assessment_school_id = ?", classID, schoolID)
	if term := c.QueryInt("term"); term != 0 {
		q = q.Where("a.assessment_term = ?", term)
	}
	var averages []studentAvg
	if err := q.Group("r.assessment_result_student_id").Scan(&averages).Error; err != nil {
		log.Printf("[REPORTS] class averages: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not generate report")
	}
	avgByStudent := make(map[uuid.UUID]float64, len(averages))
	for _, a := range averages {
		avgByStudent[a.StudentID] = a.Average
	}

	var students []studentModel.StudentModel
	err = ctl.DB.Where("student_class_id = ? AND student_school_id = ?", classID, schoolID).
		Order("student_first_name").
		Find(&students).Error
	if err != nil {
		log.Printf("[REPORTS] class students: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not generate report")
	}

	type rankedStudent struct {
		studentDto.StudentResponse
		Average float64 `json:"average"`
	}
	ranked := make([]rankedStudent, 0, len(students))
	for i := range students {
		ranked = append(ranked, rankedStudent{
			StudentResponse: studentDto.FromStudentModel(&students[i]),
			Average:         avgByStudent[students[i].StudentID],
		})
	}
	for i := 0; i < len(ranked); i++ {
		for j := i + 1; j < len(ranked); j++ {
			if ranked[j].Average > ranked[i].Average {
				ranked[i], ranked[j] = ranked[j], ranked[i]
			}
		}
	}

	classAverage := 0.0
	if len(averages) > 0 {
		var total float64
		for _, a := range averages {
			total += a.Average
		}
		classAverage = total / float64(len(averages))
	}
	atRisk := 0
	for _, a := range averages {
		if a.Average < analyticsService.DefaultAtRiskThreshold {
			atRisk++
		}
	}

	stats := fiber.Map{
		"class_average": classAverage,
		"at_risk_count": atRisk,
	}
	if len(ranked) > 0 {
		stats["top_student"] = ranked[0].FirstName + " " + ranked[0].LastName
		stats["top_average"] = ranked[0].Average
	}

	auditService.RecordFromCtx(ctl.DB, c, auditService.Entry{
		Action:       constants.ActionReportGenerate,
		ResourceID:   &cls.ClassID,
		ResourceType: "class",
	})

	return helper.JsonOK(c, "Class report", fiber.Map{
		"class":    fiber.Map{"class_id": cls.ClassID, "name": cls.ClassName, "grade": cls.ClassGrade},
		"students": ranked,
		"stats":    stats,
	})
}
