// file: internals/features/assessments/controller/assessment_controller.go
package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"eduanalytics_backend/internals/constants"
	auditService "eduanalytics_backend/internals/features/auditlog/service"
	"eduanalytics_backend/internals/features/assessments/dto"
	"eduanalytics_backend/internals/features/assessments/model"
	helper "eduanalytics_backend/internals/helpers"
)

type AssessmentController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewAssessmentController(db *gorm.DB, v *validator.Validate) *AssessmentController {
	return &AssessmentController{DB: db, Validator: v}
}

func (ctl *AssessmentController) Create(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}
	userID, err := helper.GetUserID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var req dto.CreateAssessmentRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}

	assessment := model.AssessmentModel{
		AssessmentSchoolID:  schoolID,
		AssessmentTitle:     req.Title,
		AssessmentSubject:   req.Subject,
		AssessmentType:      req.Type,
		AssessmentTerm:      req.Term,
		AssessmentMaxMarks:  req.MaxMarks,
		AssessmentDate:      req.Date,
		AssessmentClassID:   req.ClassID,
		AssessmentTeacherID: userID,
	}
	if err := ctl.DB.Create(&assessment).Error; err != nil {
		log.Printf("[ASSESSMENTS] create: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not create assessment")
	}

	auditService.RecordFromCtx(ctl.DB, c, auditService.Entry{
		Action:       constants.ActionAssessmentCreate,
		ResourceID:   &assessment.AssessmentID,
		ResourceType: "assessment",
		Details:      fiber.Map{"title": assessment.AssessmentTitle, "subject": assessment.AssessmentSubject},
	})
	return helper.JsonCreated(c, "Assessment created", dto.FromAssessmentModel(&assessment))
}

// List returns the school's assessments filtered by class, subject, term or
// teacher, newest first.
func (ctl *AssessmentController) List(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	q := ctl.DB.Where("assessment_school_id = ?", schoolID)
	if classID := c.Query("class_id"); classID != "" {
		id, err := uuid.Parse(classID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
		}
		q = q.Where("assessment_class_id = ?", id)
	}
	if subject := c.Query("subject"); subject != "" {
		q = q.Where("assessment_subject = ?", subject)
	}
	if term := c.QueryInt("term"); term != 0 {
		q = q.Where("assessment_term = ?", term)
	}
	if c.Query("mine") == "true" {
		userID, err := helper.GetUserID(c)
		if err != nil {
			return fiber.ErrUnauthorized
		}
		q = q.Where("assessment_teacher_id = ?", userID)
	}

	var assessments []model.AssessmentModel
	if err := q.Order("assessment_date DESC").Find(&assessments).Error; err != nil {
		log.Printf("[ASSESSMENTS] list: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load assessments")
	}
	return helper.JsonOK(c, "Assessments", dto.FromAssessmentModels(assessments))
}

// loadOwned fetches an assessment and checks the caller may enter marks for
// it: the owning teacher, or any admin/principal of the school.
func (ctl *AssessmentController) loadOwned(c *fiber.Ctx) (*model.AssessmentModel, error) {
	schoolID, err := helper.GetSchoolID(c)
	if err != nil {
		return nil, fiber.ErrUnauthorized
	}
	assessmentID, err := uuid.Parse(c.Params("assessmentId"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid assessment id")
	}

	var assessment model.AssessmentModel
	if err := ctl.DB.Where("assessment_id = ? AND assessment_school_id = ?", assessmentID, schoolID).First(&assessment).Error; err != nil {
		if helper.IsNotFound(err) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Assessment not found")
		}
		log.Printf("[ASSESSMENTS] lookup: %v", err)
		return nil, fiber.ErrInternalServerError
	}

	role := helper.GetRole(c)
	if role != constants.RoleAdmin && role != constants.RolePrincipal {
		userID, err := helper.GetUserID(c)
		if err != nil || assessment.AssessmentTeacherID != userID {
			return nil, fiber.NewError(fiber.StatusForbidden, "Assessment not found or access denied")
		}
	}
	return &assessment, nil
}

// BulkMarks upserts marks for many students in one transaction, keyed on the
// (assessment, student) pair, and reports a structured per-row outcome.
// Percentages are computed here at write time; readers never recompute them.
func (ctl *AssessmentController) BulkMarks(c *fiber.Ctx) error {
	assessment, err := ctl.loadOwned(c)
	if err != nil {
		return err
	}

	var req dto.BulkMarksRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}

	resp := dto.BulkMarksResponse{Results: make([]dto.MarkRowResult, 0, len(req.Results))}
	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		for i, entry := range req.Results {
			row := dto.MarkRowResult{Index: i, StudentID: entry.StudentID}
			if entry.Marks > assessment.AssessmentMaxMarks {
				row.Error = "marks exceed maximum"
				resp.Failed++
				resp.Results = append(resp.Results, row)
				continue
			}

			result := model.AssessmentResultModel{
				AssessmentResultSchoolID:     assessment.AssessmentSchoolID,
				AssessmentResultAssessmentID: assessment.AssessmentID,
				AssessmentResultStudentID:    entry.StudentID,
				AssessmentResultMarks:        entry.Marks,
				AssessmentResultPercentage:   model.Percentage(entry.Marks, assessment.AssessmentMaxMarks),
			}
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "assessment_result_assessment_id"},
					{Name: "assessment_result_student_id"},
				},
				DoUpdates: clause.AssignmentColumns([]string{
					"assessment_result_marks", "assessment_result_percentage",
				}),
			}).Create(&result).Error
			if err != nil {
				log.Printf("[ASSESSMENTS] bulk marks row %d: %v", i, err)
				row.Error = "could not save marks"
				resp.Failed++
			} else {
				row.Saved = true
				row.Percentage = result.AssessmentResultPercentage
				resp.Saved++
			}
			resp.Results = append(resp.Results, row)
		}
		return nil
	})
	if err != nil {
		log.Printf("[ASSESSMENTS] bulk marks: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not save marks")
	}

	auditService.RecordFromCtx(ctl.DB, c, auditService.Entry{
		Action:       constants.ActionMarksEntry,
		ResourceID:   &assessment.AssessmentID,
		ResourceType: "assessment",
		Details:      fiber.Map{"saved": resp.Saved, "failed": resp.Failed},
	})
	return helper.JsonOK(c, "Marks saved", resp)
}

// Marks lists the recorded results for one assessment with student identity
// joined in, sorted by student number.
func (ctl *AssessmentController) Marks(c *fiber.Ctx) error {
	assessment, err := ctl.loadOwned(c)
	if err != nil {
		return err
	}

	var marks []dto.MarkResponse
	err = ctl.DB.Table("assessment_results AS r").
		Select(`r.assessment_result_id AS result_id,
			r.assessment_result_student_id AS student_id,
			st.student_number,
			st.student_first_name AS first_name,
			st.student_last_name AS last_name,
			r.assessment_result_marks AS marks,
			r.assessment_result_percentage AS percentage`).
		Joins("LEFT JOIN students st ON st.student_id = r.assessment_result_student_id").
		Where("r.assessment_result_assessment_id = ?", assessment.AssessmentID).
		Order("st.student_number").
		Scan(&marks).Error
	if err != nil {
		log.Printf("[ASSESSMENTS] marks list: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load marks")
	}
	return helper.JsonOK(c, "Assessment marks", fiber.Map{
		"assessment": dto.FromAssessmentModel(assessment),
		"marks":      marks,
	})
}
