// file: internals/features/schools/controller/school_controller.go
package controller

import (
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"eduanalytics_backend/internals/constants"
	auditService "eduanalytics_backend/internals/features/auditlog/service"
	parentModel "eduanalytics_backend/internals/features/parents/model"
	"eduanalytics_backend/internals/features/schools/dto"
	"eduanalytics_backend/internals/features/schools/model"
	studentModel "eduanalytics_backend/internals/features/students/model"
	helper "eduanalytics_backend/internals/helpers"
	"eduanalytics_backend/internals/services/email"
)

type SchoolController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Email     email.Service
}

func NewSchoolController(db *gorm.DB, v *validator.Validate, mail email.Service) *SchoolController {
	return &SchoolController{DB: db, Validator: v, Email: mail}
}

func (ctl *SchoolController) loadSchool(c *fiber.Ctx) (*model.SchoolModel, error) {
	schoolID, err := helper.GetSchoolID(c)
	if err != nil {
		return nil, fiber.ErrUnauthorized
	}
	var school model.SchoolModel
	if err := ctl.DB.First(&school, "school_id = ?", schoolID).Error; err != nil {
		if helper.IsNotFound(err) {
			return nil, fiber.NewError(fiber.StatusNotFound, "School not found")
		}
		log.Printf("[SCHOOLS] lookup: %v", err)
		return nil, fiber.ErrInternalServerError
	}
	return &school, nil
}

func (ctl *SchoolController) GetProfile(c *fiber.Ctx) error {
	school, err := ctl.loadSchool(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "School profile", dto.FromSchoolModel(school))
}

func (ctl *SchoolController) UpdateProfile(c *fiber.Ctx) error {
	school, err := ctl.loadSchool(c)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}

	if req.Name != nil {
		school.SchoolName = *req.Name
	}
	if req.District != nil {
		school.SchoolDistrict = *req.District
	}
	if req.Address != nil {
		school.SchoolAddress = datatypes.NewJSONType(*req.Address)
	}
	if req.Contact != nil {
		school.SchoolContact = datatypes.NewJSONType(*req.Contact)
	}

	if err := ctl.DB.Save(school).Error; err != nil {
		log.Printf("[SCHOOLS] profile save: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not update profile")
	}
	return helper.JsonOK(c, "School profile updated", dto.FromSchoolModel(school))
}

// UpdateSettings replaces the academic year and term calendar.
func (ctl *SchoolController) UpdateSettings(c *fiber.Ctx) error {
	school, err := ctl.loadSchool(c)
	if err != nil {
		return err
	}

	var req dto.UpdateSettingsRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}

	settings := school.SchoolSettings.Data()
	settings.AcademicYear = req.AcademicYear
	settings.Terms = req.Terms
	school.SchoolSettings = datatypes.NewJSONType(settings)

	if err := ctl.DB.Save(school).Error; err != nil {
		log.Printf("[SCHOOLS] settings save: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not update settings")
	}

	auditService.RecordFromCtx(ctl.DB, c, auditService.Entry{
		Action:  constants.ActionSettingsUpdate,
		Details: fiber.Map{"setting": "academic_calendar", "academic_year": req.AcademicYear},
	})
	return helper.JsonOK(c, "Academic settings updated", settings)
}

// Statistics summarizes the tenant: head counts, grade distribution,
// assessments per term and audit activity over the last week.
func (ctl *SchoolController) Statistics(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var out dto.StatisticsResponse

	if err := ctl.DB.Table("students").Where("student_school_id = ?", schoolID).Count(&out.Overview.Students).Error; err != nil {
		log.Printf("[SCHOOLS] statistics students: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load statistics")
	}
	if err := ctl.DB.Table("users").
		Where("user_school_id = ? AND user_role IN ?", schoolID, []string{constants.RoleTeacher, constants.RoleHOD}).
		Count(&out.Overview.Teachers).Error; err != nil {
		log.Printf("[SCHOOLS] statistics teachers: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load statistics")
	}
	if err := ctl.DB.Table("classes").Where("class_school_id = ?", schoolID).Count(&out.Overview.Classes).Error; err != nil {
		log.Printf("[SCHOOLS] statistics classes: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load statistics")
	}
	weekAgo := time.Now().AddDate(0, 0, -7)
	if err := ctl.DB.Table("audit_logs").
		Where("audit_log_school_id = ? AND audit_log_timestamp >= ?", schoolID, weekAgo).
		Count(&out.Overview.RecentActivity).Error; err != nil {
		log.Printf("[SCHOOLS] statistics activity: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load statistics")
	}

	err = ctl.DB.Table("students").
		Select("student_grade AS grade, COUNT(*) AS count").
		Where("student_school_id = ?", schoolID).
		Group("student_grade").
		Order("student_grade").
		Scan(&out.GradeDistribution).Error
	if err != nil {
		log.Printf("[SCHOOLS] grade distribution: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load statistics")
	}

	err = ctl.DB.Table("assessments").
		Select("assessment_term AS term, COUNT(*) AS count").
		Where("assessment_school_id = ?", schoolID).
		Group("assessment_term").
		Order("assessment_term").
		Scan(&out.AssessmentStats).Error
	if err != nil {
		log.Printf("[SCHOOLS] assessment stats: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load statistics")
	}

	out.LastUpdated = time.Now()
	return helper.JsonOK(c, "School statistics", out)
}

// ParentRequests lists parents with at least one unverified student link,
// newest first, with the linked students resolved for the review screen.
func (ctl *SchoolController) ParentRequests(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var parents []parentModel.ParentModel
	if err := ctl.DB.Where("parent_school_id = ?", schoolID).Order("parent_created_at DESC").Find(&parents).Error; err != nil {
		log.Printf("[SCHOOLS] parent requests: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load parent requests")
	}

	out := []dto.ParentRequestResponse{}
	for i := range parents {
		p := &parents[i]
		links := p.ParentStudents.Data()
		pending := false
		for _, l := range links {
			if !l.IsVerified {
				pending = true
				break
			}
		}
		if !pending {
			continue
		}

		resp := dto.ParentRequestResponse{
			ParentID:  p.ParentID,
			FirstName: p.ParentFirstName,
			LastName:  p.ParentLastName,
			Email:     p.ParentEmail,
			Phone:     p.ParentPhone,
			CreatedAt: p.ParentCreatedAt,
		}
		for _, l := range links {
			var st studentModel.StudentModel
			row := dto.ParentRequestStudent{
				StudentID:    l.StudentID,
				Relationship: l.Relationship,
				IsVerified:   l.IsVerified,
			}
			if err := ctl.DB.First(&st, "student_id = ?", l.StudentID).Error; err == nil {
				row.StudentNumber = st.StudentNumber
				row.FirstName = st.StudentFirstName
				row.LastName = st.StudentLastName
				row.Grade = st.StudentGrade
			}
			resp.Students = append(resp.Students, row)
		}
		out = append(out, resp)
	}
	return helper.JsonOK(c, "Parent requests", out)
}

// VerifyParent approves or revokes one parent-student link. Approval sends
// the parent a notification email.
func (ctl *SchoolController) VerifyParent(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}
	parentID, err := uuid.Parse(c.Params("parentId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid parent id")
	}

	var req dto.VerifyParentRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}
	verify := *req.Verify

	var parent parentModel.ParentModel
	if err := ctl.DB.Where("parent_id = ? AND parent_school_id = ?", parentID, schoolID).First(&parent).Error; err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "Parent request not found")
		}
		log.Printf("[SCHOOLS] verify lookup: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not process verification")
	}

	links := parent.ParentStudents.Data()
	found := false
	for i := range links {
		if links[i].StudentID == req.StudentID {
			links[i].IsVerified = verify
			found = true
			break
		}
	}
	if !found {
		return helper.JsonError(c, fiber.StatusNotFound, "Student not found in parent request")
	}
	parent.ParentStudents = datatypes.NewJSONType(links)

	if err := ctl.DB.Save(&parent).Error; err != nil {
		log.Printf("[SCHOOLS] verify save: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not process verification")
	}

	if verify {
		var st studentModel.StudentModel
		if err := ctl.DB.First(&st, "student_id = ?", req.StudentID).Error; err == nil {
			if err := ctl.Email.SendParentVerificationApproval(parent.ParentEmail, parent.ParentFirstName, st.StudentFirstName+" "+st.StudentLastName); err != nil {
				log.Printf("[SCHOOLS] verification email: %v", err)
			}
		}
	}

	auditService.RecordFromCtx(ctl.DB, c, auditService.Entry{
		Action:       constants.ActionParentAccess,
		ResourceID:   &parent.ParentID,
		ResourceType: "parent",
		Details:      fiber.Map{"student_id": req.StudentID, "verified": verify},
	})

	msg := "Parent access revoked"
	if verify {
		msg = "Parent access approved"
	}
	return helper.JsonOK(c, msg, fiber.Map{
		"parent_id": parent.ParentID,
		"students":  links,
	})
}
