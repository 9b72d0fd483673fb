// file: internals/features/parents/controller/parent_controller.go
package controller

import (
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"eduanalytics_backend/internals/configs"
	"eduanalytics_backend/internals/constants"
	analyticsService "eduanalytics_backend/internals/features/analytics/service"
	auditService "eduanalytics_backend/internals/features/auditlog/service"
	"eduanalytics_backend/internals/features/parents/dto"
	"eduanalytics_backend/internals/features/parents/model"
	schoolModel "eduanalytics_backend/internals/features/schools/model"
	studentModel "eduanalytics_backend/internals/features/students/model"
	helper "eduanalytics_backend/internals/helpers"
	"eduanalytics_backend/internals/services/email"
)

// ParentController serves the parent portal. Parents see only students whose
// link the school has verified.
type ParentController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	JWT       configs.JWTConfig
	Email     email.Service
}

func NewParentController(db *gorm.DB, v *validator.Validate, jwt configs.JWTConfig, mail email.Service) *ParentController {
	return &ParentController{DB: db, Validator: v, JWT: jwt, Email: mail}
}

// Register creates a parent account (or extends an existing one) linked to a
// student by student number. The link starts unverified and the school admin
// is notified by email.
func (ctl *ParentController) Register(c *fiber.Ctx) error {
	var req dto.RegisterParentRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}
	relationship := req.Relationship
	if relationship == "" {
		relationship = "Parent"
	}

	var student studentModel.StudentModel
	if err := ctl.DB.Where("student_number = ?", req.StudentNumber).First(&student).Error; err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found with provided student number")
		}
		log.Printf("[PARENTS] register student lookup: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not register")
	}

	newLink := model.StudentLink{StudentID: student.StudentID, Relationship: relationship, IsVerified: false}

	var parent model.ParentModel
	err := ctl.DB.Where("parent_email = ?", req.Email).First(&parent).Error
	switch {
	case err == nil:
		links := parent.ParentStudents.Data()
		for _, l := range links {
			if l.StudentID == student.StudentID {
				return helper.JsonError(c, fiber.StatusBadRequest, "You are already registered for this student")
			}
		}
		parent.ParentStudents = datatypes.NewJSONType(append(links, newLink))
		if err := ctl.DB.Save(&parent).Error; err != nil {
			log.Printf("[PARENTS] register extend: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Could not register")
		}
	case helper.IsNotFound(err):
		parent = model.ParentModel{
			ParentSchoolID:  student.StudentSchoolID,
			ParentFirstName: req.FirstName,
			ParentLastName:  req.LastName,
			ParentEmail:     req.Email,
			ParentPhone:     req.Phone,
			ParentStudents:  datatypes.NewJSONType([]model.StudentLink{newLink}),
			ParentIsActive:  true,
		}
		if err := parent.SetPassword(req.Password); err != nil {
			log.Printf("[PARENTS] hash password: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Could not register")
		}
		if err := ctl.DB.Create(&parent).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return helper.JsonError(c, fiber.StatusConflict, "An account with that email already exists")
			}
			log.Printf("[PARENTS] register create: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Could not register")
		}
	default:
		log.Printf("[PARENTS] register lookup: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not register")
	}

	var school schoolModel.SchoolModel
	if err := ctl.DB.First(&school, "school_id = ?", student.StudentSchoolID).Error; err == nil {
		if adminEmail := school.SchoolContact.Data().Email; adminEmail != "" {
			parentName := parent.ParentFirstName + " " + parent.ParentLastName
			studentName := student.StudentFirstName + " " + student.StudentLastName
			if err := ctl.Email.SendParentVerificationRequest(adminEmail, parentName, studentName); err != nil {
				log.Printf("[PARENTS] verification request email: %v", err)
			}
		}
	}

	auditService.Record(ctl.DB, c, auditService.Entry{
		Action:   constants.ActionParentRegister,
		UserID:   parent.ParentID,
		SchoolID: student.StudentSchoolID,
		Details: fiber.Map{
			"parent_email":   parent.ParentEmail,
			"student_number": student.StudentNumber,
		},
	})

	return helper.JsonCreated(c, "Registration successful. Please wait for verification from the school.", fiber.Map{
		"parent_id":  parent.ParentID,
		"first_name": parent.ParentFirstName,
		"last_name":  parent.ParentLastName,
		"email":      parent.ParentEmail,
	})
}

// Login authenticates a parent. Accounts with no verified student link are
// rejected until the school approves one.
func (ctl *ParentController) Login(c *fiber.Ctx) error {
	var req dto.ParentLoginRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}

	var parent model.ParentModel
	if err := ctl.DB.Where("parent_email = ?", req.Email).First(&parent).Error; err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
		}
		log.Printf("[PARENTS] login lookup: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not log in")
	}
	if !parent.ComparePassword(req.Password) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}
	if !parent.ParentIsActive {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Account is deactivated")
	}
	if len(parent.VerifiedLinks()) == 0 {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Your account is pending verification by the school")
	}

	now := time.Now()
	if err := ctl.DB.Model(&parent).Update("parent_last_login", now).Error; err != nil {
		log.Printf("[PARENTS] last login: %v", err)
	}

	token, err := helper.SignParentToken(ctl.JWT, parent.ParentID, parent.ParentSchoolID)
	if err != nil {
		log.Printf("[PARENTS] sign token: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not log in")
	}

	auditService.Record(ctl.DB, c, auditService.Entry{
		Action:   constants.ActionParentLogin,
		UserID:   parent.ParentID,
		SchoolID: parent.ParentSchoolID,
	})

	return helper.JsonOK(c, "Login successful", dto.ParentLoginResponse{
		Token:  token,
		Parent: ctl.profile(&parent),
	})
}

// Dashboard shows the parent's verified students, their latest results and a
// per-student performance summary.
func (ctl *ParentController) Dashboard(c *fiber.Ctx) error {
	parent, err := ctl.loadParent(c)
	if err != nil {
		return err
	}

	links := parent.VerifiedLinks()
	studentIDs := make([]uuid.UUID, 0, len(links))
	for _, l := range links {
		studentIDs = append(studentIDs, l.StudentID)
	}

	out := dto.DashboardResponse{
		Parent:             ctl.profile(parent),
		RecentAssessments:  []dto.RecentAssessment{},
		StudentPerformance: []dto.StudentPerformance{},
	}

	var school schoolModel.SchoolModel
	if err := ctl.DB.First(&school, "school_id = ?", parent.ParentSchoolID).Error; err == nil {
		out.SchoolName = school.SchoolName
	}

	if len(studentIDs) > 0 {
		err = ctl.DB.Table("assessment_results AS r").
			Select(`st.student_first_name || ' ' || st.student_last_name AS student_name,
				a.assessment_title AS title,
				a.assessment_subject AS subject,
				a.assessment_type AS type,
				r.assessment_result_marks AS marks,
				a.assessment_max_marks AS max_marks,
				r.assessment_result_percentage AS percentage,
				a.assessment_date AS date`).
			Joins("JOIN assessments a ON a.assessment_id = r.assessment_result_assessment_id").
			Joins("JOIN students st ON st.student_id = r.assessment_result_student_id").
			Where("r.assessment_result_student_id IN ? AND r.assessment_result_school_id = ?", studentIDs, parent.ParentSchoolID).
			Order("a.assessment_date DESC").
			Limit(10).
			Scan(&out.RecentAssessments).Error
		if err != nil {
			log.Printf("[PARENTS] dashboard recent: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load dashboard")
		}

		err = ctl.DB.Table("assessment_results AS r").
			Select(`r.assessment_result_student_id AS student_id,
				st.student_first_name AS first_name,
				st.student_last_name AS last_name,
				AVG(r.assessment_result_percentage) AS average_percentage,
				COUNT(*) AS total_assessments,
				MAX(r.assessment_result_created_at) AS last_assessment`).
			Joins("JOIN students st ON st.student_id = r.assessment_result_student_id").
			Where("r.assessment_result_student_id IN ? AND r.assessment_result_school_id = ?", studentIDs, parent.ParentSchoolID).
			Group("r.assessment_result_student_id, st.student_first_name, st.student_last_name").
			Scan(&out.StudentPerformance).Error
		if err != nil {
			log.Printf("[PARENTS] dashboard performance: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load dashboard")
		}
	}

	auditService.Record(ctl.DB, c, auditService.Entry{
		Action:   constants.ActionParentAccess,
		UserID:   parent.ParentID,
		SchoolID: parent.ParentSchoolID,
	})
	return helper.JsonOK(c, "Parent dashboard", out)
}

// StudentReport returns one verified student's marks grouped by term and
// subject, optionally filtered to a single term.
func (ctl *ParentController) StudentReport(c *fiber.Ctx) error {
	parent, err := ctl.loadParent(c)
	if err != nil {
		return err
	}
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}
	if !parent.HasVerifiedLink(studentID) {
		return helper.JsonError(c, fiber.StatusForbidden, "Access denied to this student")
	}

	q := ctl.DB.Table("assessment_results AS r").
		Select(`a.assessment_term AS term,
			a.assessment_subject AS subject,
			a.assessment_title AS title,
			a.assessment_type AS type,
			r.assessment_result_marks AS marks,
			r.assessment_result_percentage AS percentage,
			a.assessment_date AS date`).
		Joins("JOIN assessments a ON a.assessment_id = r.assessment_result_assessment_id").
		Where("r.assessment_result_student_id = ? AND r.assessment_result_school_id = ?", studentID, parent.ParentSchoolID)
	if term := c.QueryInt("term"); term != 0 {
		q = q.Where("assessment_term = ?", term)
	}

	var rows []analyticsService.ProgressRow
	if err := q.Order("a.assessment_term, a.assessment_subject, a.assessment_date").Scan(&rows).Error; err != nil {
		log.Printf("[PARENTS] student report: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load report")
	}

	return helper.JsonOK(c, "Student report", fiber.Map{
		"performance": analyticsService.GroupStudentProgress(rows),
	})
}

func (ctl *ParentController) loadParent(c *fiber.Ctx) (*model.ParentModel, error) {
	parentID, err := helper.GetParentID(c)
	if err != nil {
		return nil, fiber.ErrUnauthorized
	}
	var parent model.ParentModel
	if err := ctl.DB.First(&parent, "parent_id = ?", parentID).Error; err != nil {
		if helper.IsNotFound(err) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Parent not found")
		}
		log.Printf("[PARENTS] lookup: %v", err)
		return nil, fiber.ErrInternalServerError
	}
	return &parent, nil
}

// profile resolves the parent's verified links against the student table.
func (ctl *ParentController) profile(parent *model.ParentModel) dto.ParentProfile {
	out := dto.ParentProfile{
		ParentID:  parent.ParentID,
		FirstName: parent.ParentFirstName,
		LastName:  parent.ParentLastName,
		Email:     parent.ParentEmail,
		Students:  []dto.LinkedStudent{},
	}
	for _, l := range parent.VerifiedLinks() {
		var st studentModel.StudentModel
		if err := ctl.DB.First(&st, "student_id = ?", l.StudentID).Error; err != nil {
			continue
		}
		out.Students = append(out.Students, dto.LinkedStudent{
			StudentID:    st.StudentID,
			FirstName:    st.StudentFirstName,
			LastName:     st.StudentLastName,
			Grade:        st.StudentGrade,
			ClassID:      st.StudentClassID,
			Relationship: l.Relationship,
		})
	}
	return out
}
