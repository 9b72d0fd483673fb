// file: internals/features/admin/controller/admin_controller.go
package controller

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"eduanalytics_backend/internals/constants"
	"eduanalytics_backend/internals/features/admin/dto"
	auditDto "eduanalytics_backend/internals/features/auditlog/dto"
	auditService "eduanalytics_backend/internals/features/auditlog/service"
	schoolDto "eduanalytics_backend/internals/features/schools/dto"
	schoolModel "eduanalytics_backend/internals/features/schools/model"
	studentModel "eduanalytics_backend/internals/features/students/model"
	userModel "eduanalytics_backend/internals/features/users/model"
	helper "eduanalytics_backend/internals/helpers"
)

var processStart = time.Now()

// AdminController serves the platform operators. Unlike every other
// controller it deliberately queries across tenants; the routes mounting it
// must sit behind RequireRoles(admin).
type AdminController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewAdminController(db *gorm.DB, v *validator.Validate) *AdminController {
	return &AdminController{DB: db, Validator: v}
}

// activeSubscription matches schools whose subscription has not lapsed.
const activeSubscription = `(school_subscription->>'end_date') IS NOT NULL
	AND (school_subscription->>'end_date')::timestamptz >= now()`

// Stats reports platform-wide counts and the latest signups.
func (ctl *AdminController) Stats(c *fiber.Ctx) error {
	var out dto.PlatformStats

	if err := ctl.DB.Model(&schoolModel.SchoolModel{}).Count(&out.TotalSchools).Error; err != nil {
		log.Printf("[ADMIN] stats schools: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load platform stats")
	}
	if err := ctl.DB.Model(&schoolModel.SchoolModel{}).Where(activeSubscription).Count(&out.ActiveSchools).Error; err != nil {
		log.Printf("[ADMIN] stats active schools: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load platform stats")
	}
	if err := ctl.DB.Model(&studentModel.StudentModel{}).Count(&out.TotalStudents).Error; err != nil {
		log.Printf("[ADMIN] stats students: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load platform stats")
	}
	if err := ctl.DB.Model(&userModel.UserModel{}).Count(&out.TotalUsers).Error; err != nil {
		log.Printf("[ADMIN] stats users: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load platform stats")
	}

	var recent []schoolModel.SchoolModel
	if err := ctl.DB.Order("school_created_at DESC").Limit(5).Find(&recent).Error; err != nil {
		log.Printf("[ADMIN] stats recent schools: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load platform stats")
	}
	out.RecentSchools = make([]schoolDto.SchoolResponse, 0, len(recent))
	for i := range recent {
		out.RecentSchools = append(out.RecentSchools, schoolDto.FromSchoolModel(&recent[i]))
	}

	return helper.JsonOK(c, "Platform stats", out)
}

// Schools pages through every tenant, newest first.
func (ctl *AdminController) Schools(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.Model(&schoolModel.SchoolModel{})
	if province := c.Query("province"); province != "" {
		q = q.Where("school_province = ?", province)
	}
	if search := c.Query("search"); search != "" {
		q = q.Where("school_name ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("[ADMIN] schools count: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load schools")
	}

	var schools []schoolModel.SchoolModel
	err := q.Order("school_created_at DESC").
		Offset(paging.Offset).
		Limit(paging.Limit).
		Find(&schools).Error
	if err != nil {
		log.Printf("[ADMIN] schools list: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load schools")
	}

	out := make([]schoolDto.SchoolResponse, 0, len(schools))
	for i := range schools {
		out = append(out, schoolDto.FromSchoolModel(&schools[i]))
	}
	return helper.JsonList(c, "Schools", out, helper.BuildPagination(total, paging.Page, paging.PerPage))
}

// School shows one tenant with its headline counts.
func (ctl *AdminController) School(c *fiber.Ctx) error {
	schoolID, err := uuid.Parse(c.Params("schoolId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid school id")
	}

	var school schoolModel.SchoolModel
	if err := ctl.DB.First(&school, "school_id = ?", schoolID).Error; err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "School not found")
		}
		log.Printf("[ADMIN] school lookup: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load school")
	}

	detail := dto.SchoolDetail{SchoolResponse: schoolDto.FromSchoolModel(&school)}
	if err := ctl.DB.Model(&studentModel.StudentModel{}).Where("student_school_id = ?", schoolID).Count(&detail.StudentCount).Error; err != nil {
		log.Printf("[ADMIN] school student count: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load school")
	}
	if err := ctl.DB.Model(&userModel.UserModel{}).Where("user_school_id = ?", schoolID).Count(&detail.UserCount).Error; err != nil {
		log.Printf("[ADMIN] school user count: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load school")
	}
	return helper.JsonOK(c, "School", detail)
}

// UpdateSubscription replaces a tenant's plan. Limits left at zero keep the
// stored value.
func (ctl *AdminController) UpdateSubscription(c *fiber.Ctx) error {
	schoolID, err := uuid.Parse(c.Params("schoolId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid school id")
	}

	var req dto.UpdateSubscriptionRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return err
	}

	var school schoolModel.SchoolModel
	if err := ctl.DB.First(&school, "school_id = ?", schoolID).Error; err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "School not found")
		}
		log.Printf("[ADMIN] subscription lookup: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not update subscription")
	}

	sub := school.SchoolSubscription.Data()
	sub.Plan = req.Plan
	if req.StartDate != nil {
		sub.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		sub.EndDate = req.EndDate
	}
	if req.StudentsLimit > 0 {
		sub.StudentsLimit = req.StudentsLimit
	}
	school.SchoolSubscription = datatypes.NewJSONType(sub)

	if err := ctl.DB.Model(&school).Update("school_subscription", school.SchoolSubscription).Error; err != nil {
		log.Printf("[ADMIN] subscription update: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not update subscription")
	}

	auditService.RecordFromCtx(ctl.DB, c, auditService.Entry{
		Action:       constants.ActionSubscriptionUpdate,
		SchoolID:     schoolID,
		ResourceID:   &school.SchoolID,
		ResourceType: "school",
		Details:      fiber.Map{"plan": req.Plan, "students_limit": sub.StudentsLimit},
	})
	return helper.JsonOK(c, "Subscription updated", schoolDto.FromSchoolModel(&school))
}

// Users lists staff accounts across every tenant with their school attached.
func (ctl *AdminController) Users(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.Table("users").
		Joins("JOIN schools s ON s.school_id = users.user_school_id")
	if role := c.Query("role"); role != "" {
		q = q.Where("user_role = ?", role)
	}
	if raw := c.Query("school_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			q = q.Where("user_school_id = ?", id)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("[ADMIN] users count: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load users")
	}

	var rows []dto.PlatformUserRow
	err := q.Select(`users.user_id,
			users.user_first_name AS first_name,
			users.user_last_name AS last_name,
			users.user_email AS email,
			users.user_role AS role,
			users.user_is_active AS is_active,
			users.user_school_id AS school_id,
			s.school_name,
			users.user_created_at AS created_at`).
		Order("users.user_created_at DESC").
		Offset(paging.Offset).
		Limit(paging.Limit).
		Scan(&rows).Error
	if err != nil {
		log.Printf("[ADMIN] users list: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load users")
	}
	return helper.JsonList(c, "Users", rows, helper.BuildPagination(total, paging.Page, paging.PerPage))
}

// AuditLogs pages the platform-wide trail, optionally narrowed to one tenant.
func (ctl *AdminController) AuditLogs(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 50, 200)

	q := ctl.DB.Table("audit_logs")
	if raw := c.Query("school_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			q = q.Where("audit_log_school_id = ?", id)
		}
	}
	if action := c.Query("action"); action != "" {
		q = q.Where("audit_log_action = ?", action)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("[ADMIN] audit count: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load audit logs")
	}

	var rows []auditDto.AuditLogRow
	err := q.Select(`audit_logs.audit_log_id,
			audit_logs.audit_log_action AS action,
			audit_logs.audit_log_user_id AS user_id,
			u.user_first_name AS first_name,
			u.user_last_name AS last_name,
			u.user_role AS role,
			audit_logs.audit_log_details AS details,
			audit_logs.audit_log_resource_type AS resource_type,
			audit_logs.audit_log_status AS status,
			audit_logs.audit_log_error_message AS error_message,
			audit_logs.audit_log_ip AS ip,
			audit_logs.audit_log_timestamp AS timestamp`).
		Joins("LEFT JOIN users u ON u.user_id = audit_logs.audit_log_user_id").
		Order("audit_log_timestamp DESC").
		Offset(paging.Offset).
		Limit(paging.Limit).
		Scan(&rows).Error
	if err != nil {
		log.Printf("[ADMIN] audit list: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load audit logs")
	}
	return helper.JsonList(c, "Audit logs", rows, helper.BuildPagination(total, paging.Page, paging.PerPage))
}

// Health checks the database and reports process vitals. Active sessions are
// approximated by distinct actors in the trail over the last 15 minutes.
func (ctl *AdminController) Health(c *fiber.Ctx) error {
	out := dto.HealthResponse{
		Status:        "ok",
		UptimeSeconds: time.Since(processStart).Seconds(),
		Goroutines:    runtime.NumGoroutine(),
	}

	sqlDB, err := ctl.DB.DB()
	if err == nil {
		start := time.Now()
		err = sqlDB.PingContext(c.Context())
		out.DatabaseMs = float64(time.Since(start).Microseconds()) / 1000
	}
	if err != nil {
		log.Printf("[ADMIN] health ping: %v", err)
		out.Status = "degraded"
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	out.MemoryAllocMB = float64(mem.Alloc) / (1 << 20)
	out.MemorySysMB = float64(mem.Sys) / (1 << 20)

	since := time.Now().Add(-15 * time.Minute)
	if err := ctl.DB.Table("audit_logs").
		Where("audit_log_timestamp >= ?", since).
		Distinct("audit_log_user_id").
		Count(&out.ActiveSessions).Error; err != nil {
		log.Printf("[ADMIN] health sessions: %v", err)
	}

	status := fiber.StatusOK
	if out.Status != "ok" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{"success": out.Status == "ok", "message": "Health", "data": out})
}

// Export dumps one platform table as JSON or CSV.
func (ctl *AdminController) Export(c *fiber.Ctx) error {
	dataType := c.Query("data_type", "schools")
	format := c.Query("format", "json")

	header, records, err := ctl.exportRecords(dataType)
	if err != nil {
		return err
	}

	if format == "json" {
		rows := make([]fiber.Map, 0, len(records))
		for _, rec := range records {
			row := fiber.Map{}
			for i, col := range header {
				row[col] = rec[i]
			}
			rows = append(rows, row)
		}
		return helper.JsonOK(c, "Export", fiber.Map{"data_type": dataType, "rows": rows})
	}
	if format != "csv" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Unsupported export format")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(header)
	for _, rec := range records {
		_ = w.Write(rec)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Printf("[ADMIN] export csv: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not export data")
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%s-%d.csv`, dataType, time.Now().Unix()))
	return c.Send(buf.Bytes())
}

func (ctl *AdminController) exportRecords(dataType string) ([]string, [][]string, error) {
	switch dataType {
	case "schools":
		var schools []schoolModel.SchoolModel
		if err := ctl.DB.Order("school_created_at").Find(&schools).Error; err != nil {
			log.Printf("[ADMIN] export schools: %v", err)
			return nil, nil, fiber.NewError(fiber.StatusInternalServerError, "Could not export data")
		}
		header := []string{"school_id", "name", "emis_number", "province", "district", "plan", "created_at"}
		records := make([][]string, 0, len(schools))
		for i := range schools {
			s := &schools[i]
			records = append(records, []string{
				s.SchoolID.String(),
				s.SchoolName,
				s.SchoolEmisNumber,
				s.SchoolProvince,
				s.SchoolDistrict,
				s.SchoolSubscription.Data().Plan,
				s.SchoolCreatedAt.Format(time.RFC3339),
			})
		}
		return header, records, nil

	case "users":
		var users []userModel.UserModel
		if err := ctl.DB.Order("user_created_at").Find(&users).Error; err != nil {
			log.Printf("[ADMIN] export users: %v", err)
			return nil, nil, fiber.NewError(fiber.StatusInternalServerError, "Could not export data")
		}
		header := []string{"user_id", "school_id", "first_name", "last_name", "email", "role", "is_active", "created_at"}
		records := make([][]string, 0, len(users))
		for i := range users {
			u := &users[i]
			records = append(records, []string{
				u.UserID.String(),
				u.UserSchoolID.String(),
				u.UserFirstName,
				u.UserLastName,
				u.UserEmail,
				u.UserRole,
				fmt.Sprintf("%t", u.UserIsActive),
				u.UserCreatedAt.Format(time.RFC3339),
			})
		}
		return header, records, nil

	case "students":
		var students []studentModel.StudentModel
		if err := ctl.DB.Order("student_created_at").Find(&students).Error; err != nil {
			log.Printf("[ADMIN] export students: %v", err)
			return nil, nil, fiber.NewError(fiber.StatusInternalServerError, "Could not export data")
		}
		header := []string{"student_id", "school_id", "student_number", "first_name", "last_name", "grade", "class_id", "is_active", "created_at"}
		records := make([][]string, 0, len(students))
		for i := range students {
			st := &students[i]
			records = append(records, []string{
				st.StudentID.String(),
				st.StudentSchoolID.String(),
				st.StudentNumber,
				st.StudentFirstName,
				st.StudentLastName,
				st.StudentGrade,
				st.StudentClassID.String(),
				fmt.Sprintf("%t", st.StudentIsActive),
				st.StudentCreatedAt.Format(time.RFC3339),
			})
		}
		return header, records, nil
	}
	return nil, nil, fiber.NewError(fiber.StatusBadRequest, "Unknown data type")
}
