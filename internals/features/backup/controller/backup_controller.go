// file: internals/features/backup/controller/backup_controller.go
package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"eduanalytics_backend/internals/constants"
	auditService "eduanalytics_backend/internals/features/auditlog/service"
	"eduanalytics_backend/internals/features/backup/service"
	helper "eduanalytics_backend/internals/helpers"
)

// BackupController exposes the backup engine to school admins. Every
// operation here is scoped to the caller's own school; cross-tenant backups
// live under the system-admin routes.
type BackupController struct {
	DB     *gorm.DB
	Backup *service.BackupService
}

func NewBackupController(db *gorm.DB, backup *service.BackupService) *BackupController {
	return &BackupController{DB: db, Backup: backup}
}

// Create exports the caller's school into a new archive.
func (ctl *BackupController) Create(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	arch, err := ctl.Backup.Create(c.Context(), &schoolID)
	if err != nil {
		log.Printf("[BACKUP] create: %v", err)
		auditService.RecordFromCtx(ctl.DB, c, auditService.Entry{
			Action:       constants.ActionBackupCreate,
			Status:       constants.AuditStatusFailure,
			ErrorMessage: err.Error(),
		})
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not create backup")
	}

	auditService.RecordFromCtx(ctl.DB, c, auditService.Entry{
		Action:  constants.ActionBackupCreate,
		Details: fiber.Map{"filename": arch.Filename, "record_counts": arch.Metadata.RecordCounts},
	})
	return helper.JsonCreated(c, "Backup created", arch)
}

// Restore replaces the school's data with a named archive. The archive's own
// metadata must match the caller's school; restoring another tenant's
// archive, or a full-platform one, is refused here.
func (ctl *BackupController) Restore(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var req struct {
		Filename string `json:"filename"`
	}
	if err := c.BodyParser(&req); err != nil || req.Filename == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Archive filename is required")
	}

	// Check scope before touching any data.
	archives, err := ctl.Backup.List(&schoolID)
	if err != nil {
		log.Printf("[BACKUP] restore list: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not restore backup")
	}
	allowed := false
	for _, a := range archives {
		if a.Filename == req.Filename {
			allowed = true
			break
		}
	}
	if !allowed {
		return helper.JsonError(c, fiber.StatusNotFound, "Backup not found for this school")
	}

	meta, err := ctl.Backup.Restore(c.Context(), req.Filename)
	if err != nil {
		log.Printf("[BACKUP] restore: %v", err)
		auditService.RecordFromCtx(ctl.DB, c, auditService.Entry{
			Action:       constants.ActionBackupRestore,
			Status:       constants.AuditStatusFailure,
			ErrorMessage: err.Error(),
			Details:      fiber.Map{"filename": req.Filename},
		})
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not restore backup")
	}

	auditService.RecordFromCtx(ctl.DB, c, auditService.Entry{
		Action:  constants.ActionBackupRestore,
		Details: fiber.Map{"filename": req.Filename, "record_counts": meta.RecordCounts},
	})
	return helper.JsonOK(c, "Backup restored", meta)
}

// List shows the school's archives, newest first.
func (ctl *BackupController) List(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	archives, err := ctl.Backup.List(&schoolID)
	if err != nil {
		log.Printf("[BACKUP] list: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not list backups")
	}
	return helper.JsonOK(c, "Backups", archives)
}

// Download streams one of the school's archives.
func (ctl *BackupController) Download(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}
	filename := c.Params("filename")

	archives, err := ctl.Backup.List(&schoolID)
	if err != nil {
		log.Printf("[BACKUP] download list: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not download backup")
	}
	for _, a := range archives {
		if a.Filename == filename {
			path, err := ctl.Backup.ArchiveFile(filename)
			if err != nil {
				return helper.JsonError(c, fiber.StatusNotFound, "Backup not found")
			}
			return c.Download(path, filename)
		}
	}
	return helper.JsonError(c, fiber.StatusNotFound, "Backup not found for this school")
}

// helper for the system-admin routes: nil school means full platform.
func (ctl *BackupController) CreateFull(c *fiber.Ctx) error {
	arch, err := ctl.Backup.Create(c.Context(), nil)
	if err != nil {
		log.Printf("[BACKUP] system create: %v", err)
		auditService.RecordFromCtx(ctl.DB, c, auditService.Entry{
			Action:       constants.ActionSystemBackup,
			Status:       constants.AuditStatusFailure,
			ErrorMessage: err.Error(),
		})
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not create system backup")
	}

	auditService.RecordFromCtx(ctl.DB, c, auditService.Entry{
		Action:  constants.ActionSystemBackup,
		Details: fiber.Map{"filename": arch.Filename, "record_counts": arch.Metadata.RecordCounts},
	})
	return helper.JsonCreated(c, "System backup created", arch)
}
