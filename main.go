// file: main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"eduanalytics_backend/internals/configs"
	databases "eduanalytics_backend/internals/databases"
	analyticsService "eduanalytics_backend/internals/features/analytics/service"
	assessmentModel "eduanalytics_backend/internals/features/assessments/model"
	auditModel "eduanalytics_backend/internals/features/auditlog/model"
	auditService "eduanalytics_backend/internals/features/auditlog/service"
	backupService "eduanalytics_backend/internals/features/backup/service"
	classModel "eduanalytics_backend/internals/features/classes/model"
	parentModel "eduanalytics_backend/internals/features/parents/model"
	schoolModel "eduanalytics_backend/internals/features/schools/model"
	studentModel "eduanalytics_backend/internals/features/students/model"
	userModel "eduanalytics_backend/internals/features/users/model"
	"eduanalytics_backend/internals/middlewares"
	routes "eduanalytics_backend/internals/route"
	"eduanalytics_backend/internals/services/email"
)

func main() {
	cfg, err := configs.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := databases.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	databases.TunePool(db)
	databases.WarmUp(db)

	if err := db.AutoMigrate(
		&schoolModel.SchoolModel{},
		&userModel.UserModel{},
		&userModel.PasswordResetModel{},
		&classModel.ClassModel{},
		&studentModel.StudentModel{},
		&assessmentModel.AssessmentModel{},
		&assessmentModel.AssessmentResultModel{},
		&parentModel.ParentModel{},
		&auditModel.AuditLogModel{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	var uploader backupService.Uploader
	if cfg.OSS.Enabled() {
		uploader, err = backupService.NewOSSUploader(cfg.OSS)
		if err != nil {
			log.Fatalf("oss uploader: %v", err)
		}
		log.Println("[BOOT] archive upload to OSS enabled")
	}
	backup := backupService.NewBackupService(cfg.Backup, backupService.DefaultRegistry(db), uploader)

	app := fiber.New(fiber.Config{
		AppName:               "eduanalytics-backend",
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ProxyHeader:           fiber.HeaderXForwardedFor,
		ErrorHandler:          errorHandler,
	})
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	middlewares.Setup(app, cfg)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	routes.SetupRoutes(app, routes.Deps{
		DB:        db,
		Cfg:       cfg,
		Validator: validator.New(),
		Email:     email.New(cfg.Email),
		Backup:    backup,
		Analytics: analyticsService.NewAnalyticsService(db),
	})

	auditService.StartRetentionCleanup(db)

	go func() {
		log.Printf("[BOOT] listening on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Println("[BOOT] shutdown complete")
}

// errorHandler keeps every error, including fiber's own, inside the standard
// response envelope.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
