// file: internals/features/backup/service/registry.go
package service

import (
	"gorm.io/gorm"

	assessmentModel "eduanalytics_backend/internals/features/assessments/model"
	auditModel "eduanalytics_backend/internals/features/auditlog/model"
	classModel "eduanalytics_backend/internals/features/classes/model"
	parentModel "eduanalytics_backend/internals/features/parents/model"
	schoolModel "eduanalytics_backend/internals/features/schools/model"
	studentModel "eduanalytics_backend/internals/features/students/model"
	userModel "eduanalytics_backend/internals/features/users/model"
)

// DefaultRegistry lists every collection a backup covers, in restore order
// (referenced tables before referencing ones). The School row itself is
// "scoped" by its own primary key so a school-scoped archive carries it.
// Password resets have no tenant column and only travel in full backups.
func DefaultRegistry(db *gorm.DB) []Collection {
	return []Collection{
		ModelCollection[schoolModel.SchoolModel](db, "School", "school_id"),
		ModelCollection[userModel.UserModel](db, "User", "user_school_id"),
		ModelCollection[classModel.ClassModel](db, "Class", "class_school_id"),
		ModelCollection[studentModel.StudentModel](db, "Student", "student_school_id"),
		ModelCollection[assessmentModel.AssessmentModel](db, "Assessment", "assessment_school_id"),
		ModelCollection[assessmentModel.AssessmentResultModel](db, "AssessmentResult", "assessment_result_school_id"),
		ModelCollection[parentModel.ParentModel](db, "Parent", "parent_school_id"),
		ModelCollection[auditModel.AuditLogModel](db, "AuditLog", "audit_log_school_id"),
		ModelCollection[userModel.PasswordResetModel](db, "PasswordReset", ""),
	}
}
