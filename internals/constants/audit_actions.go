package constants

// Audit log actions. Kept as plain strings so the log table stays readable.
const (
	ActionUserLogin            = "USER_LOGIN"
	ActionUserLogout           = "USER_LOGOUT"
	ActionUserCreate           = "USER_CREATE"
	ActionUserUpdate           = "USER_UPDATE"
	ActionUserDelete           = "USER_DELETE"
	ActionStudentCreate        = "STUDENT_CREATE"
	ActionStudentUpdate        = "STUDENT_UPDATE"
	ActionStudentDelete        = "STUDENT_DELETE"
	ActionAssessmentCreate     = "ASSESSMENT_CREATE"
	ActionAssessmentUpdate     = "ASSESSMENT_UPDATE"
	ActionAssessmentDelete     = "ASSESSMENT_DELETE"
	ActionMarksEntry           = "MARKS_ENTRY"
	ActionMarksUpdate          = "MARKS_UPDATE"
	ActionReportGenerate       = "REPORT_GENERATE"
	ActionBackupCreate         = "BACKUP_CREATE"
	ActionBackupRestore        = "BACKUP_RESTORE"
	ActionSystemBackup         = "SYSTEM_BACKUP"
	ActionSettingsUpdate       = "SYSTEM_SETTINGS_UPDATE"
	ActionSubscriptionUpdate   = "SUBSCRIPTION_UPDATE"
	ActionPasswordReset        = "PASSWORD_RESET"
	ActionParentRegister       = "PARENT_REGISTER"
	ActionParentLogin          = "PARENT_LOGIN"
	ActionParentAccess         = "PARENT_ACCESS"
)

const (
	AuditStatusSuccess = "SUCCESS"
	AuditStatusFailure = "FAILURE"
)
