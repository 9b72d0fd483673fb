// file: internals/features/schools/model/school_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SchoolAddress struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
}

type SchoolContact struct {
	Phone         string `json:"phone,omitempty"`
	Email         string `json:"email,omitempty"`
	PrincipalName string `json:"principal_name,omitempty"`
}

// Subscription plan limits what a tenant may store; mutated only by system
// administrators.
type SchoolSubscription struct {
	Plan          string     `json:"plan"`
	StartDate     *time.Time `json:"start_date,omitempty"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	StudentsLimit int        `json:"students_limit"`
}

type TermDates struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

type TermCalendar struct {
	Term1 TermDates `json:"term1"`
	Term2 TermDates `json:"term2"`
	Term3 TermDates `json:"term3"`
	Term4 TermDates `json:"term4"`
}

type SchoolSettings struct {
	AcademicYear int          `json:"academic_year"`
	Terms        TermCalendar `json:"terms"`
}

type SchoolModel struct {
	SchoolID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:school_id" json:"school_id"`
	SchoolName       string    `gorm:"type:text;not null;column:school_name" json:"school_name"`
	SchoolEmisNumber string    `gorm:"type:varchar(32);not null;uniqueIndex:ux_schools_emis_number;column:school_emis_number" json:"school_emis_number"`
	SchoolProvince   string    `gorm:"type:text;not null;column:school_province" json:"school_province"`
	SchoolDistrict   string    `gorm:"type:text;not null;column:school_district" json:"school_district"`

	SchoolAddress      datatypes.JSONType[SchoolAddress]      `gorm:"type:jsonb;column:school_address" json:"school_address"`
	SchoolContact      datatypes.JSONType[SchoolContact]      `gorm:"type:jsonb;column:school_contact" json:"school_contact"`
	SchoolSubscription datatypes.JSONType[SchoolSubscription] `gorm:"type:jsonb;column:school_subscription" json:"school_subscription"`
	SchoolSettings     datatypes.JSONType[SchoolSettings]     `gorm:"type:jsonb;column:school_settings" json:"school_settings"`

	SchoolCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:school_created_at" json:"school_created_at"`
	SchoolUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:school_updated_at" json:"school_updated_at"`
}

func (SchoolModel) TableName() string { return "schools" }

func (m *SchoolModel) BeforeSave(tx *gorm.DB) error {
	m.SchoolName = strings.TrimSpace(m.SchoolName)
	m.SchoolEmisNumber = strings.TrimSpace(m.SchoolEmisNumber)

	// New tenants start on a trial plan with the default head-count cap.
	sub := m.SchoolSubscription.Data()
	if sub.Plan == "" {
		sub.Plan = "trial"
	}
	if sub.StudentsLimit == 0 {
		sub.StudentsLimit = 100
	}
	m.SchoolSubscription = datatypes.NewJSONType(sub)

	settings := m.SchoolSettings.Data()
	if settings.AcademicYear == 0 {
		settings.AcademicYear = time.Now().Year()
	}
	m.SchoolSettings = datatypes.NewJSONType(settings)
	return nil
}
