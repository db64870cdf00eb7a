package models

import (
	"time"
)

// ClinicalRecord represents the vitals a specialist captures after completing an
// appointment, plus a handful of free-form extra values.
type ClinicalRecord struct {
	BaseModel
	PatientID     string    `gorm:"size:36;index" json:"patientId"`
	SpecialistID  string    `gorm:"size:36;index" json:"specialistId"`
	AppointmentID string    `gorm:"size:36;uniqueIndex" json:"appointmentId"`
	RecordDate    time.Time `json:"recordDate"`
	HeightCm      float64   `json:"heightCm"`
	WeightKg      float64   `json:"weightKg"`
	TemperatureC  float64   `json:"temperatureC"`
	BloodPressure string    `gorm:"size:20" json:"bloodPressure"` // e.g. "120/80"

	// Relations
	Patient    User                  `gorm:"foreignKey:PatientID" json:"-"`
	Specialist User                  `gorm:"foreignKey:SpecialistID" json:"-"`
	Extras     []ClinicalRecordExtra `gorm:"foreignKey:ClinicalRecordID" json:"extras,omitempty"`
}

// ClinicalRecordExtra is a free key/value pair attached to a clinical record
// (e.g. "caries": "4"). At most three per record, enforced at the handler.
type ClinicalRecordExtra struct {
	BaseModel
	ClinicalRecordID string `gorm:"size:36;index;not null" json:"clinicalRecordId"`
	Key              string `gorm:"size:100;not null" json:"key"`
	Value            string `gorm:"size:255;not null" json:"value"`
}
