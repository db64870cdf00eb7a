package models

import (
	"strings"
	"time"
)

// AppointmentState represents the lifecycle state of an appointment.
// The wire values are the canonical Spanish labels used across the product.
type AppointmentState string

const (
	StatePending   AppointmentState = "pendiente"
	StateAccepted  AppointmentState = "aceptado"
	StateRejected  AppointmentState = "rechazado"
	StateCompleted AppointmentState = "realizado"
	StateCancelled AppointmentState = "cancelado"
)

// Appointment represents a scheduled consultation between a patient and a specialist.
type Appointment struct {
	BaseModel
	PatientID    string           `gorm:"size:36;index" json:"patientId"`
	SpecialistID string           `gorm:"size:36;index" json:"specialistId"`
	Specialty    string           `gorm:"size:100" json:"specialty"`
	ScheduledAt  *time.Time       `gorm:"index" json:"scheduledAt"` // Immutable once set; nil on legacy rows
	State        AppointmentState `gorm:"size:20;default:'pendiente'" json:"state"`
	StateReason  string           `gorm:"size:255" json:"stateReason,omitempty"` // Cancellation/rejection note
	Review       string           `gorm:"type:text" json:"review,omitempty"`     // Specialist note after completion
	Location     string           `gorm:"size:255" json:"location,omitempty"`
	Notes        string           `gorm:"type:text" json:"notes,omitempty"`

	// Relations
	Patient    User    `gorm:"foreignKey:PatientID" json:"-"`
	Specialist User    `gorm:"foreignKey:SpecialistID" json:"-"`
	Survey     *Survey `gorm:"foreignKey:AppointmentID" json:"survey,omitempty"`
}

// HasReview reports whether the specialist left a non-empty review.
// A whitespace-only review counts as absent.
func (a *Appointment) HasReview() bool {
	return strings.TrimSpace(a.Review) != ""
}

// HasSurvey reports whether the patient already submitted the post-visit survey.
func (a *Appointment) HasSurvey() bool {
	return a.Survey != nil
}

// Survey is the patient's post-visit feedback. It may only be attached once the
// appointment reached the completed state.
type Survey struct {
	BaseModel
	AppointmentID string    `gorm:"size:36;uniqueIndex" json:"appointmentId"`
	Rating        int       `gorm:"not null" json:"rating"` // 1..5 stars
	Comment       string    `gorm:"type:text" json:"comment,omitempty"`
	SubmittedAt   time.Time `json:"submittedAt"`
}
