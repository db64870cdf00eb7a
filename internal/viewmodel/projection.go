// Package viewmodel flattens appointment rows into the display structures the
// clients render. All action flags are precomputed here from the lifecycle
// rules so templates never re-implement them.
package viewmodel

import (
	"sort"
	"strings"
	"time"

	"clinic-app-server/internal/lifecycle"
	"clinic-app-server/internal/models"
)

const (
	// NamePlaceholder is rendered when both name parts are missing.
	NamePlaceholder = "Sin datos"
	// DatePlaceholder is rendered when a row has no scheduled time.
	DatePlaceholder = "—"

	dateLayout = "02/01/2006"
	timeLayout = "15:04"
)

var stateLabels = map[models.AppointmentState]string{
	models.StatePending:   "Pendiente",
	models.StateAccepted:  "Aceptado",
	models.StateRejected:  "Rechazado",
	models.StateCompleted: "Realizado",
	models.StateCancelled: "Cancelado",
}

// AppointmentView is the flat, render-ready shape of an appointment.
type AppointmentView struct {
	ID               string `json:"id"`
	DisplayDate      string `json:"displayDate"`
	DisplayTime      string `json:"displayTime"`
	CounterpartyName string `json:"counterpartyName"`
	PatientName      string `json:"patientName"`
	SpecialistName   string `json:"specialistName"`
	Specialty        string `json:"specialty"`
	StateLabel       string `json:"stateLabel"`
	State            string `json:"state"`
	Review           string `json:"review,omitempty"`
	Location         string `json:"location,omitempty"`
	Notes            string `json:"notes,omitempty"`

	CanCancel       bool `json:"canCancel"`
	CanAccept       bool `json:"canAccept"`
	CanReject       bool `json:"canReject"`
	CanFinalize     bool `json:"canFinalize"`
	CanSubmitSurvey bool `json:"canSubmitSurvey"`
	CanViewReview   bool `json:"canViewReview"`
}

// FormatName renders "Apellido, Nombre". Missing parts degrade gracefully: a
// single present part is rendered alone (no dangling comma), and when both are
// missing the placeholder is returned. A null/undefined literal never leaks.
func FormatName(firstName, lastName string) string {
	first := strings.TrimSpace(firstName)
	last := strings.TrimSpace(lastName)
	switch {
	case first == "" && last == "":
		return NamePlaceholder
	case first == "":
		return last
	case last == "":
		return first
	}
	return last + ", " + first
}

// StateLabel returns the human-readable label for a state, accepting the
// legacy alias. Unknown states fall back to the raw value so the UI still
// shows something meaningful.
func StateLabel(s models.AppointmentState) string {
	if label, ok := stateLabels[lifecycle.NormalizeState(s)]; ok {
		return label
	}
	return string(s)
}

// Project maps one appointment (with its joined parties preloaded) to the view
// the given role renders. Patients see the specialist as counterparty and vice
// versa; admins see the patient side, with both full names always populated.
func Project(appt *models.Appointment, viewer models.Role, now time.Time) AppointmentView {
	patientName := FormatName(appt.Patient.FirstName, appt.Patient.LastName)
	specialistName := FormatName(appt.Specialist.FirstName, appt.Specialist.LastName)

	counterparty := specialistName
	if viewer == models.RoleSpecialist {
		counterparty = patientName
	}

	displayDate := DatePlaceholder
	displayTime := DatePlaceholder
	if appt.ScheduledAt != nil {
		displayDate = appt.ScheduledAt.Format(dateLayout)
		displayTime = appt.ScheduledAt.Format(timeLayout)
	}

	return AppointmentView{
		ID:               appt.ID,
		DisplayDate:      displayDate,
		DisplayTime:      displayTime,
		CounterpartyName: counterparty,
		PatientName:      patientName,
		SpecialistName:   specialistName,
		Specialty:        appt.Specialty,
		StateLabel:       StateLabel(appt.State),
		State:            string(lifecycle.NormalizeState(appt.State)),
		Review:           strings.TrimSpace(appt.Review),
		Location:         appt.Location,
		Notes:            appt.Notes,
		CanCancel:        lifecycle.CanCancel(appt, now),
		CanAccept:        lifecycle.CanAccept(appt),
		CanReject:        lifecycle.CanReject(appt),
		CanFinalize:      lifecycle.CanFinalize(appt),
		CanSubmitSurvey:  lifecycle.CanSubmitSurvey(appt),
		CanViewReview:    lifecycle.CanViewReview(appt),
	}
}

// ProjectAll maps a slice of appointments, ordered by scheduled time ascending
// with undated rows last.
func ProjectAll(appts []models.Appointment, viewer models.Role, now time.Time) []AppointmentView {
	sorted := make([]models.Appointment, len(appts))
	copy(sorted, appts)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].ScheduledAt, sorted[j].ScheduledAt
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.Before(*b)
	})

	views := make([]AppointmentView, len(sorted))
	for i := range sorted {
		views[i] = Project(&sorted[i], viewer, now)
	}
	return views
}
