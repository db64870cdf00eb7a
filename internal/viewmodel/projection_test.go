package viewmodel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"clinic-app-server/internal/models"
)

func TestFormatName(t *testing.T) {
	assert.Equal(t, "Pérez, Juan", FormatName("Juan", "Pérez"))
	// One missing part renders the other alone, no dangling comma or space
	assert.Equal(t, "Pérez", FormatName("", "Pérez"))
	assert.Equal(t, "Juan", FormatName("Juan", ""))
	assert.Equal(t, NamePlaceholder, FormatName("", ""))
	assert.Equal(t, NamePlaceholder, FormatName("  ", "  "))
}

func TestProjectCounterpartyByViewer(t *testing.T) {
	now := time.Now()
	when := now.Add(48 * time.Hour)
	appt := &models.Appointment{
		State:       models.StatePending,
		ScheduledAt: &when,
		Specialty:   "Cardiología",
		Patient:     models.User{FirstName: "Ana", LastName: "Gómez"},
		Specialist:  models.User{FirstName: "Luis", LastName: "Pérez"},
	}

	patientView := Project(appt, models.RolePatient, now)
	assert.Equal(t, "Pérez, Luis", patientView.CounterpartyName)

	specialistView := Project(appt, models.RoleSpecialist, now)
	assert.Equal(t, "Gómez, Ana", specialistView.CounterpartyName)

	adminView := Project(appt, models.RoleAdmin, now)
	assert.Equal(t, "Gómez, Ana", adminView.PatientName)
	assert.Equal(t, "Pérez, Luis", adminView.SpecialistName)
}

func TestProjectMissingJoinedName(t *testing.T) {
	now := time.Now()
	when := now.Add(time.Hour)
	appt := &models.Appointment{
		State:       models.StatePending,
		ScheduledAt: &when,
		Specialist:  models.User{FirstName: "", LastName: "Pérez"},
	}

	view := Project(appt, models.RolePatient, now)
	assert.Equal(t, "Pérez", view.CounterpartyName)
	assert.NotContains(t, view.CounterpartyName, ",")
	assert.NotContains(t, view.CounterpartyName, "null")
}

func TestProjectFlagsAndLabels(t *testing.T) {
	now := time.Now()
	when := now.Add(24 * time.Hour)
	appt := &models.Appointment{
		State:       models.StatePending,
		ScheduledAt: &when,
	}

	view := Project(appt, models.RoleSpecialist, now)
	assert.Equal(t, "Pendiente", view.StateLabel)
	assert.True(t, view.CanAccept)
	assert.True(t, view.CanReject)
	assert.True(t, view.CanCancel)
	assert.False(t, view.CanFinalize)
	assert.False(t, view.CanSubmitSurvey)
	assert.False(t, view.CanViewReview)
}

func TestProjectLegacyConfirmedState(t *testing.T) {
	now := time.Now()
	when := now.Add(time.Hour)
	appt := &models.Appointment{State: "confirmado", ScheduledAt: &when}

	view := Project(appt, models.RolePatient, now)
	assert.Equal(t, "Aceptado", view.StateLabel)
	assert.Equal(t, "aceptado", view.State)
	assert.True(t, view.CanFinalize)
}

func TestProjectNoScheduledTime(t *testing.T) {
	now := time.Now()
	appt := &models.Appointment{State: models.StatePending}

	view := Project(appt, models.RolePatient, now)
	assert.Equal(t, DatePlaceholder, view.DisplayDate)
	assert.Equal(t, DatePlaceholder, view.DisplayTime)
	assert.False(t, view.CanCancel, "date-dependent actions disabled without a scheduled time")
}

func TestProjectAllSortsUndatedLast(t *testing.T) {
	now := time.Now()
	early := now.Add(1 * time.Hour)
	late := now.Add(72 * time.Hour)
	appts := []models.Appointment{
		{BaseModel: models.BaseModel{ID: "b"}, State: models.StatePending, ScheduledAt: &late},
		{BaseModel: models.BaseModel{ID: "c"}, State: models.StatePending}, // undated
		{BaseModel: models.BaseModel{ID: "a"}, State: models.StatePending, ScheduledAt: &early},
	}

	views := ProjectAll(appts, models.RoleAdmin, now)
	assert.Equal(t, []string{"a", "b", "c"}, []string{views[0].ID, views[1].ID, views[2].ID})
}
