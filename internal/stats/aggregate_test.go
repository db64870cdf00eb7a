package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"clinic-app-server/internal/models"
)

func scheduled(state models.AppointmentState, at time.Time) models.Appointment {
	return models.Appointment{State: state, ScheduledAt: &at}
}

func TestCountByDayFillsGaps(t *testing.T) {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	appts := []models.Appointment{
		scheduled(models.StatePending, time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)),
		scheduled(models.StateAccepted, time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)),
		scheduled(models.StateAccepted, time.Date(2026, 3, 4, 11, 0, 0, 0, time.UTC)),
	}

	out := CountByDay(appts, from, to)

	// One entry per calendar day in range, no gaps
	assert.Len(t, out, 5)
	assert.Equal(t, DayCount{Day: "2026-03-01", Count: 2}, out[0])
	assert.Equal(t, DayCount{Day: "2026-03-02", Count: 0}, out[1])
	assert.Equal(t, DayCount{Day: "2026-03-03", Count: 0}, out[2])
	assert.Equal(t, DayCount{Day: "2026-03-04", Count: 1}, out[3])
	assert.Equal(t, DayCount{Day: "2026-03-05", Count: 0}, out[4])
}

func TestCountByDaySkipsOutOfRangeAndUndated(t *testing.T) {
	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	appts := []models.Appointment{
		scheduled(models.StatePending, time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC)),
		scheduled(models.StatePending, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)),
		{State: models.StatePending}, // undated
	}

	out := CountByDay(appts, from, to)
	assert.Equal(t, []DayCount{{Day: "2026-03-02", Count: 1}}, out)
}

func TestCountByDayInvertedRange(t *testing.T) {
	from := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Empty(t, CountByDay(nil, from, to))
}

func TestCountBySpecialtyCollatedOrder(t *testing.T) {
	appts := []models.Appointment{
		{Specialty: "Nutrición"},
		{Specialty: "Cardiología"},
		{Specialty: "Cardiología"},
		{Specialty: ""},
		{Specialty: "Ñandutí"}, // ñ must sort after n
	}

	out := CountBySpecialty(appts)

	assert.Equal(t, []LabelCount{
		{Label: "—", Count: 1},
		{Label: "Cardiología", Count: 2},
		{Label: "Nutrición", Count: 1},
		{Label: "Ñandutí", Count: 1},
	}, out)
}

func TestCountBySpecialistBusiestFirst(t *testing.T) {
	perez := models.User{FirstName: "Luis", LastName: "Pérez"}
	gomez := models.User{FirstName: "Ana", LastName: "Gómez"}
	appts := []models.Appointment{
		{Specialist: gomez},
		{Specialist: perez},
		{Specialist: perez},
		{Specialist: models.User{}},
	}

	out := CountBySpecialist(appts)

	assert.Equal(t, LabelCount{Label: "Pérez, Luis", Count: 2}, out[0])
	// Tie between Gómez and the unnamed bucket breaks on collation
	assert.Equal(t, LabelCount{Label: "—", Count: 1}, out[1])
	assert.Equal(t, LabelCount{Label: "Gómez, Ana", Count: 1}, out[2])
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.Total)
	assert.Equal(t, 0, s.CompletionRate, "no division by zero on an empty snapshot")
}

func TestSummarizeKnownMix(t *testing.T) {
	appts := []models.Appointment{
		{State: models.StatePending},
		{State: models.StateAccepted},
		{State: models.StateCompleted},
		{State: models.StateCompleted},
		{State: models.StateCancelled},
	}

	s := Summarize(appts)

	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 1, s.Pending)
	assert.Equal(t, 1, s.Accepted)
	assert.Equal(t, 2, s.Completed)
	assert.Equal(t, 1, s.Cancelled)
	assert.Equal(t, 0, s.Rejected)
	assert.Equal(t, 40, s.CompletionRate)
}

func TestSummarizeCountsLegacyConfirmedAsAccepted(t *testing.T) {
	s := Summarize([]models.Appointment{{State: "confirmado"}})
	assert.Equal(t, 1, s.Accepted)
}

func TestSummarizeRoundsRate(t *testing.T) {
	appts := []models.Appointment{
		{State: models.StateCompleted},
		{State: models.StatePending},
		{State: models.StatePending},
	}
	// 1/3 = 33.33 -> 33
	assert.Equal(t, 33, Summarize(appts).CompletionRate)
}
