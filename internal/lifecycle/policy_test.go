package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"clinic-app-server/internal/models"
)

func apptAt(state models.AppointmentState, scheduledAt *time.Time) *models.Appointment {
	return &models.Appointment{State: state, ScheduledAt: scheduledAt}
}

func timePtr(t time.Time) *time.Time { return &t }

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to models.AppointmentState
		want     bool
	}{
		{models.StatePending, models.StateAccepted, true},
		{models.StatePending, models.StateRejected, true},
		{models.StatePending, models.StateCancelled, true},
		{models.StatePending, models.StateCompleted, false},
		{models.StateAccepted, models.StateCompleted, true},
		{models.StateAccepted, models.StateCancelled, true},
		{models.StateAccepted, models.StateRejected, false},
		// Terminal states allow nothing
		{models.StateCompleted, models.StateCancelled, false},
		{models.StateRejected, models.StateAccepted, false},
		{models.StateCancelled, models.StatePending, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestNormalizeStateLegacyAlias(t *testing.T) {
	assert.Equal(t, models.StateAccepted, NormalizeState("confirmado"))
	assert.Equal(t, models.StatePending, NormalizeState(models.StatePending))
	// A confirmed appointment can be finalized just like an accepted one
	assert.True(t, CanTransition("confirmado", models.StateCompleted))
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(models.StatePending))
	assert.False(t, IsTerminal(models.StateAccepted))
	assert.True(t, IsTerminal(models.StateCompleted))
	assert.True(t, IsTerminal(models.StateRejected))
	assert.True(t, IsTerminal(models.StateCancelled))
	assert.False(t, IsTerminal("nonsense"))
}

func TestCanCancelCompletedNeverCancellable(t *testing.T) {
	now := time.Now()
	// Regardless of scheduled time, a completed appointment cannot be cancelled
	assert.False(t, CanCancel(apptAt(models.StateCompleted, timePtr(now.Add(48*time.Hour))), now))
	assert.False(t, CanCancel(apptAt(models.StateCompleted, timePtr(now.Add(-48*time.Hour))), now))
	assert.False(t, CanCancel(apptAt(models.StateCompleted, nil), now))
}

func TestCanCancelRequiresFutureTime(t *testing.T) {
	now := time.Now()
	yesterday := timePtr(now.Add(-24 * time.Hour))
	tomorrow := timePtr(now.Add(24 * time.Hour))

	// Pending in the past: state alone is not enough
	assert.False(t, CanCancel(apptAt(models.StatePending, yesterday), now))
	assert.True(t, CanCancel(apptAt(models.StatePending, tomorrow), now))

	// No scheduled time disables cancellation outright
	assert.False(t, CanCancel(apptAt(models.StatePending, nil), now))
}

func TestCanSubmitSurveyAllConditionsRequired(t *testing.T) {
	completed := func() *models.Appointment {
		return &models.Appointment{State: models.StateCompleted, Review: "evolución favorable"}
	}

	assert.True(t, CanSubmitSurvey(completed()))

	// Flip state
	a := completed()
	a.State = models.StateAccepted
	assert.False(t, CanSubmitSurvey(a))

	// Flip review: empty and whitespace-only both count as missing
	a = completed()
	a.Review = ""
	assert.False(t, CanSubmitSurvey(a))
	a.Review = "   "
	assert.False(t, CanSubmitSurvey(a))

	// Flip survey presence
	a = completed()
	a.Survey = &models.Survey{Rating: 5}
	assert.False(t, CanSubmitSurvey(a))
}

func TestPendingTomorrowScenario(t *testing.T) {
	now := time.Now()
	a := apptAt(models.StatePending, timePtr(now.Add(24*time.Hour)))

	assert.True(t, CanCancel(a, now))
	assert.True(t, CanAccept(a))
	assert.True(t, CanReject(a))
	assert.False(t, CanFinalize(a))
}

func TestAcceptedYesterdayScenario(t *testing.T) {
	now := time.Now()
	a := apptAt(models.StateAccepted, timePtr(now.Add(-24*time.Hour)))

	assert.False(t, CanCancel(a, now), "past appointments cannot be cancelled")
	assert.True(t, CanFinalize(a))
	assert.False(t, CanAccept(a))
	assert.False(t, CanReject(a))
}

func TestCanViewReview(t *testing.T) {
	assert.False(t, CanViewReview(&models.Appointment{}))
	assert.False(t, CanViewReview(&models.Appointment{Review: "  "}))
	assert.True(t, CanViewReview(&models.Appointment{Review: "control anual sin novedades"}))
}
