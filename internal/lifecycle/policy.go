// Package lifecycle is the single source of truth for appointment state rules.
// Every handler that mutates an appointment goes through CanTransition, and the
// view-model layer derives its action flags from the same predicates, so the
// rules cannot drift between surfaces.
package lifecycle

import (
	"time"

	"clinic-app-server/internal/models"
)

// transitions is the closed transition graph. Anything not listed is forbidden,
// which also makes the three terminal states (realizado, rechazado, cancelado)
// dead ends by construction.
var transitions = map[models.AppointmentState][]models.AppointmentState{
	models.StatePending:  {models.StateAccepted, models.StateRejected, models.StateCancelled},
	models.StateAccepted: {models.StateCompleted, models.StateCancelled},
}

// NormalizeState maps legacy aliases onto the canonical state set. The old
// client emitted "confirmado" for what the rest of the product calls
// "aceptado"; it is accepted on input and never produced on output.
func NormalizeState(s models.AppointmentState) models.AppointmentState {
	if s == "confirmado" {
		return models.StateAccepted
	}
	return s
}

// IsValidState reports whether s belongs to the canonical state set.
func IsValidState(s models.AppointmentState) bool {
	switch s {
	case models.StatePending, models.StateAccepted, models.StateRejected,
		models.StateCompleted, models.StateCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func IsTerminal(s models.AppointmentState) bool {
	return IsValidState(s) && len(transitions[s]) == 0
}

// CanTransition reports whether the state machine allows moving from one state
// to another. Both sides are normalized first.
func CanTransition(from, to models.AppointmentState) bool {
	from = NormalizeState(from)
	to = NormalizeState(to)
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanCancel reports whether the appointment can still be cancelled: the state
// must be non-terminal and the scheduled time still in the future. Rows without
// a scheduled time are never cancellable.
func CanCancel(appt *models.Appointment, now time.Time) bool {
	if !CanTransition(appt.State, models.StateCancelled) {
		return false
	}
	if appt.ScheduledAt == nil {
		return false
	}
	return appt.ScheduledAt.After(now)
}

// CanAccept reports whether the specialist may accept the appointment.
func CanAccept(appt *models.Appointment) bool {
	return CanTransition(appt.State, models.StateAccepted)
}

// CanReject reports whether the specialist may reject the appointment.
func CanReject(appt *models.Appointment) bool {
	return CanTransition(appt.State, models.StateRejected)
}

// CanFinalize reports whether the specialist may mark the appointment as
// completed (which requires leaving a review).
func CanFinalize(appt *models.Appointment) bool {
	return CanTransition(appt.State, models.StateCompleted)
}

// CanSubmitSurvey reports whether the patient may attach the post-visit survey:
// only on a completed appointment whose specialist already left a review, and
// only once.
func CanSubmitSurvey(appt *models.Appointment) bool {
	return NormalizeState(appt.State) == models.StateCompleted &&
		appt.HasReview() &&
		!appt.HasSurvey()
}

// CanViewReview reports whether there is a specialist review to show.
func CanViewReview(appt *models.Appointment) bool {
	return appt.HasReview()
}
