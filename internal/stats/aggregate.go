// Package stats computes the grouped counts behind the admin report charts.
// Everything here is a pure function over an in-memory snapshot; the handlers
// do the date-range filtering in the database before calling in.
package stats

import (
	"math"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"clinic-app-server/internal/lifecycle"
	"clinic-app-server/internal/models"
)

// MissingLabel groups rows whose label field is empty.
const MissingLabel = "—"

const dayKeyLayout = "2006-01-02"

// DayCount is one bar of the per-day chart.
type DayCount struct {
	Day   string `json:"day"` // UTC calendar day, YYYY-MM-DD
	Count int    `json:"count"`
}

// LabelCount is one slice/bar of a label-grouped chart.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Summary is the KPI header of the reports dashboard.
type Summary struct {
	Total          int `json:"total"`
	Pending        int `json:"pendiente"`
	Accepted       int `json:"aceptado"`
	Completed      int `json:"realizado"`
	Cancelled      int `json:"cancelado"`
	Rejected       int `json:"rechazado"`
	CompletionRate int `json:"completionRate"` // completed/total as rounded integer percent
}

// collator orders Spanish labels the way users expect (ñ after n, accents folded).
var collator = collate.New(language.Spanish, collate.IgnoreCase)

// CountByDay buckets appointments by UTC calendar day over [from, to],
// inclusive. Every day in the range appears exactly once, zero-filled, in
// ascending order. Rows outside the range or without a scheduled time are
// skipped.
func CountByDay(appts []models.Appointment, from, to time.Time) []DayCount {
	start := from.UTC().Truncate(24 * time.Hour)
	end := to.UTC().Truncate(24 * time.Hour)
	if end.Before(start) {
		return []DayCount{}
	}

	counts := make(map[string]int)
	for i := range appts {
		if appts[i].ScheduledAt == nil {
			continue
		}
		day := appts[i].ScheduledAt.UTC().Truncate(24 * time.Hour)
		if day.Before(start) || day.After(end) {
			continue
		}
		counts[day.Format(dayKeyLayout)]++
	}

	var out []DayCount
	for day := start; !day.After(end); day = day.Add(24 * time.Hour) {
		key := day.Format(dayKeyLayout)
		out = append(out, DayCount{Day: key, Count: counts[key]})
	}
	return out
}

// CountBySpecialty groups by the appointment's specialty field, alphabetically
// collated. Empty specialties land under MissingLabel.
func CountBySpecialty(appts []models.Appointment) []LabelCount {
	out := countByLabel(appts, func(a *models.Appointment) string {
		return strings.TrimSpace(a.Specialty)
	})
	sort.SliceStable(out, func(i, j int) bool {
		return collator.CompareString(out[i].Label, out[j].Label) < 0
	})
	return out
}

// CountBySpecialist groups by the joined specialist's "Apellido, Nombre" name,
// busiest first; ties break on the collated label.
func CountBySpecialist(appts []models.Appointment) []LabelCount {
	out := countByLabel(appts, func(a *models.Appointment) string {
		first := strings.TrimSpace(a.Specialist.FirstName)
		last := strings.TrimSpace(a.Specialist.LastName)
		switch {
		case first == "" && last == "":
			return ""
		case first == "":
			return last
		case last == "":
			return first
		}
		return last + ", " + first
	})
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return collator.CompareString(out[i].Label, out[j].Label) < 0
	})
	return out
}

func countByLabel(appts []models.Appointment, key func(*models.Appointment) string) []LabelCount {
	counts := make(map[string]int)
	for i := range appts {
		label := key(&appts[i])
		if label == "" {
			label = MissingLabel
		}
		counts[label]++
	}
	out := make([]LabelCount, 0, len(counts))
	for label, count := range counts {
		out = append(out, LabelCount{Label: label, Count: count})
	}
	return out
}

// Summarize computes the KPI totals. The completion rate is completed/total
// rounded to the nearest integer percent, and 0 for an empty snapshot.
func Summarize(appts []models.Appointment) Summary {
	s := Summary{Total: len(appts)}
	for i := range appts {
		switch lifecycle.NormalizeState(appts[i].State) {
		case models.StatePending:
			s.Pending++
		case models.StateAccepted:
			s.Accepted++
		case models.StateCompleted:
			s.Completed++
		case models.StateCancelled:
			s.Cancelled++
		case models.StateRejected:
			s.Rejected++
		}
	}
	if s.Total > 0 {
		s.CompletionRate = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}
	return s
}
