package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"clinic-app-server/internal/export"
	"clinic-app-server/internal/logger"
	"clinic-app-server/internal/models"
	"clinic-app-server/internal/stats"
	"clinic-app-server/internal/utils"
	"clinic-app-server/internal/viewmodel"
)

const rangeLayout = "2006-01-02"

// defaultRangeDays is the report window when the caller gives no range.
const defaultRangeDays = 30

// ReportHandler serves the admin statistics endpoints. The database narrows
// the snapshot to the requested window; the stats package does the grouping.
type ReportHandler struct {
	DB       *gorm.DB
	Exporter export.Exporter
}

// NewReportHandler creates a new ReportHandler with the standard CSV exporter.
func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{DB: db, Exporter: export.CSVExporter{}}
}

// parseRange reads ?from=YYYY-MM-DD&to=YYYY-MM-DD, falling back to the last
// 30 days. On a malformed value it writes the error response and reports false.
func parseRange(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now().UTC()
	to := now.Truncate(24 * time.Hour)
	from := to.AddDate(0, 0, -defaultRangeDays+1)

	var err error
	if s := c.Query("from"); s != "" {
		if from, err = time.Parse(rangeLayout, s); err != nil {
			utils.BadRequest(c, "Invalid 'from' date, expected YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
	}
	if s := c.Query("to"); s != "" {
		if to, err = time.Parse(rangeLayout, s); err != nil {
			utils.BadRequest(c, "Invalid 'to' date, expected YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
	}
	if to.Before(from) {
		utils.BadRequest(c, "'to' must not be before 'from'")
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

// fetchWindow loads the appointments scheduled inside [from, to] with their
// parties preloaded. The end of the window is inclusive by calendar day.
func (h *ReportHandler) fetchWindow(c *gin.Context, from, to time.Time) ([]models.Appointment, bool) {
	var appts []models.Appointment
	end := to.Add(24 * time.Hour)
	if err := h.DB.Preload("Patient").Preload("Specialist").
		Where("scheduled_at >= ? AND scheduled_at < ?", from, end).
		Find(&appts).Error; err != nil {
		logger.Log.Error("Failed to fetch report window", zap.Error(err))
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return nil, false
	}
	return appts, true
}

// GetAppointmentsByDay returns one zero-filled bucket per calendar day in the
// requested range.
func (h *ReportHandler) GetAppointmentsByDay(c *gin.Context) {
	from, to, ok := parseRange(c)
	if !ok {
		return
	}
	appts, ok := h.fetchWindow(c, from, to)
	if !ok {
		return
	}
	utils.Success(c, "Appointments by day fetched successfully", stats.CountByDay(appts, from, to))
}

// GetAppointmentsBySpecialty returns the per-specialty counts, collated
// alphabetically.
func (h *ReportHandler) GetAppointmentsBySpecialty(c *gin.Context) {
	from, to, ok := parseRange(c)
	if !ok {
		return
	}
	appts, ok := h.fetchWindow(c, from, to)
	if !ok {
		return
	}
	utils.Success(c, "Appointments by specialty fetched successfully", stats.CountBySpecialty(appts))
}

// GetAppointmentsBySpecialist returns the per-specialist counts, busiest first.
func (h *ReportHandler) GetAppointmentsBySpecialist(c *gin.Context) {
	from, to, ok := parseRange(c)
	if !ok {
		return
	}
	appts, ok := h.fetchWindow(c, from, to)
	if !ok {
		return
	}
	utils.Success(c, "Appointments by specialist fetched successfully", stats.CountBySpecialist(appts))
}

// GetSummary returns the KPI totals for the requested range.
func (h *ReportHandler) GetSummary(c *gin.Context) {
	from, to, ok := parseRange(c)
	if !ok {
		return
	}
	appts, ok := h.fetchWindow(c, from, to)
	if !ok {
		return
	}
	utils.Success(c, "Report summary fetched successfully", stats.Summarize(appts))
}

// ExportAppointments streams the projected rows of the requested range as a
// downloadable file.
func (h *ReportHandler) ExportAppointments(c *gin.Context) {
	from, to, ok := parseRange(c)
	if !ok {
		return
	}
	appts, ok := h.fetchWindow(c, from, to)
	if !ok {
		return
	}

	rows := viewmodel.ProjectAll(appts, models.RoleAdmin, time.Now())

	filename := "turnos-" + from.Format("20060102") + "-" + to.Format("20060102") + "." + h.Exporter.FileExtension()
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", h.Exporter.ContentType())

	if err := h.Exporter.Write(c.Writer, rows); err != nil {
		logger.Log.Error("Failed to write export", zap.String("filename", filename), zap.Error(err))
	}
}
