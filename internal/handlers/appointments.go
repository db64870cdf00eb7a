package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"clinic-app-server/internal/lifecycle"
	"clinic-app-server/internal/logger"
	"clinic-app-server/internal/middleware"
	"clinic-app-server/internal/models"
	"clinic-app-server/internal/utils"
	"clinic-app-server/internal/viewmodel"
)

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	DB *gorm.DB
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB) *AppointmentHandler {
	return &AppointmentHandler{DB: db}
}

// CreateAppointmentRequest represents the request body for booking an appointment.
type CreateAppointmentRequest struct {
	SpecialistID string    `json:"specialistId" binding:"required,uuid"`
	PatientID    string    `json:"patientId" binding:"required,uuid"`
	Specialty    string    `json:"specialty" binding:"required"`
	ScheduledAt  time.Time `json:"scheduledAt" binding:"required"`
	Location     string    `json:"location"`
	Notes        string    `json:"notes"`
}

// CreateAppointment handles booking a new appointment.
// Typically initiated by a patient; admins may book on a patient's behalf.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	requesterID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User ID not found in token")
		return
	}
	requesterRole, _ := middleware.GetUserRoleFromContext(c)
	if requesterRole == models.RolePatient && requesterID != req.PatientID {
		utils.Forbidden(c, "Patients can only book appointments for themselves.")
		return
	}

	specialistID, err := uuid.Parse(req.SpecialistID)
	if err != nil {
		utils.BadRequest(c, "Invalid Specialist ID format")
		return
	}
	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		utils.BadRequest(c, "Invalid Patient ID format")
		return
	}

	// Verify the specialist exists, holds the role and was approved by an admin
	var specialist models.User
	if err := h.DB.Where("id = ? AND role = ?", specialistID, models.RoleSpecialist).First(&specialist).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Specialist not found or user is not a specialist")
		} else {
			utils.InternalServerError(c, "Database error verifying specialist: "+err.Error())
		}
		return
	}
	if !specialist.IsApproved {
		utils.BadRequest(c, "Specialist is not yet approved to take appointments.")
		return
	}

	// Verify patient exists
	var patient models.User
	if err := h.DB.Where("id = ? AND role = ?", patientID, models.RolePatient).First(&patient).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error verifying patient: "+err.Error())
		}
		return
	}

	if req.ScheduledAt.Before(time.Now()) {
		utils.BadRequest(c, "Appointment date must be in the future.")
		return
	}

	scheduledAt := req.ScheduledAt
	appointment := models.Appointment{
		PatientID:    req.PatientID,
		SpecialistID: req.SpecialistID,
		Specialty:    req.Specialty,
		ScheduledAt:  &scheduledAt,
		Location:     req.Location,
		Notes:        req.Notes,
		State:        models.StatePending,
	}

	if err := h.DB.Create(&appointment).Error; err != nil {
		logger.Log.Error("Failed to create appointment", zap.Error(err))
		utils.InternalServerError(c, "Failed to create appointment: "+err.Error())
		return
	}

	utils.Created(c, "Appointment created successfully", appointment)
}

// GetAppointmentsForUser handles fetching appointments for the logged-in user.
// Patients and specialists see their own; admins see all. Rows are returned as
// render-ready views with the action flags precomputed.
func (h *AppointmentHandler) GetAppointmentsForUser(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	userRole, _ := middleware.GetUserRoleFromContext(c)

	var appointments []models.Appointment
	var err error

	query := h.DB.Preload("Patient").Preload("Specialist").Preload("Survey")

	switch userRole {
	case models.RolePatient:
		err = query.Where("patient_id = ?", userID).Find(&appointments).Error
	case models.RoleSpecialist:
		err = query.Where("specialist_id = ?", userID).Find(&appointments).Error
	case models.RoleAdmin:
		err = query.Find(&appointments).Error
	default:
		utils.Forbidden(c, "User role not permitted to view appointments. Role: "+string(userRole))
		return
	}

	if err != nil {
		logger.Log.Error("Failed to fetch appointments", zap.String("userID", userID), zap.Error(err))
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	views := viewmodel.ProjectAll(appointments, userRole, time.Now())
	utils.Success(c, "Appointments fetched successfully", views)
}

// loadAppointment fetches one appointment with its parties and survey, or
// writes the error response and returns nil.
func (h *AppointmentHandler) loadAppointment(c *gin.Context) *models.Appointment {
	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid Appointment ID format")
		return nil
	}

	var appointment models.Appointment
	if err := h.DB.Preload("Patient").Preload("Specialist").Preload("Survey").
		First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil
	}
	return &appointment
}

// GetAppointmentByID handles fetching a single appointment by its ID.
// Accessible by the involved patient, the involved specialist, or an admin.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	appointment := h.loadAppointment(c)
	if appointment == nil {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)

	isPatientInvolved := userID == appointment.PatientID
	isSpecialistInvolved := userID == appointment.SpecialistID

	if userRole != models.RoleAdmin && !isPatientInvolved && !isSpecialistInvolved {
		utils.Forbidden(c, "You are not authorized to view this appointment")
		return
	}

	utils.Success(c, "Appointment fetched successfully", viewmodel.Project(appointment, userRole, time.Now()))
}

// UpdateAppointmentStatusRequest represents the request body for a state change.
// "confirmado" is accepted as a legacy alias of "aceptado". Completion goes
// through the review endpoint instead, since it requires a review text.
type UpdateAppointmentStatusRequest struct {
	State  models.AppointmentState `json:"state" binding:"required,oneof=aceptado confirmado rechazado cancelado"`
	Reason string                  `json:"reason"`
}

// UpdateAppointmentStatus handles accept/reject/cancel transitions. The
// lifecycle rules are enforced here, server-side, before anything persists;
// a client skipping its own button gating changes nothing.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	var req UpdateAppointmentStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	target := lifecycle.NormalizeState(req.State)

	// Rejections and cancellations must carry a meaningful reason
	if target == models.StateRejected || target == models.StateCancelled {
		if len(req.Reason) < 10 {
			utils.BadRequest(c, "A reason of at least 10 characters is required.")
			return
		}
	}

	appointment := h.loadAppointment(c)
	if appointment == nil {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)

	// Role rules: the specialist involved accepts/rejects/cancels, the patient
	// involved cancels, an admin cancels any.
	allowed := false
	switch userRole {
	case models.RoleAdmin:
		allowed = target == models.StateCancelled
	case models.RoleSpecialist:
		allowed = userID == appointment.SpecialistID
	case models.RolePatient:
		allowed = userID == appointment.PatientID && target == models.StateCancelled
	}
	if !allowed {
		utils.Forbidden(c, "You are not authorized to perform this state change.")
		return
	}

	// Lifecycle gate: cancellations also require a future scheduled time
	if target == models.StateCancelled {
		if !lifecycle.CanCancel(appointment, time.Now()) {
			utils.Conflict(c, "This appointment can no longer be cancelled.")
			return
		}
	} else if !lifecycle.CanTransition(appointment.State, target) {
		utils.Conflict(c, "Transition from '"+string(appointment.State)+"' to '"+string(target)+"' is not allowed.")
		return
	}

	appointment.State = target
	if req.Reason != "" {
		appointment.StateReason = req.Reason
	}

	if err := h.DB.Save(appointment).Error; err != nil {
		logger.Log.Error("Failed to update appointment state",
			zap.String("appointmentID", appointment.ID), zap.String("target", string(target)), zap.Error(err))
		utils.InternalServerError(c, "Failed to update appointment state: "+err.Error())
		return
	}

	utils.Success(c, "Appointment state updated successfully", viewmodel.Project(appointment, userRole, time.Now()))
}

// FinalizeAppointmentRequest represents the request body for completing an
// appointment with the specialist's review.
type FinalizeAppointmentRequest struct {
	Review string `json:"review" binding:"required,min=10"`
}

// FinalizeAppointment marks an accepted appointment as completed and stores
// the specialist's review. Only the involved specialist may do this.
func (h *AppointmentHandler) FinalizeAppointment(c *gin.Context) {
	var req FinalizeAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appointment := h.loadAppointment(c)
	if appointment == nil {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	if userID != appointment.SpecialistID {
		utils.Forbidden(c, "Only the specialist involved can finalize this appointment.")
		return
	}

	if !lifecycle.CanFinalize(appointment) {
		utils.Conflict(c, "Only accepted appointments can be finalized.")
		return
	}

	appointment.State = models.StateCompleted
	appointment.Review = req.Review

	if err := h.DB.Save(appointment).Error; err != nil {
		logger.Log.Error("Failed to finalize appointment", zap.String("appointmentID", appointment.ID), zap.Error(err))
		utils.InternalServerError(c, "Failed to finalize appointment: "+err.Error())
		return
	}

	utils.Success(c, "Appointment finalized successfully", viewmodel.Project(appointment, models.RoleSpecialist, time.Now()))
}

// SubmitSurveyRequest represents the request body for the post-visit survey.
type SubmitSurveyRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// SubmitSurvey attaches the patient's post-visit survey. Allowed only once the
// appointment is completed and the specialist left a review, and only once.
func (h *AppointmentHandler) SubmitSurvey(c *gin.Context) {
	var req SubmitSurveyRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appointment := h.loadAppointment(c)
	if appointment == nil {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	if userID != appointment.PatientID {
		utils.Forbidden(c, "Only the patient involved can submit the survey.")
		return
	}

	if !lifecycle.CanSubmitSurvey(appointment) {
		utils.Conflict(c, "The survey cannot be submitted for this appointment.")
		return
	}

	survey := models.Survey{
		AppointmentID: appointment.ID,
		Rating:        req.Rating,
		Comment:       req.Comment,
		SubmittedAt:   time.Now(),
	}

	if err := h.DB.Create(&survey).Error; err != nil {
		logger.Log.Error("Failed to store survey", zap.String("appointmentID", appointment.ID), zap.Error(err))
		utils.InternalServerError(c, "Failed to store survey: "+err.Error())
		return
	}

	utils.Created(c, "Survey submitted successfully", survey)
}
