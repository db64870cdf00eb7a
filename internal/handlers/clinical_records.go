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
)

// maxRecordExtras caps the free-form key/value pairs per clinical record.
const maxRecordExtras = 3

// ClinicalRecordHandler handles clinical history requests.
type ClinicalRecordHandler struct {
	DB *gorm.DB
}

// NewClinicalRecordHandler creates a new ClinicalRecordHandler.
func NewClinicalRecordHandler(db *gorm.DB) *ClinicalRecordHandler {
	return &ClinicalRecordHandler{DB: db}
}

// RecordExtraRequest is one free key/value pair in a create request.
type RecordExtraRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// CreateClinicalRecordRequest represents the request body for recording the
// vitals of a completed appointment.
type CreateClinicalRecordRequest struct {
	AppointmentID string               `json:"appointmentId" binding:"required,uuid"`
	HeightCm      float64              `json:"heightCm" binding:"required,gt=0"`
	WeightKg      float64              `json:"weightKg" binding:"required,gt=0"`
	TemperatureC  float64              `json:"temperatureC" binding:"required,gt=0"`
	BloodPressure string               `json:"bloodPressure" binding:"required"`
	Extras        []RecordExtraRequest `json:"extras"`
}

// CreateClinicalRecord handles creating the clinical record for a completed
// appointment. Only the specialist who attended it may write one, and only once.
func (h *ClinicalRecordHandler) CreateClinicalRecord(c *gin.Context) {
	var req CreateClinicalRecordRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if len(req.Extras) > maxRecordExtras {
		utils.BadRequest(c, "A clinical record allows at most 3 extra values")
		return
	}

	specialistID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Specialist ID not found in token")
		return
	}

	appointmentID, err := uuid.Parse(req.AppointmentID)
	if err != nil {
		utils.BadRequest(c, "Invalid Appointment ID format")
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error verifying appointment: "+err.Error())
		}
		return
	}

	if appointment.SpecialistID != specialistID {
		utils.Forbidden(c, "Only the specialist who attended the appointment can record its vitals.")
		return
	}
	if lifecycle.NormalizeState(appointment.State) != models.StateCompleted {
		utils.Conflict(c, "Clinical records can only be created for completed appointments.")
		return
	}

	var existing models.ClinicalRecord
	if err := h.DB.Where("appointment_id = ?", appointment.ID).First(&existing).Error; err == nil {
		utils.Conflict(c, "A clinical record already exists for this appointment.")
		return
	} else if err != gorm.ErrRecordNotFound {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	record := models.ClinicalRecord{
		PatientID:     appointment.PatientID,
		SpecialistID:  appointment.SpecialistID,
		AppointmentID: appointment.ID,
		RecordDate:    time.Now(),
		HeightCm:      req.HeightCm,
		WeightKg:      req.WeightKg,
		TemperatureC:  req.TemperatureC,
		BloodPressure: req.BloodPressure,
	}
	for _, extra := range req.Extras {
		record.Extras = append(record.Extras, models.ClinicalRecordExtra{
			Key:   extra.Key,
			Value: extra.Value,
		})
	}

	if err := h.DB.Create(&record).Error; err != nil {
		logger.Log.Error("Failed to create clinical record",
			zap.String("appointmentID", appointment.ID), zap.Error(err))
		utils.InternalServerError(c, "Failed to create clinical record: "+err.Error())
		return
	}

	utils.Created(c, "Clinical record created successfully", record)
}

// GetClinicalRecordsForPatient handles fetching the clinical history of a patient.
// Patients see their own history; specialists see the entries they authored;
// admins see everything.
func (h *ClinicalRecordHandler) GetClinicalRecordsForPatient(c *gin.Context) {
	patientIDStr := c.Param("patientId")
	if _, err := uuid.Parse(patientIDStr); err != nil {
		utils.BadRequest(c, "Invalid Patient ID format: "+patientIDStr)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)

	query := h.DB.Preload("Extras").Where("patient_id = ?", patientIDStr).Order("record_date desc")

	switch userRole {
	case models.RoleAdmin:
		// Full history
	case models.RoleSpecialist:
		query = query.Where("specialist_id = ?", userID)
	case models.RolePatient:
		if userID != patientIDStr {
			utils.Forbidden(c, "You are not authorized to view this clinical history")
			return
		}
	default:
		utils.Forbidden(c, "You are not authorized to view clinical histories")
		return
	}

	var records []models.ClinicalRecord
	if err := query.Find(&records).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch clinical records: "+err.Error())
		return
	}

	utils.Success(c, "Clinical records fetched successfully", records)
}

// GetClinicalRecordByID handles fetching a single clinical record.
// Accessible by the patient it belongs to, the authoring specialist, or an admin.
func (h *ClinicalRecordHandler) GetClinicalRecordByID(c *gin.Context) {
	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid Clinical Record ID format")
		return
	}

	var record models.ClinicalRecord
	if err := h.DB.Preload("Extras").First(&record, "id = ?", recordID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Clinical record not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)

	if userRole != models.RoleAdmin && userID != record.PatientID && userID != record.SpecialistID {
		utils.Forbidden(c, "You are not authorized to view this clinical record")
		return
	}

	utils.Success(c, "Clinical record fetched successfully", record)
}
