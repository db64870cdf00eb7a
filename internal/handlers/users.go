package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-app-server/internal/middleware"
	"clinic-app-server/internal/models"
	"clinic-app-server/internal/utils"
)

// UserHandler handles user-related requests (typically admin operations).
type UserHandler struct {
	DB *gorm.DB
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{DB: db}
}

// CreateUserRequest represents the request body for creating a user by an admin.
type CreateUserRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Role      string `json:"role" binding:"required,oneof=paciente especialista admin"`
	Specialty string `json:"specialty"`
}

// CreateUser handles creating a new user (admin).
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if models.Role(req.Role) == models.RoleSpecialist && req.Specialty == "" {
		utils.BadRequest(c, "Specialists require a specialty")
		return
	}

	var existingUser models.User
	if err := h.DB.Where("email = ?", req.Email).First(&existingUser).Error; err == nil {
		utils.BadRequest(c, "User with this email already exists")
		return
	} else if err != gorm.ErrRecordNotFound {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	user := models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      models.Role(req.Role),
		Specialty: req.Specialty,
		// Admin-created accounts are trusted, specialists included
		IsApproved: true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to hash password: "+err.Error())
		return
	}

	if err := h.DB.Create(&user).Error; err != nil {
		utils.InternalServerError(c, "Failed to create user: "+err.Error())
		return
	}

	utils.Created(c, "User created successfully", user.Sanitize())
}

// GetUsers handles fetching all users (admin).
func (h *UserHandler) GetUsers(c *gin.Context) {
	var users []models.User
	if err := h.DB.Find(&users).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch users: "+err.Error())
		return
	}

	sanitizedUsers := make([]models.UserSanitized, len(users))
	for i, u := range users {
		sanitizedUsers[i] = u.Sanitize()
	}

	utils.Success(c, "Users fetched successfully", sanitizedUsers)
}

// GetUserByID handles fetching a single user by ID (admin).
func (h *UserHandler) GetUserByID(c *gin.Context) {
	userID := c.Param("id")

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	utils.Success(c, "User fetched successfully", user.Sanitize())
}

// UpdateUserRequest represents the request body for updating a user by an admin.
type UpdateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"` // Allow email update, ensure uniqueness
	Specialty string `json:"specialty,omitempty"`
	// Password should be updated via a separate "change password" endpoint for security
}

// UpdateUser handles updating a user by ID (admin).
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID := c.Param("id")

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil { // Use ShouldBindJSON for partial updates
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Email != "" && req.Email != user.Email {
		// Check if new email is already taken
		var existingUser models.User
		if err := h.DB.Where("email = ? AND id != ?", req.Email, user.ID).First(&existingUser).Error; err == nil {
			utils.BadRequest(c, "New email is already in use")
			return
		} else if err != gorm.ErrRecordNotFound {
			utils.InternalServerError(c, "Database error checking email: "+err.Error())
			return
		}
		user.Email = req.Email
	}
	if req.Specialty != "" && user.Role == models.RoleSpecialist {
		user.Specialty = req.Specialty
	}

	if err := h.DB.Save(&user).Error; err != nil {
		utils.InternalServerError(c, "Failed to update user: "+err.Error())
		return
	}

	utils.Success(c, "User updated successfully", user.Sanitize())
}

// SetApprovalRequest represents the request body for approving or suspending a
// specialist account.
type SetApprovalRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}

// SetSpecialistApproval handles enabling/disabling a specialist account (admin).
// Unapproved specialists cannot log in or receive bookings.
func (h *UserHandler) SetSpecialistApproval(c *gin.Context) {
	userID := c.Param("id")

	var req SetApprovalRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if user.Role != models.RoleSpecialist {
		utils.BadRequest(c, "Approval only applies to specialist accounts")
		return
	}

	user.IsApproved = *req.Approved
	if err := h.DB.Save(&user).Error; err != nil {
		utils.InternalServerError(c, "Failed to update approval: "+err.Error())
		return
	}

	utils.Success(c, "Specialist approval updated successfully", user.Sanitize())
}

// DeleteUser handles deleting a user by ID (admin).
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID := c.Param("id")

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Delete(&models.User{}, "id = ?", userID).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete user: "+err.Error())
		return
	}

	utils.Success(c, "User deleted successfully", nil)
}

// GetSpecialists handles fetching all approved specialists.
// This endpoint is used by patients when booking appointments; an optional
// ?specialty= query narrows the list.
func (h *UserHandler) GetSpecialists(c *gin.Context) {
	query := h.DB.Where("role = ? AND is_approved = ?", models.RoleSpecialist, true)
	if specialty := c.Query("specialty"); specialty != "" {
		query = query.Where("specialty = ?", specialty)
	}

	var specialists []models.User
	if err := query.Find(&specialists).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch specialists: "+err.Error())
		return
	}

	sanitized := make([]models.UserSanitized, len(specialists))
	for i, s := range specialists {
		sanitized[i] = s.Sanitize()
	}

	utils.Success(c, "Specialists fetched successfully", sanitized)
}

// GetPatients handles fetching all patients.
// This endpoint is accessible to specialists and admins.
func (h *UserHandler) GetPatients(c *gin.Context) {
	userRole, exists := middleware.GetUserRoleFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	if userRole != models.RoleSpecialist && userRole != models.RoleAdmin {
		utils.Forbidden(c, "Only specialists and admins can view patient lists")
		return
	}

	var patients []models.User
	if err := h.DB.Where("role = ?", models.RolePatient).Find(&patients).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch patients: "+err.Error())
		return
	}

	sanitized := make([]models.UserSanitized, len(patients))
	for i, p := range patients {
		sanitized[i] = p.Sanitize()
	}

	utils.Success(c, "Patients fetched successfully", sanitized)
}
