package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-app-server/internal/config"
	"clinic-app-server/internal/handlers"
	"clinic-app-server/internal/middleware"
	"clinic-app-server/internal/models"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(db)
	clinicalRecordHandler := handlers.NewClinicalRecordHandler(db)
	reportHandler := handlers.NewReportHandler(db)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg)) // Apply JWT authentication middleware
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
			authRoutesPrivate.PUT("/profile", authHandler.UpdateProfile)
		}

		// User management routes
		userRoutes := private.Group("/users")
		{
			// Approved specialists - accessible by all authenticated users (booking flow)
			userRoutes.GET("/specialists", userHandler.GetSpecialists)

			// Patient list - accessible by specialists and admins
			userRoutes.GET("/patients", userHandler.GetPatients)

			// Admin-only routes
			adminRoutes := userRoutes.Group("")
			adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin)) // Only Admins
			{
				adminRoutes.POST("", userHandler.CreateUser)
				adminRoutes.GET("", userHandler.GetUsers)
				adminRoutes.GET("/:id", userHandler.GetUserByID)
				adminRoutes.PUT("/:id", userHandler.UpdateUser)
				adminRoutes.PATCH("/:id/approval", userHandler.SetSpecialistApproval)
				adminRoutes.DELETE("/:id", userHandler.DeleteUser)
			}
		}

		// Appointment routes
		appointmentRoutes := private.Group("/appointments")
		{
			// Patients book for themselves; admins may book on a patient's behalf
			appointmentRoutes.POST("", middleware.RoleAuthMiddleware(models.RolePatient, models.RoleAdmin), appointmentHandler.CreateAppointment)

			// Role-scoped listing (logic inside handler differentiates by role)
			appointmentRoutes.GET("", appointmentHandler.GetAppointmentsForUser)

			// Specific appointment access (involved parties or admin, checked in handler)
			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID)

			// Accept/reject/cancel; lifecycle and role rules enforced in handler
			appointmentRoutes.PATCH("/:id/status", appointmentHandler.UpdateAppointmentStatus)

			// Completion with review (specialist involved only)
			appointmentRoutes.POST("/:id/review", middleware.RoleAuthMiddleware(models.RoleSpecialist), appointmentHandler.FinalizeAppointment)

			// Post-visit survey (patient involved only)
			appointmentRoutes.POST("/:id/survey", middleware.RoleAuthMiddleware(models.RolePatient), appointmentHandler.SubmitSurvey)
		}

		// Clinical record routes
		clinicalRecordRoutes := private.Group("/clinical-records")
		{
			// Specialists record vitals for their completed appointments
			clinicalRecordRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleSpecialist), clinicalRecordHandler.CreateClinicalRecord)

			// Patient sees own history, specialist their entries, admin all (checked in handler)
			clinicalRecordRoutes.GET("/patient/:patientId", clinicalRecordHandler.GetClinicalRecordsForPatient)

			clinicalRecordRoutes.GET("/:id", clinicalRecordHandler.GetClinicalRecordByID)
		}

		// Report routes (admin only)
		reportRoutes := private.Group("/reports")
		reportRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			reportRoutes.GET("/appointments-by-day", reportHandler.GetAppointmentsByDay)
			reportRoutes.GET("/appointments-by-specialty", reportHandler.GetAppointmentsBySpecialty)
			reportRoutes.GET("/appointments-by-specialist", reportHandler.GetAppointmentsBySpecialist)
			reportRoutes.GET("/summary", reportHandler.GetSummary)
			reportRoutes.GET("/export", reportHandler.ExportAppointments)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
