package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role enum
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSpecialist Role = "especialista"
	RolePatient    Role = "paciente"
)

// User represents a user in the system
type User struct {
	BaseModel
	Email        string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password     string     `gorm:"size:255;not null" json:"-"` // Never send password in JSON
	FirstName    string     `gorm:"size:100" json:"firstName"`
	LastName     string     `gorm:"size:100" json:"lastName"`
	Role         Role       `gorm:"size:20;default:'paciente'" json:"role"`
	Specialty    string     `gorm:"size:100" json:"specialty,omitempty"` // Specialists only
	IsApproved   bool       `gorm:"default:false" json:"isApproved"`     // Specialists need admin approval before login
	DateOfBirth  *time.Time `json:"dateOfBirth,omitempty"`
	PhoneNumber  string     `json:"phoneNumber,omitempty"`
	HealthPlan   string     `gorm:"size:100" json:"healthPlan,omitempty"` // Patients only
	ProfileImage string     `json:"profileImage,omitempty"`

	// Relations (not always preloaded)
	RefreshTokens          []RefreshToken   `gorm:"foreignKey:UserID" json:"-"`
	SpecialistAppointments []Appointment    `gorm:"foreignKey:SpecialistID" json:"-"`
	PatientAppointments    []Appointment    `gorm:"foreignKey:PatientID" json:"-"`
	ClinicalRecords        []ClinicalRecord `gorm:"foreignKey:PatientID" json:"-"`
}

// UserSanitized represents the user data that is safe to send in API responses.
type UserSanitized struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Role         Role       `json:"role"`
	Specialty    string     `json:"specialty,omitempty"`
	IsApproved   bool       `json:"isApproved"`
	DateOfBirth  *time.Time `json:"dateOfBirth,omitempty"`
	PhoneNumber  string     `json:"phoneNumber,omitempty"`
	HealthPlan   string     `json:"healthPlan,omitempty"`
	ProfileImage string     `json:"profileImage,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// SetPassword hashes a password and sets it on the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword compares a password with the user's hashed password
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// CanLogin reports whether the account is allowed to authenticate.
// Specialists are held back until an admin approves them.
func (u *User) CanLogin() bool {
	if u.Role == RoleSpecialist {
		return u.IsApproved
	}
	return true
}

// Sanitize creates a UserSanitized struct from a User model, excluding sensitive data.
func (u *User) Sanitize() UserSanitized {
	return UserSanitized{
		ID:           u.ID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Role:         u.Role,
		Specialty:    u.Specialty,
		IsApproved:   u.IsApproved,
		DateOfBirth:  u.DateOfBirth,
		PhoneNumber:  u.PhoneNumber,
		HealthPlan:   u.HealthPlan,
		ProfileImage: u.ProfileImage,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
