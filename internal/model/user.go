package model

import (
	"time"

	"github.com/google/uuid"
)

// User roles. Wire values follow the platform's French conventions and
// must not be translated, mobile clients match on the exact strings.
const (
	RolePatient = "patient"
	RoleMedecin = "medecin"
	RoleAdmin   = "admin"
)

// User represents a platform account: patient, doctor or administrator.
// Accounts are archived rather than hard-deleted.
type User struct {
	Base
	Email        string     `json:"email" db:"email"`
	Name         string     `json:"name" db:"name"`
	Password     string     `json:"password,omitempty" db:"-"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Phone        *string    `json:"phone" db:"phone"`
	Role         string     `json:"role" db:"role"`
	Speciality   *string    `json:"speciality,omitempty" db:"speciality"`
	Archived     bool       `json:"archived" db:"archived"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty" db:"last_login_at"`
}

// IsMedecin reports whether the user is a doctor.
func (u *User) IsMedecin() bool {
	return u.Role == RoleMedecin
}

type RegisterRequest struct {
	Email      string  `json:"email" binding:"required,email"`
	Name       string  `json:"name" binding:"required"`
	Password   string  `json:"password" binding:"required,min=8"`
	Phone      *string `json:"phone"`
	Role       string  `json:"role" binding:"required,oneof=patient medecin admin"`
	Speciality *string `json:"speciality"`
}

type UpdateUserRequest struct {
	Name       *string `json:"name"`
	Email      *string `json:"email" binding:"omitempty,email"`
	Phone      *string `json:"phone"`
	Speciality *string `json:"speciality"`
}

type UserFilters struct {
	Role       string `json:"role" form:"role"`
	Archived   *bool  `json:"archived" form:"archived"`
	SearchTerm string `json:"search_term" form:"search_term"`
}

// ActorRef identifies the authenticated caller of a domain operation.
type ActorRef struct {
	ID   uuid.UUID
	Role string
}
