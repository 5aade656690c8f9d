// Package models defines the domain entities and request/response shapes
// exchanged between the API layers.
package models

import (
	"strings"
	"time"
)

// Role identifies which principal class an auth operation is scoped to.
// User and admin share one record type distinguished by the IsAdmin flag;
// role-scoped lookups keep a user credential from being accepted on the
// admin endpoints and vice versa.
type Role string

const (
	// RoleUser scopes an operation to non-admin principals.
	RoleUser Role = "user"

	// RoleAdmin scopes an operation to admin principals.
	RoleAdmin Role = "admin"
)

// User represents a registered principal, either a regular user or an admin.
// The admin flag is immutable through self-service endpoints; it is only set
// by seeding or a separate administrative path.
type User struct {
	ID           int64     `json:"id" db:"user_id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	Phone        string    `json:"phone" db:"phone"`
	PasswordHash string    `json:"-" db:"password_hash"`
	ImagePath    string    `json:"image_path,omitempty" db:"image_path"`
	IsAdmin      bool      `json:"is_admin" db:"is_admin"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// NewUser creates a new non-admin User with a normalized email.
// The password hash is populated later during registration.
func NewUser(name, email, phone string) *User {
	now := time.Now()
	return &User{
		Name:      strings.TrimSpace(name),
		Email:     NormalizeEmail(email),
		Phone:     strings.TrimSpace(phone),
		IsAdmin:   false,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NormalizeEmail lowercases and trims an email address so that lookups and
// uniqueness checks are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// TableName returns the database table name for the User model.
func (u *User) TableName() string {
	return "users"
}

// Sanitize returns a copy of the User with sensitive fields removed.
// The password hash must never reach a client.
func (u *User) Sanitize() *User {
	sanitized := *u
	sanitized.PasswordHash = ""
	return &sanitized
}

// HasRole reports whether the user satisfies the given role scope.
func (u *User) HasRole(role Role) bool {
	if role == RoleAdmin {
		return u.IsAdmin
	}
	return !u.IsAdmin
}

// UserRegistration represents the data required for self-service registration.
// Registration always creates a non-admin principal.
type UserRegistration struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,min=7,max=20"`
	Password string `json:"password" validate:"required,min=8"`
}

// UserCredentials represents the login credentials for either role.
type UserCredentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries the refresh token presented to a refresh endpoint.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// ProfileUpdate represents the fields a user may change on their own profile.
type ProfileUpdate struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"omitempty,min=7,max=20"`
}

// AdminUserUpdate represents the fields an admin may change on a managed user.
type AdminUserUpdate struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"omitempty,min=7,max=20"`
}

// AdminUserCreate represents a user record created from the admin dashboard.
// The created principal is always non-admin.
type AdminUserCreate struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,min=7,max=20"`
	Password string `json:"password" validate:"required,min=8"`
}
