package models

import (
	"slices"
	"time"

	id "formbuilder/pkg/domain"
)

// RoleID is a role code as stored against an account.
type RoleID string

const (
	RoleStudent RoleID = "003"
	RoleParent  RoleID = "004"
)

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	StatusFull     AccountStatus = "Full"
	StatusExpected AccountStatus = "Expected"
	StatusLeft     AccountStatus = "Left"
	StatusPending  AccountStatus = "Pending Approval"
)

// Account is a person record in the account store.
type Account struct {
	ID                 id.PersonID       `json:"id"`
	Username           string            `json:"username"`
	PasswordHash       string            `json:"-"`
	PasswordForceReset bool              `json:"password_force_reset"`
	Title              string            `json:"title,omitempty"`
	PreferredName      string            `json:"preferred_name"`
	Surname            string            `json:"surname"`
	FirstName          string            `json:"first_name,omitempty"`
	OfficialName       string            `json:"official_name,omitempty"`
	Email              string            `json:"email,omitempty"`
	Website            string            `json:"website,omitempty"`
	Phone              string            `json:"phone,omitempty"`
	Status             AccountStatus     `json:"status"`
	PrimaryRole        RoleID            `json:"primary_role"`
	Roles              []RoleID          `json:"roles"`
	CustomFields       map[string]string `json:"custom_fields,omitempty"`
	DateStart          *time.Time        `json:"date_start,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
}

// HasRole reports whether role is assigned to the account.
func (a *Account) HasRole(role RoleID) bool {
	return slices.Contains(a.Roles, role)
}
