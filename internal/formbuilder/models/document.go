package models

import (
	"slices"
	"time"

	id "formbuilder/pkg/domain"
)

// PersonalDocument is an identity document (passport, birth certificate)
// collected with a submission. Pending documents have no owner yet.
type PersonalDocument struct {
	ID           id.DocumentID `json:"id"`
	OwnerID      id.PersonID   `json:"owner_id"`
	DocumentType string        `json:"document_type"`
	DocumentName string        `json:"document_name"`
	DocumentNo   string        `json:"document_number,omitempty"`
	FilePath     string        `json:"file_path,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}

// CustomField is an administrator-defined account field.
type CustomField struct {
	Key          string   `json:"key"`
	Name         string   `json:"name"`
	Roles        []RoleID `json:"roles"`
	DefaultValue string   `json:"default_value,omitempty"`
	Active       bool     `json:"active"`
}

// AppliesTo reports whether the field is collected for role.
func (f CustomField) AppliesTo(role RoleID) bool {
	return f.Active && slices.Contains(f.Roles, role)
}
