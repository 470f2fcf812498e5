package models

import (
	"time"

	id "formbuilder/pkg/domain"
)

// Family groups the adults and children of one household.
type Family struct {
	ID        id.FamilyID `json:"id"`
	Name      string      `json:"name"`
	CreatedAt time.Time   `json:"created_at"`
}

// FamilyAdult is the membership row linking an adult to a family, with the
// contact preferences the school uses for that adult.
type FamilyAdult struct {
	ID              id.FamilyAdultID `json:"id"`
	FamilyID        id.FamilyID      `json:"family_id"`
	PersonID        id.PersonID      `json:"person_id"`
	ChildDataAccess bool             `json:"child_data_access"`
	ContactPriority int              `json:"contact_priority"`
	ContactCall     bool             `json:"contact_call"`
	ContactSMS      bool             `json:"contact_sms"`
	ContactEmail    bool             `json:"contact_email"`
	ContactMail     bool             `json:"contact_mail"`
}

// NewFamilyAdult returns a membership row with the default contact
// preferences applied to adults added through a form.
func NewFamilyAdult(familyID id.FamilyID, personID id.PersonID, priority int) FamilyAdult {
	return FamilyAdult{
		FamilyID:        familyID,
		PersonID:        personID,
		ChildDataAccess: true,
		ContactPriority: priority,
		ContactCall:     true,
		ContactSMS:      true,
		ContactEmail:    true,
		ContactMail:     true,
	}
}

// FamilyRelationship is the directed edge between an adult and a child
// within a family, labelled with the relationship (Mother, Guardian, ...).
type FamilyRelationship struct {
	FamilyID     id.FamilyID `json:"family_id"`
	AdultID      id.PersonID `json:"adult_id"`
	ChildID      id.PersonID `json:"child_id"`
	Relationship string      `json:"relationship"`
}
