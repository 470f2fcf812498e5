package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "formbuilder/pkg/domain-errors"
)

// Typed identifiers keep people, families and documents from being swapped
// at compile time even though all of them are UUIDs underneath.
type (
	PersonID      uuid.UUID
	FamilyID      uuid.UUID
	FamilyAdultID uuid.UUID
	DocumentID    uuid.UUID
	SubmissionID  uuid.UUID
)

func (i PersonID) String() string      { return uuid.UUID(i).String() }
func (i FamilyID) String() string      { return uuid.UUID(i).String() }
func (i FamilyAdultID) String() string { return uuid.UUID(i).String() }
func (i DocumentID) String() string    { return uuid.UUID(i).String() }
func (i SubmissionID) String() string  { return uuid.UUID(i).String() }

func (i PersonID) IsNil() bool      { return uuid.UUID(i) == uuid.Nil }
func (i FamilyID) IsNil() bool      { return uuid.UUID(i) == uuid.Nil }
func (i FamilyAdultID) IsNil() bool { return uuid.UUID(i) == uuid.Nil }
func (i DocumentID) IsNil() bool    { return uuid.UUID(i) == uuid.Nil }
func (i SubmissionID) IsNil() bool  { return uuid.UUID(i) == uuid.Nil }

// ParsePersonID parses an account identifier supplied at a trust boundary.
func ParsePersonID(s string) (PersonID, error) {
	u, err := parseUUID(s, "person ID")
	return PersonID(u), err
}

// ParseFamilyID parses a family group identifier.
func ParseFamilyID(s string) (FamilyID, error) {
	u, err := parseUUID(s, "family ID")
	return FamilyID(u), err
}

// ParseFamilyAdultID parses a family membership row identifier.
func ParseFamilyAdultID(s string) (FamilyAdultID, error) {
	u, err := parseUUID(s, "family adult ID")
	return FamilyAdultID(u), err
}

// ParseDocumentID parses a personal document identifier.
func ParseDocumentID(s string) (DocumentID, error) {
	u, err := parseUUID(s, "document ID")
	return DocumentID(u), err
}

// ParseSubmissionID parses a submission run identifier.
func ParseSubmissionID(s string) (SubmissionID, error) {
	u, err := parseUUID(s, "submission ID")
	return SubmissionID(u), err
}

func parseUUID(s, label string) (uuid.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be nil")
	}
	return u, nil
}

func (i PersonID) MarshalText() ([]byte, error)      { return []byte(i.String()), nil }
func (i FamilyID) MarshalText() ([]byte, error)      { return []byte(i.String()), nil }
func (i FamilyAdultID) MarshalText() ([]byte, error) { return []byte(i.String()), nil }
func (i DocumentID) MarshalText() ([]byte, error)    { return []byte(i.String()), nil }
func (i SubmissionID) MarshalText() ([]byte, error)  { return []byte(i.String()), nil }

func (i *PersonID) UnmarshalText(b []byte) error      { return unmarshalUUID(b, (*uuid.UUID)(i)) }
func (i *FamilyID) UnmarshalText(b []byte) error      { return unmarshalUUID(b, (*uuid.UUID)(i)) }
func (i *FamilyAdultID) UnmarshalText(b []byte) error { return unmarshalUUID(b, (*uuid.UUID)(i)) }
func (i *DocumentID) UnmarshalText(b []byte) error    { return unmarshalUUID(b, (*uuid.UUID)(i)) }
func (i *SubmissionID) UnmarshalText(b []byte) error  { return unmarshalUUID(b, (*uuid.UUID)(i)) }

func unmarshalUUID(b []byte, dst *uuid.UUID) error {
	parsed, err := uuid.ParseBytes(b)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid identifier")
	}
	*dst = parsed
	return nil
}
