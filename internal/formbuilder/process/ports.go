package process

import (
	"context"

	"formbuilder/internal/formbuilder/formdata"
	"formbuilder/internal/formbuilder/models"
	id "formbuilder/pkg/domain"
)

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

// AccountStore persists accounts and their role sets. Delete and RemoveRole
// are idempotent.
type AccountStore interface {
	Insert(ctx context.Context, account *models.Account) (id.PersonID, error)
	Delete(ctx context.Context, personID id.PersonID) error
	// AddRole reports whether the role was newly assigned.
	AddRole(ctx context.Context, personID id.PersonID, role models.RoleID) (bool, error)
	RemoveRole(ctx context.Context, personID id.PersonID, role models.RoleID) error
}

// FamilyStore persists families, their adult memberships and the
// adult-to-child relationship edges. Deletes are idempotent.
type FamilyStore interface {
	InsertFamily(ctx context.Context, family *models.Family) (id.FamilyID, error)
	DeleteFamily(ctx context.Context, familyID id.FamilyID) error
	// FindAdult returns sentinel.ErrNotFound when the person is not an adult
	// of the family.
	FindAdult(ctx context.Context, familyID id.FamilyID, personID id.PersonID) (*models.FamilyAdult, error)
	InsertAdult(ctx context.Context, adult *models.FamilyAdult) (id.FamilyAdultID, error)
	DeleteAdult(ctx context.Context, familyID id.FamilyID, personID id.PersonID) error
	// InsertRelationship returns sentinel.ErrConflict when the edge exists.
	InsertRelationship(ctx context.Context, rel *models.FamilyRelationship) error
	DeleteRelationship(ctx context.Context, familyID id.FamilyID, adultID, childID id.PersonID) error
}

// CustomFieldStore lists the active custom field definitions.
type CustomFieldStore interface {
	Definitions(ctx context.Context, role models.RoleID) ([]models.CustomField, error)
}

// DocumentStore attaches pending personal documents to an account.
type DocumentStore interface {
	Transfer(ctx context.Context, pending []id.DocumentID, owner id.PersonID) error
	DeleteByOwner(ctx context.Context, owner id.PersonID) error
}

// CredentialGenerator produces login credentials for new accounts. Usernames
// are built from the fields under prefix and are unique at generation time.
type CredentialGenerator interface {
	GenerateUsername(ctx context.Context, role models.RoleID, prefix string, data *formdata.FormData) (string, error)
	GeneratePassword() (string, error)
	HashPassword(password string) (string, error)
}
