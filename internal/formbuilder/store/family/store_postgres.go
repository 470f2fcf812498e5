package family

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"formbuilder/internal/formbuilder/models"
	"formbuilder/internal/platform/postgres"
	id "formbuilder/pkg/domain"
	"formbuilder/pkg/platform/sentinel"
	"formbuilder/pkg/platform/tx"
)

// PostgresStore persists families in PostgreSQL. Memberships and edges are
// removed with their family through ON DELETE CASCADE.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed family store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) InsertFamily(ctx context.Context, family *models.Family) (id.FamilyID, error) {
	familyID := family.ID
	if familyID.IsNil() {
		familyID = id.FamilyID(uuid.New())
	}
	_, err := tx.Execer(ctx, s.db).ExecContext(ctx,
		`INSERT INTO families (id, name, created_at) VALUES ($1, $2, $3)`,
		uuid.UUID(familyID), family.Name, family.CreatedAt)
	if err != nil {
		return id.FamilyID{}, fmt.Errorf("insert family: %w", postgres.Classify(err))
	}
	return familyID, nil
}

func (s *PostgresStore) DeleteFamily(ctx context.Context, familyID id.FamilyID) error {
	_, err := tx.Execer(ctx, s.db).ExecContext(ctx, `DELETE FROM families WHERE id = $1`, uuid.UUID(familyID))
	if err != nil {
		return fmt.Errorf("delete family: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindFamily(ctx context.Context, familyID id.FamilyID) (*models.Family, error) {
	var (
		f     models.Family
		rawID uuid.UUID
	)
	err := tx.Execer(ctx, s.db).QueryRowContext(ctx,
		`SELECT id, name, created_at FROM families WHERE id = $1`, uuid.UUID(familyID)).
		Scan(&rawID, &f.Name, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find family: %w", err)
	}
	f.ID = id.FamilyID(rawID)
	return &f, nil
}

func (s *PostgresStore) FindAdult(ctx context.Context, familyID id.FamilyID, personID id.PersonID) (*models.FamilyAdult, error) {
	var (
		a                        models.FamilyAdult
		rawID, rawFamily, rawPer uuid.UUID
	)
	err := tx.Execer(ctx, s.db).QueryRowContext(ctx, `
		SELECT id, family_id, person_id, child_data_access, contact_priority,
			contact_call, contact_sms, contact_email, contact_mail
		FROM family_adults
		WHERE family_id = $1 AND person_id = $2
	`, uuid.UUID(familyID), uuid.UUID(personID)).Scan(
		&rawID, &rawFamily, &rawPer, &a.ChildDataAccess, &a.ContactPriority,
		&a.ContactCall, &a.ContactSMS, &a.ContactEmail, &a.ContactMail,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find family adult: %w", err)
	}
	a.ID = id.FamilyAdultID(rawID)
	a.FamilyID = id.FamilyID(rawFamily)
	a.PersonID = id.PersonID(rawPer)
	return &a, nil
}

func (s *PostgresStore) InsertAdult(ctx context.Context, adult *models.FamilyAdult) (id.FamilyAdultID, error) {
	adultID := adult.ID
	if adultID.IsNil() {
		adultID = id.FamilyAdultID(uuid.New())
	}
	_, err := tx.Execer(ctx, s.db).ExecContext(ctx, `
		INSERT INTO family_adults (
			id, family_id, person_id, child_data_access, contact_priority,
			contact_call, contact_sms, contact_email, contact_mail
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		uuid.UUID(adultID), uuid.UUID(adult.FamilyID), uuid.UUID(adult.PersonID),
		adult.ChildDataAccess, adult.ContactPriority,
		adult.ContactCall, adult.ContactSMS, adult.ContactEmail, adult.ContactMail,
	)
	if err != nil {
		return id.FamilyAdultID{}, fmt.Errorf("insert family adult: %w", postgres.Classify(err))
	}
	return adultID, nil
}

func (s *PostgresStore) DeleteAdult(ctx context.Context, familyID id.FamilyID, personID id.PersonID) error {
	_, err := tx.Execer(ctx, s.db).ExecContext(ctx,
		`DELETE FROM family_adults WHERE family_id = $1 AND person_id = $2`,
		uuid.UUID(familyID), uuid.UUID(personID))
	if err != nil {
		return fmt.Errorf("delete family adult: %w", err)
	}
	return nil
}

func (s *PostgresStore) InsertRelationship(ctx context.Context, rel *models.FamilyRelationship) error {
	_, err := tx.Execer(ctx, s.db).ExecContext(ctx, `
		INSERT INTO family_relationships (family_id, adult_id, child_id, relationship)
		VALUES ($1, $2, $3, $4)
	`, uuid.UUID(rel.FamilyID), uuid.UUID(rel.AdultID), uuid.UUID(rel.ChildID), rel.Relationship)
	if err != nil {
		return fmt.Errorf("insert family relationship: %w", postgres.Classify(err))
	}
	return nil
}

func (s *PostgresStore) DeleteRelationship(ctx context.Context, familyID id.FamilyID, adultID, childID id.PersonID) error {
	_, err := tx.Execer(ctx, s.db).ExecContext(ctx,
		`DELETE FROM family_relationships WHERE family_id = $1 AND adult_id = $2 AND child_id = $3`,
		uuid.UUID(familyID), uuid.UUID(adultID), uuid.UUID(childID))
	if err != nil {
		return fmt.Errorf("delete family relationship: %w", err)
	}
	return nil
}

// Relationships lists the edges of a family.
func (s *PostgresStore) Relationships(ctx context.Context, familyID id.FamilyID) ([]models.FamilyRelationship, error) {
	rows, err := tx.Execer(ctx, s.db).QueryContext(ctx, `
		SELECT family_id, adult_id, child_id, relationship
		FROM family_relationships WHERE family_id = $1
		ORDER BY adult_id, child_id
	`, uuid.UUID(familyID))
	if err != nil {
		return nil, fmt.Errorf("list family relationships: %w", err)
	}
	defer rows.Close()

	var out []models.FamilyRelationship
	for rows.Next() {
		var (
			rel                     models.FamilyRelationship
			family, adult, childRaw uuid.UUID
		)
		if err := rows.Scan(&family, &adult, &childRaw, &rel.Relationship); err != nil {
			return nil, fmt.Errorf("scan family relationship: %w", err)
		}
		rel.FamilyID = id.FamilyID(family)
		rel.AdultID = id.PersonID(adult)
		rel.ChildID = id.PersonID(childRaw)
		out = append(out, rel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list family relationships: %w", err)
	}
	return out, nil
}
