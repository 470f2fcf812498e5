package family

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/suite"

	"formbuilder/internal/formbuilder/models"
	id "formbuilder/pkg/domain"
	"formbuilder/pkg/platform/sentinel"
	"formbuilder/pkg/platform/tx"
)

type PostgresStoreUnitSuite struct {
	suite.Suite
	db    *sql.DB
	mock  sqlmock.Sqlmock
	store *PostgresStore
}

func TestPostgresStoreUnitSuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreUnitSuite))
}

func (s *PostgresStoreUnitSuite) SetupTest() {
	db, mock, err := sqlmock.New()
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = db.Close() })
	s.db = db
	s.mock = mock
	s.store = NewPostgres(db)
}

func (s *PostgresStoreUnitSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *PostgresStoreUnitSuite) TestFindAdultNotFound() {
	s.mock.ExpectQuery("SELECT id, family_id, person_id").WillReturnError(sql.ErrNoRows)
	_, err := s.store.FindAdult(context.Background(), id.FamilyID(uuid.New()), id.PersonID(uuid.New()))
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreUnitSuite) TestFindAdult() {
	adultID, familyID, personID := uuid.New(), uuid.New(), uuid.New()
	rows := sqlmock.NewRows([]string{
		"id", "family_id", "person_id", "child_data_access", "contact_priority",
		"contact_call", "contact_sms", "contact_email", "contact_mail",
	}).AddRow(adultID.String(), familyID.String(), personID.String(), true, 2, true, false, true, true)
	s.mock.ExpectQuery("SELECT id, family_id, person_id").
		WithArgs(familyID, personID).
		WillReturnRows(rows)

	adult, err := s.store.FindAdult(context.Background(), id.FamilyID(familyID), id.PersonID(personID))
	s.Require().NoError(err)
	s.Equal(id.FamilyAdultID(adultID), adult.ID)
	s.Equal(2, adult.ContactPriority)
	s.False(adult.ContactSMS)
}

func (s *PostgresStoreUnitSuite) TestDuplicateRelationshipIsConflict() {
	s.mock.ExpectExec("INSERT INTO family_relationships").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "family_relationships_pkey"})

	err := s.store.InsertRelationship(context.Background(), &models.FamilyRelationship{
		FamilyID: id.FamilyID(uuid.New()), AdultID: id.PersonID(uuid.New()), ChildID: id.PersonID(uuid.New()),
	})
	s.Require().ErrorIs(err, sentinel.ErrConflict)
}

func (s *PostgresStoreUnitSuite) TestJoinsTransactionFromContext() {
	s.mock.ExpectBegin()
	s.mock.ExpectExec("DELETE FROM family_adults").WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectExec("DELETE FROM family_relationships").WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	familyID, personID := id.FamilyID(uuid.New()), id.PersonID(uuid.New())
	err := tx.Run(context.Background(), s.db, func(ctx context.Context) error {
		if err := s.store.DeleteAdult(ctx, familyID, personID); err != nil {
			return err
		}
		return s.store.DeleteRelationship(ctx, familyID, personID, id.PersonID(uuid.New()))
	})
	s.Require().NoError(err)
}
