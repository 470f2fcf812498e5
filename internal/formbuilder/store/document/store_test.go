package document

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"formbuilder/internal/formbuilder/models"
	id "formbuilder/pkg/domain"
	"formbuilder/pkg/platform/sentinel"
)

type DocumentStoreSuite struct {
	suite.Suite
}

func TestDocumentStoreSuite(t *testing.T) {
	suite.Run(t, new(DocumentStoreSuite))
}

func (s *DocumentStoreSuite) TestInMemoryTransfer() {
	ctx := context.Background()
	store := NewInMemory()
	owner := id.PersonID(uuid.New())

	pendingID, err := store.SavePending(ctx, &models.PersonalDocument{DocumentType: "Passport", DocumentName: "passport.pdf"})
	s.Require().NoError(err)

	s.Run("copies pending documents to the owner", func() {
		s.Require().NoError(store.Transfer(ctx, []id.DocumentID{pendingID}, owner))
		docs, err := store.ListByOwner(ctx, owner)
		s.Require().NoError(err)
		s.Require().Len(docs, 1)
		s.NotEqual(pendingID, docs[0].ID)
		s.Equal("Passport", docs[0].DocumentType)
	})

	s.Run("unknown pending document fails without partial copies", func() {
		other := id.PersonID(uuid.New())
		err := store.Transfer(ctx, []id.DocumentID{pendingID, id.DocumentID(uuid.New())}, other)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
		docs, err := store.ListByOwner(ctx, other)
		s.Require().NoError(err)
		s.Empty(docs)
	})

	s.Run("delete by owner keeps the pending original", func() {
		s.Require().NoError(store.DeleteByOwner(ctx, owner))
		docs, err := store.ListByOwner(ctx, owner)
		s.Require().NoError(err)
		s.Empty(docs)
		s.Require().NoError(store.Transfer(ctx, []id.DocumentID{pendingID}, owner))
	})
}

func (s *DocumentStoreSuite) TestPostgresTransferCountsCopies() {
	db, mock, err := sqlmock.New()
	s.Require().NoError(err)
	defer db.Close()

	pending := []id.DocumentID{id.DocumentID(uuid.New()), id.DocumentID(uuid.New())}
	mock.ExpectExec("INSERT INTO personal_documents").WillReturnResult(sqlmock.NewResult(0, 1))

	err = NewPostgres(db).Transfer(context.Background(), pending, id.PersonID(uuid.New()))
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
	s.NoError(mock.ExpectationsWereMet())
}
