package family

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"formbuilder/internal/formbuilder/models"
	id "formbuilder/pkg/domain"
	"formbuilder/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store    *InMemoryStore
	familyID id.FamilyID
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	var err error
	s.familyID, err = s.store.InsertFamily(context.Background(), &models.Family{Name: "Lee Family"})
	s.Require().NoError(err)
}

func (s *InMemoryStoreSuite) TestAdults() {
	ctx := context.Background()
	personID := id.PersonID(uuid.New())

	_, err := s.store.FindAdult(ctx, s.familyID, personID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	adult := models.NewFamilyAdult(s.familyID, personID, 1)
	adultID, err := s.store.InsertAdult(ctx, &adult)
	s.Require().NoError(err)

	found, err := s.store.FindAdult(ctx, s.familyID, personID)
	s.Require().NoError(err)
	s.Equal(adultID, found.ID)
	s.True(found.ContactSMS)

	_, err = s.store.InsertAdult(ctx, &adult)
	s.Require().ErrorIs(err, sentinel.ErrConflict)

	s.Require().NoError(s.store.DeleteAdult(ctx, s.familyID, personID))
	s.Require().NoError(s.store.DeleteAdult(ctx, s.familyID, personID))
	_, err = s.store.FindAdult(ctx, s.familyID, personID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestRelationships() {
	ctx := context.Background()
	rel := &models.FamilyRelationship{
		FamilyID:     s.familyID,
		AdultID:      id.PersonID(uuid.New()),
		ChildID:      id.PersonID(uuid.New()),
		Relationship: "Guardian",
	}

	s.Require().NoError(s.store.InsertRelationship(ctx, rel))
	s.Require().ErrorIs(s.store.InsertRelationship(ctx, rel), sentinel.ErrConflict)

	edges, err := s.store.Relationships(ctx, s.familyID)
	s.Require().NoError(err)
	s.Equal([]models.FamilyRelationship{*rel}, edges)

	s.Require().NoError(s.store.DeleteRelationship(ctx, s.familyID, rel.AdultID, rel.ChildID))
	edges, err = s.store.Relationships(ctx, s.familyID)
	s.Require().NoError(err)
	s.Empty(edges)
}

func (s *InMemoryStoreSuite) TestUnknownFamily() {
	ctx := context.Background()
	adult := models.NewFamilyAdult(id.FamilyID(uuid.New()), id.PersonID(uuid.New()), 1)
	_, err := s.store.InsertAdult(ctx, &adult)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestDeleteFamilyCascades() {
	ctx := context.Background()
	personID := id.PersonID(uuid.New())
	adult := models.NewFamilyAdult(s.familyID, personID, 1)
	_, err := s.store.InsertAdult(ctx, &adult)
	s.Require().NoError(err)

	s.Require().NoError(s.store.DeleteFamily(ctx, s.familyID))

	_, err = s.store.FindFamily(ctx, s.familyID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
	_, err = s.store.FindAdult(ctx, s.familyID, personID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}
