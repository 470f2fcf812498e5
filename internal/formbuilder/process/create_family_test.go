package process

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"formbuilder/internal/formbuilder/formdata"
	"formbuilder/internal/formbuilder/models"
	id "formbuilder/pkg/domain"
	dErrors "formbuilder/pkg/domain-errors"
)

type CreateFamilySuite struct {
	suite.Suite
	m    *stepMocks
	step *CreateFamily
}

func TestCreateFamilySuite(t *testing.T) {
	suite.Run(t, new(CreateFamilySuite))
}

func (s *CreateFamilySuite) SetupTest() {
	s.m = newStepMocks(s.T())
	s.step = NewCreateFamily(s.m.deps())
}

func (s *CreateFamilySuite) TestProcess() {
	cfg := models.FormConfig{CreateFamily: true}

	s.Run("falls back to the student surname", func() {
		familyID := id.FamilyID(uuid.New())
		data := formdata.New(map[string]any{"surname": "Lee"})
		s.m.families.EXPECT().InsertFamily(gomock.Any(), &models.Family{Name: "Lee Family", CreatedAt: fixedNow}).Return(familyID, nil)

		s.Require().NoError(s.step.Process(context.Background(), cfg, data))
		s.Equal(familyID, data.Get(formdata.KeyFamilyID))
		s.True(data.Outcome(formdata.SlotFamily).Created)
	})

	s.Run("existing family is left alone", func() {
		data := formdata.New(map[string]any{formdata.KeyFamilyID: uuid.NewString(), "familyName": "Lee"})
		s.Require().NoError(s.step.Process(context.Background(), cfg, data))
		s.False(data.Outcome(formdata.SlotFamily).Created)
	})

	s.Run("no name means nothing to create", func() {
		data := formdata.New(nil)
		s.Require().NoError(s.step.Process(context.Background(), cfg, data))
		s.False(data.Has(formdata.KeyFamilyID))
	})

	s.Run("deadline fault is a timeout", func() {
		data := formdata.New(map[string]any{"familyName": "Lee-Park"})
		s.m.families.EXPECT().InsertFamily(gomock.Any(), gomock.Any()).Return(id.FamilyID{}, context.DeadlineExceeded)

		err := s.step.Process(context.Background(), cfg, data)
		s.True(dErrors.HasCode(err, dErrors.CodeTimeout))
	})
}

func (s *CreateFamilySuite) TestRollback() {
	s.Run("no-op without provenance", func() {
		data := formdata.New(map[string]any{formdata.KeyFamilyID: uuid.NewString()})
		s.Require().NoError(s.step.Rollback(context.Background(), data))
	})

	s.Run("deletes the created family", func() {
		familyID := id.FamilyID(uuid.New())
		data := formdata.New(nil)
		data.Set(formdata.KeyFamilyID, familyID)
		outcome := data.Record(formdata.SlotFamily)
		outcome.ID = familyID.String()
		outcome.Created = true
		s.m.families.EXPECT().DeleteFamily(gomock.Any(), familyID).Return(nil)

		s.Require().NoError(s.step.Rollback(context.Background(), data))
		s.False(data.Has(formdata.KeyFamilyID))
	})

	s.Run("delete fault is returned", func() {
		familyID := id.FamilyID(uuid.New())
		data := formdata.New(nil)
		outcome := data.Record(formdata.SlotFamily)
		outcome.ID = familyID.String()
		outcome.Created = true
		s.m.families.EXPECT().DeleteFamily(gomock.Any(), familyID).Return(errors.New("gone away"))

		s.Require().Error(s.step.Rollback(context.Background(), data))
		s.True(data.Outcome(formdata.SlotFamily).Created)
	})
}
