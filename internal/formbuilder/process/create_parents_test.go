package process

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"formbuilder/internal/formbuilder/formdata"
	"formbuilder/internal/formbuilder/models"
	id "formbuilder/pkg/domain"
	dErrors "formbuilder/pkg/domain-errors"
	"formbuilder/pkg/platform/sentinel"
)

type CreateParentsSuite struct {
	suite.Suite
	m         *stepMocks
	step      *CreateParents
	cfg       models.FormConfig
	familyID  id.FamilyID
	studentID id.PersonID
}

func TestCreateParentsSuite(t *testing.T) {
	suite.Run(t, new(CreateParentsSuite))
}

func (s *CreateParentsSuite) SetupTest() {
	s.m = newStepMocks(s.T())
	s.step = NewCreateParents(s.m.deps())
	s.cfg = models.FormConfig{ID: "admission", CreateParents: true}
	s.familyID = id.FamilyID(uuid.New())
	s.studentID = id.PersonID(uuid.New())
}

func (s *CreateParentsSuite) linked(values map[string]any) *formdata.FormData {
	data := formdata.New(values)
	data.Set(formdata.KeyFamilyID, s.familyID)
	data.Set(formdata.KeyStudentID, s.studentID)
	return data
}

func (s *CreateParentsSuite) TestIsEnabled() {
	s.True(s.step.IsEnabled(models.FormConfig{CreateParents: true}))
	s.False(s.step.IsEnabled(models.FormConfig{CreateStudent: true}))
}

func (s *CreateParentsSuite) TestProcess() {
	s.Run("creates, grants and links a new parent", func() {
		parentID := id.PersonID(uuid.New())
		adultID := id.FamilyAdultID(uuid.New())
		data := s.linked(map[string]any{
			"parent1preferredName": "Sam",
			"parent1surname":       "Lee",
			"parent1relationship":  "Guardian",
		})
		s.m.expectCredentials(models.RoleParent, "parent1", "sam.lee")
		s.m.accounts.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, a *models.Account) (id.PersonID, error) {
				s.Equal(models.RoleParent, a.PrimaryRole)
				s.Empty(a.Email)
				return parentID, nil
			})
		s.m.accounts.EXPECT().AddRole(gomock.Any(), parentID, models.RoleParent).Return(false, nil)
		s.m.families.EXPECT().FindAdult(gomock.Any(), s.familyID, parentID).Return(nil, sentinel.ErrNotFound)
		s.m.families.EXPECT().InsertAdult(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, a *models.FamilyAdult) (id.FamilyAdultID, error) {
				s.Equal(1, a.ContactPriority)
				s.True(a.ChildDataAccess)
				s.True(a.ContactMail)
				return adultID, nil
			})
		s.m.families.EXPECT().InsertRelationship(gomock.Any(), &models.FamilyRelationship{
			FamilyID: s.familyID, AdultID: parentID, ChildID: s.studentID, Relationship: "Guardian",
		}).Return(nil)

		s.Require().NoError(s.step.Process(context.Background(), s.cfg, data))

		outcome := data.Outcome(formdata.SlotParent1)
		s.True(outcome.Created)
		s.False(outcome.RoleChanged)
		s.True(outcome.Added)
		s.True(outcome.Linked)
		s.Equal(adultID.String(), outcome.LinkID)
		s.Equal(parentID, data.Get(formdata.KeyParent1ID))
	})

	s.Run("reuses an existing family membership", func() {
		parentID := id.PersonID(uuid.New())
		existing := &models.FamilyAdult{ID: id.FamilyAdultID(uuid.New()), FamilyID: s.familyID, PersonID: parentID}
		data := s.linked(map[string]any{
			formdata.KeyParent1ID: parentID.String(),
			"parent1relationship": "Mother",
		})
		s.m.accounts.EXPECT().AddRole(gomock.Any(), parentID, models.RoleParent).Return(true, nil)
		s.m.families.EXPECT().FindAdult(gomock.Any(), s.familyID, parentID).Return(existing, nil)
		s.m.families.EXPECT().InsertRelationship(gomock.Any(), gomock.Any()).Return(nil)

		s.Require().NoError(s.step.Process(context.Background(), s.cfg, data))

		outcome := data.Outcome(formdata.SlotParent1)
		s.False(outcome.Created)
		s.True(outcome.RoleChanged)
		s.False(outcome.Added)
		s.True(outcome.Linked)
		s.Equal(existing.ID.String(), outcome.LinkID)
	})

	s.Run("existing parent without family data is granted the role only", func() {
		parentID := id.PersonID(uuid.New())
		data := formdata.New(map[string]any{formdata.KeyParent1ID: parentID})
		s.m.accounts.EXPECT().AddRole(gomock.Any(), parentID, models.RoleParent).Return(false, nil)

		s.Require().NoError(s.step.Process(context.Background(), s.cfg, data))
		s.False(data.Outcome(formdata.SlotParent1).Linked)
	})

	s.Run("incomplete parent fields are skipped", func() {
		data := s.linked(map[string]any{"parent1preferredName": "Sam", "parent1surname": "Lee"})
		s.Require().NoError(s.step.Process(context.Background(), s.cfg, data))
		s.False(data.Has(formdata.KeyParent1ID))
	})

	s.Run("duplicate relationship is a conflict", func() {
		parentID := id.PersonID(uuid.New())
		data := s.linked(map[string]any{formdata.KeyParent1ID: parentID, "parent1relationship": "Father"})
		s.m.accounts.EXPECT().AddRole(gomock.Any(), parentID, models.RoleParent).Return(false, nil)
		s.m.families.EXPECT().FindAdult(gomock.Any(), s.familyID, parentID).Return(nil, sentinel.ErrNotFound)
		s.m.families.EXPECT().InsertAdult(gomock.Any(), gomock.Any()).Return(id.FamilyAdultID(uuid.New()), nil)
		s.m.families.EXPECT().InsertRelationship(gomock.Any(), gomock.Any()).Return(sentinel.ErrConflict)

		err := s.step.Process(context.Background(), s.cfg, data)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		outcome := data.Outcome(formdata.SlotParent1)
		s.True(outcome.Added)
		s.False(outcome.Linked)
		s.False(outcome.EdgePending, "a conflicting edge is not this run's")
	})

	s.Run("relationship insert that times out leaves the edge pending", func() {
		parentID := id.PersonID(uuid.New())
		data := s.linked(map[string]any{formdata.KeyParent1ID: parentID, "parent1relationship": "Guardian"})
		s.m.accounts.EXPECT().AddRole(gomock.Any(), parentID, models.RoleParent).Return(false, nil)
		s.m.families.EXPECT().FindAdult(gomock.Any(), s.familyID, parentID).Return(nil, sentinel.ErrNotFound)
		s.m.families.EXPECT().InsertAdult(gomock.Any(), gomock.Any()).Return(id.FamilyAdultID(uuid.New()), nil)
		s.m.families.EXPECT().InsertRelationship(gomock.Any(), gomock.Any()).Return(context.DeadlineExceeded)

		err := s.step.Process(context.Background(), s.cfg, data)
		s.True(dErrors.HasCode(err, dErrors.CodeTimeout))
		outcome := data.Outcome(formdata.SlotParent1)
		s.False(outcome.Linked)
		s.True(outcome.EdgePending)
		s.True(outcome.Touched())
	})
}

func (s *CreateParentsSuite) TestSecondParentGuard() {
	s.Run("second parent is created when no first parent is present", func() {
		parentID := id.PersonID(uuid.New())
		data := s.linked(map[string]any{
			"parent2preferredName": "Jo",
			"parent2surname":       "Lee",
			"parent2relationship":  "Father",
		})
		s.m.expectCredentials(models.RoleParent, "parent2", "jo.lee")
		s.m.accounts.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(parentID, nil)
		s.m.accounts.EXPECT().AddRole(gomock.Any(), parentID, models.RoleParent).Return(false, nil)
		s.m.families.EXPECT().FindAdult(gomock.Any(), s.familyID, parentID).Return(nil, sentinel.ErrNotFound)
		s.m.families.EXPECT().InsertAdult(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, a *models.FamilyAdult) (id.FamilyAdultID, error) {
				s.Equal(2, a.ContactPriority)
				return id.FamilyAdultID(uuid.New()), nil
			})
		s.m.families.EXPECT().InsertRelationship(gomock.Any(), gomock.Any()).Return(nil)

		s.Require().NoError(s.step.Process(context.Background(), s.cfg, data))
		s.True(data.Outcome(formdata.SlotParent2).Created)
	})

	s.Run("second parent is skipped when a first parent is already linked", func() {
		parentID := id.PersonID(uuid.New())
		data := s.linked(map[string]any{
			formdata.KeyParent1ID:  parentID,
			"parent2preferredName": "Jo",
			"parent2surname":       "Lee",
			"parent2relationship":  "Father",
		})
		s.m.accounts.EXPECT().AddRole(gomock.Any(), parentID, models.RoleParent).Return(false, nil)

		s.Require().NoError(s.step.Process(context.Background(), s.cfg, data))
		s.False(data.Has(formdata.KeyParent2ID))
		s.False(data.Outcome(formdata.SlotParent2).Created)
	})
}

func (s *CreateParentsSuite) TestRollback() {
	s.Run("no-op without provenance", func() {
		data := s.linked(map[string]any{formdata.KeyParent1ID: uuid.NewString()})
		s.Require().NoError(s.step.Rollback(context.Background(), data))
		s.True(data.Has(formdata.KeyParent1ID))
	})

	s.Run("undoes edges then memberships then roles then accounts", func() {
		p1, p2 := id.PersonID(uuid.New()), id.PersonID(uuid.New())
		data := s.linked(nil)
		data.Set(formdata.KeyParent1ID, p1)
		data.Set(formdata.KeyParent2ID, p2)
		*data.Record(formdata.SlotParent1) = formdata.Outcome{
			ID: p1.String(), Created: true, RoleChanged: true, Added: true, Linked: true,
			FamilyID: s.familyID.String(), ChildID: s.studentID.String(),
		}
		// pre-existing parent 2: only the edge is this run's
		*data.Record(formdata.SlotParent2) = formdata.Outcome{
			ID: p2.String(), Linked: true,
			FamilyID: s.familyID.String(), ChildID: s.studentID.String(),
		}

		gomock.InOrder(
			s.m.families.EXPECT().DeleteRelationship(gomock.Any(), s.familyID, p1, s.studentID).Return(nil),
			s.m.families.EXPECT().DeleteRelationship(gomock.Any(), s.familyID, p2, s.studentID).Return(nil),
			s.m.families.EXPECT().DeleteAdult(gomock.Any(), s.familyID, p1).Return(nil),
			s.m.accounts.EXPECT().RemoveRole(gomock.Any(), p1, models.RoleParent).Return(nil),
			s.m.documents.EXPECT().DeleteByOwner(gomock.Any(), p1).Return(nil),
			s.m.accounts.EXPECT().Delete(gomock.Any(), p1).Return(nil),
		)

		s.Require().NoError(s.step.Rollback(context.Background(), data))
		s.False(data.Has(formdata.KeyParent1ID))
		s.True(data.Has(formdata.KeyParent2ID))
		s.False(data.Outcome(formdata.SlotParent1).Touched())
		s.False(data.Outcome(formdata.SlotParent2).Touched())

		// second call is a no-op
		s.Require().NoError(s.step.Rollback(context.Background(), data))
	})

	s.Run("deletes an edge whose insert faulted", func() {
		p1 := id.PersonID(uuid.New())
		data := s.linked(nil)
		data.Set(formdata.KeyParent1ID, p1)
		*data.Record(formdata.SlotParent1) = formdata.Outcome{
			ID: p1.String(), EdgePending: true,
			FamilyID: s.familyID.String(), ChildID: s.studentID.String(),
		}
		s.m.families.EXPECT().DeleteRelationship(gomock.Any(), s.familyID, p1, s.studentID).Return(nil)

		s.Require().NoError(s.step.Rollback(context.Background(), data))
		s.False(data.Outcome(formdata.SlotParent1).Touched())
		s.True(data.Has(formdata.KeyParent1ID))
	})

	s.Run("continues past a failed compensation", func() {
		p1 := id.PersonID(uuid.New())
		data := s.linked(nil)
		data.Set(formdata.KeyParent1ID, p1)
		*data.Record(formdata.SlotParent1) = formdata.Outcome{
			ID: p1.String(), Created: true, Added: true, Linked: true,
			FamilyID: s.familyID.String(), ChildID: s.studentID.String(),
		}

		s.m.families.EXPECT().DeleteRelationship(gomock.Any(), s.familyID, p1, s.studentID).Return(errors.New("lock timeout"))
		s.m.families.EXPECT().DeleteAdult(gomock.Any(), s.familyID, p1).Return(nil)
		s.m.documents.EXPECT().DeleteByOwner(gomock.Any(), p1).Return(nil)
		s.m.accounts.EXPECT().Delete(gomock.Any(), p1).Return(nil)

		err := s.step.Rollback(context.Background(), data)
		s.Require().Error(err)
		s.ErrorContains(err, "lock timeout")
		s.True(data.Outcome(formdata.SlotParent1).Linked)
		s.False(data.Outcome(formdata.SlotParent1).Created)
	})
}

// TestRollbackProvenanceCombinations checks that rollback touches exactly the
// mutations recorded for the slot, for every combination of flags. Strict
// mocks fail on any call for an unset flag.
func (s *CreateParentsSuite) TestRollbackProvenanceCombinations() {
	for mask := 0; mask < 1<<5; mask++ {
		o := formdata.Outcome{
			Created:     mask&1 != 0,
			RoleChanged: mask&2 != 0,
			Added:       mask&4 != 0,
			Linked:      mask&8 != 0,
			EdgePending: mask&16 != 0,
		}
		name := fmt.Sprintf("created=%t role=%t added=%t linked=%t pending=%t",
			o.Created, o.RoleChanged, o.Added, o.Linked, o.EdgePending)

		s.Run(name, func() {
			m := newStepMocks(s.T())
			step := NewCreateParents(m.deps())
			parentID := id.PersonID(uuid.New())
			data := s.linked(nil)
			data.Set(formdata.KeyParent1ID, parentID)
			o.ID = parentID.String()
			o.FamilyID = s.familyID.String()
			o.ChildID = s.studentID.String()
			*data.Record(formdata.SlotParent1) = o

			var calls []any
			if o.Linked || o.EdgePending {
				calls = append(calls, m.families.EXPECT().DeleteRelationship(gomock.Any(), s.familyID, parentID, s.studentID).Return(nil))
			}
			if o.Added {
				calls = append(calls, m.families.EXPECT().DeleteAdult(gomock.Any(), s.familyID, parentID).Return(nil))
			}
			if o.RoleChanged {
				calls = append(calls, m.accounts.EXPECT().RemoveRole(gomock.Any(), parentID, models.RoleParent).Return(nil))
			}
			if o.Created {
				calls = append(calls,
					m.documents.EXPECT().DeleteByOwner(gomock.Any(), parentID).Return(nil),
					m.accounts.EXPECT().Delete(gomock.Any(), parentID).Return(nil),
				)
			}
			gomock.InOrder(calls...)

			s.Require().NoError(step.Rollback(context.Background(), data))
			s.False(data.Outcome(formdata.SlotParent1).Touched())
			s.Equal(!o.Created, data.Has(formdata.KeyParent1ID), "only an account this run created loses its identifier")

			s.Require().NoError(step.Rollback(context.Background(), data), "a second rollback is a no-op")
		})
	}
}
