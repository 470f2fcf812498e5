package process

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"formbuilder/internal/formbuilder/formdata"
	"formbuilder/internal/formbuilder/models"
	"formbuilder/internal/formbuilder/process/mocks"
	id "formbuilder/pkg/domain"
	dErrors "formbuilder/pkg/domain-errors"
)

var fixedNow = time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

// stepMocks bundles the port mocks shared by the step suites.
type stepMocks struct {
	ctrl        *gomock.Controller
	accounts    *mocks.MockAccountStore
	families    *mocks.MockFamilyStore
	fields      *mocks.MockCustomFieldStore
	documents   *mocks.MockDocumentStore
	credentials *mocks.MockCredentialGenerator
}

func newStepMocks(t *testing.T) *stepMocks {
	ctrl := gomock.NewController(t)
	return &stepMocks{
		ctrl:        ctrl,
		accounts:    mocks.NewMockAccountStore(ctrl),
		families:    mocks.NewMockFamilyStore(ctrl),
		fields:      mocks.NewMockCustomFieldStore(ctrl),
		documents:   mocks.NewMockDocumentStore(ctrl),
		credentials: mocks.NewMockCredentialGenerator(ctrl),
	}
}

func (m *stepMocks) deps() Deps {
	return Deps{
		Accounts:     m.accounts,
		Families:     m.families,
		CustomFields: m.fields,
		Documents:    m.documents,
		Credentials:  m.credentials,
		Now:          func() time.Time { return fixedNow },
	}
}

// expectCredentials stubs username, password and hash generation once.
func (m *stepMocks) expectCredentials(role models.RoleID, prefix, username string) {
	m.credentials.EXPECT().GenerateUsername(gomock.Any(), role, prefix, gomock.Any()).Return(username, nil)
	m.credentials.EXPECT().GeneratePassword().Return("s3cret-pass", nil)
	m.credentials.EXPECT().HashPassword("s3cret-pass").Return("hashed", nil)
	m.fields.EXPECT().Definitions(gomock.Any(), role).Return(nil, nil)
}

type CreateStudentSuite struct {
	suite.Suite
	m    *stepMocks
	step *CreateStudent
	cfg  models.FormConfig
}

func TestCreateStudentSuite(t *testing.T) {
	suite.Run(t, new(CreateStudentSuite))
}

func (s *CreateStudentSuite) SetupTest() {
	s.m = newStepMocks(s.T())
	s.step = NewCreateStudent(s.m.deps())
	s.cfg = models.FormConfig{
		ID:                  "admission",
		CreateStudent:       true,
		StudentDefaultEmail: "[username]@students.example.org",
	}
}

func (s *CreateStudentSuite) TestIsEnabled() {
	s.True(s.step.IsEnabled(models.FormConfig{CreateStudent: true}))
	s.False(s.step.IsEnabled(models.FormConfig{}))
}

func (s *CreateStudentSuite) TestProcess() {
	s.Run("creates the student when no identifier is supplied", func() {
		newID := id.PersonID(uuid.New())
		data := formdata.New(map[string]any{"preferredName": "Alex", "surname": "Lee", "dateStart": "2027-01-10"})
		s.m.expectCredentials(models.RoleStudent, "", "alee")
		s.m.accounts.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, a *models.Account) (id.PersonID, error) {
				s.Equal("alee", a.Username)
				s.Equal("hashed", a.PasswordHash)
				s.True(a.PasswordForceReset)
				s.Equal("Alex Lee", a.OfficialName)
				s.Equal("alee@students.example.org", a.Email)
				s.Equal(models.StatusExpected, a.Status)
				s.Equal([]models.RoleID{models.RoleStudent}, a.Roles)
				return newID, nil
			})

		s.Require().NoError(s.step.Process(context.Background(), s.cfg, data))

		s.Equal(newID, data.Get(formdata.KeyStudentID))
		outcome := data.Outcome(formdata.SlotStudent)
		s.True(outcome.Created)
		s.Equal(newID.String(), outcome.ID)
	})

	s.Run("skips creation when required names are missing", func() {
		data := formdata.New(map[string]any{"preferredName": "Alex"})
		s.Require().NoError(s.step.Process(context.Background(), s.cfg, data))
		s.False(data.Has(formdata.KeyStudentID))
		s.False(data.Outcome(formdata.SlotStudent).Touched())
	})

	s.Run("existing student only receives documents", func() {
		existing := id.PersonID(uuid.New())
		docID := id.DocumentID(uuid.New())
		data := formdata.New(map[string]any{
			formdata.KeyStudentID: existing.String(),
			"preferredName":       "Alex",
			"surname":             "Lee",
			formdata.KeyDocuments: []any{docID.String()},
		})
		s.m.documents.EXPECT().Transfer(gomock.Any(), []id.DocumentID{docID}, existing).Return(nil)

		s.Require().NoError(s.step.Process(context.Background(), s.cfg, data))
		s.False(data.Outcome(formdata.SlotStudent).Created)
	})

	s.Run("insert fault is reported as internal", func() {
		data := formdata.New(map[string]any{"preferredName": "Alex", "surname": "Lee"})
		s.m.expectCredentials(models.RoleStudent, "", "alee")
		s.m.accounts.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(id.PersonID{}, errors.New("connection reset"))

		err := s.step.Process(context.Background(), s.cfg, data)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
		s.False(data.Outcome(formdata.SlotStudent).Created)
	})

	s.Run("invalid start date is a validation error", func() {
		data := formdata.New(map[string]any{"preferredName": "Alex", "surname": "Lee", "dateStart": "10/01/2027"})
		s.m.credentials.EXPECT().GenerateUsername(gomock.Any(), models.RoleStudent, "", gomock.Any()).Return("alee", nil)
		s.m.credentials.EXPECT().GeneratePassword().Return("pw", nil)
		s.m.credentials.EXPECT().HashPassword("pw").Return("hashed", nil)

		err := s.step.Process(context.Background(), s.cfg, data)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *CreateStudentSuite) TestCustomFields() {
	data := formdata.New(map[string]any{"preferredName": "Alex", "surname": "Lee", "customhouse": "Red"})
	s.m.credentials.EXPECT().GenerateUsername(gomock.Any(), models.RoleStudent, "", gomock.Any()).Return("alee", nil)
	s.m.credentials.EXPECT().GeneratePassword().Return("pw", nil)
	s.m.credentials.EXPECT().HashPassword("pw").Return("hashed", nil)
	s.m.fields.EXPECT().Definitions(gomock.Any(), models.RoleStudent).Return([]models.CustomField{
		{Key: "house", Roles: []models.RoleID{models.RoleStudent}, Active: true},
		{Key: "bus", Roles: []models.RoleID{models.RoleStudent}, Active: true, DefaultValue: "none"},
		{Key: "employer", Roles: []models.RoleID{models.RoleParent}, Active: true, DefaultValue: "x"},
	}, nil)
	s.m.accounts.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, a *models.Account) (id.PersonID, error) {
			s.Equal(map[string]string{"house": "Red", "bus": "none"}, a.CustomFields)
			return id.PersonID(uuid.New()), nil
		})

	s.Require().NoError(s.step.Process(context.Background(), s.cfg, data))
}

func (s *CreateStudentSuite) TestRollback() {
	s.Run("no-op without provenance", func() {
		data := formdata.New(map[string]any{formdata.KeyStudentID: uuid.NewString()})
		s.Require().NoError(s.step.Rollback(context.Background(), data))
		s.True(data.Has(formdata.KeyStudentID))
	})

	s.Run("deletes the created student and clears the identifier", func() {
		newID := id.PersonID(uuid.New())
		data := formdata.New(nil)
		data.Set(formdata.KeyStudentID, newID)
		outcome := data.Record(formdata.SlotStudent)
		outcome.ID = newID.String()
		outcome.Created = true

		s.m.documents.EXPECT().DeleteByOwner(gomock.Any(), newID).Return(nil)
		s.m.accounts.EXPECT().Delete(gomock.Any(), newID).Return(nil)

		s.Require().NoError(s.step.Rollback(context.Background(), data))
		s.False(data.Has(formdata.KeyStudentID))

		// repeated rollback touches nothing
		s.Require().NoError(s.step.Rollback(context.Background(), data))
	})

	s.Run("delete fault keeps provenance for a retry", func() {
		newID := id.PersonID(uuid.New())
		data := formdata.New(nil)
		data.Set(formdata.KeyStudentID, newID)
		outcome := data.Record(formdata.SlotStudent)
		outcome.ID = newID.String()
		outcome.Created = true

		s.m.documents.EXPECT().DeleteByOwner(gomock.Any(), newID).Return(nil)
		s.m.accounts.EXPECT().Delete(gomock.Any(), newID).Return(errors.New("timeout"))

		s.Require().Error(s.step.Rollback(context.Background(), data))
		s.True(data.Outcome(formdata.SlotStudent).Created)
	})
}
