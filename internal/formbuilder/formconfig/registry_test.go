package formconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"formbuilder/internal/formbuilder/models"
	dErrors "formbuilder/pkg/domain-errors"
)

type RegistrySuite struct {
	suite.Suite
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

const formsYAML = `
forms:
  - id: admissions
    name: Admissions 2026
    create_student: true
    create_family: true
    create_parents: true
    student_default_email: "[username]@students.example.org"
  - id: staff-children
    create_student: true
    default_status: Expected
`

func (s *RegistrySuite) TestLoadReader() {
	r, err := LoadReader(strings.NewReader(formsYAML), "yaml")
	s.Require().NoError(err)

	forms := r.List()
	s.Require().Len(forms, 2)
	s.Equal("admissions", forms[0].ID)
	s.Equal("staff-children", forms[1].ID)
	s.Equal("staff-children", forms[1].Name)

	admissions, ok := r.Get(" admissions ")
	s.Require().True(ok)
	s.True(admissions.CreateParents)
	s.Equal("[username]@students.example.org", admissions.StudentDefaultEmail)

	staff, ok := r.Get("staff-children")
	s.Require().True(ok)
	s.False(staff.CreateParents)
	s.Equal(models.StatusExpected, staff.Status())
}

func (s *RegistrySuite) TestLoadFile() {
	path := filepath.Join(s.T().TempDir(), "forms.json")
	s.Require().NoError(os.WriteFile(path, []byte(`{"forms":[{"id":"admissions","create_student":true}]}`), 0o600))

	r, err := Load(path)
	s.Require().NoError(err)
	form, ok := r.Get("admissions")
	s.Require().True(ok)
	s.True(form.CreateStudent)
}

func (s *RegistrySuite) TestValidation() {
	s.Run("duplicate ids", func() {
		_, err := NewRegistry(models.FormConfig{ID: "a"}, models.FormConfig{ID: "a"})
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("missing id", func() {
		_, err := NewRegistry(models.FormConfig{Name: "nameless"})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("unknown status", func() {
		_, err := NewRegistry(models.FormConfig{ID: "a", DefaultStatus: "Archived"})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("empty file", func() {
		_, err := LoadReader(strings.NewReader("forms: []\n"), "yaml")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *RegistrySuite) TestDefault() {
	form, ok := Default().Get(DefaultFormID)
	s.Require().True(ok)
	s.True(form.CreateStudent && form.CreateFamily && form.CreateParents)
}
