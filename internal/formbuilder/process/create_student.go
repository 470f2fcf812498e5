package process

import (
	"context"

	"formbuilder/internal/formbuilder/formdata"
	"formbuilder/internal/formbuilder/models"
	id "formbuilder/pkg/domain"
)

const StepCreateStudent = "create_student"

var studentRequiredFields = []string{"preferredName", "surname"}

// CreateStudent creates the student account when the submission does not
// reference an existing one, then attaches the student's pending documents.
type CreateStudent struct {
	accounts *accounts
}

func NewCreateStudent(deps Deps) *CreateStudent {
	return &CreateStudent{accounts: newAccounts(deps)}
}

func (s *CreateStudent) Name() string { return StepCreateStudent }

func (s *CreateStudent) IsEnabled(cfg models.FormConfig) bool {
	return cfg.CreateStudent
}

func (s *CreateStudent) Process(ctx context.Context, cfg models.FormConfig, data *formdata.FormData) error {
	if !data.Has(studentParty.idKey) && data.HasAll(studentRequiredFields...) {
		personID, err := s.accounts.create(ctx, cfg, studentParty, data)
		if err != nil {
			return err
		}
		data.Set(studentParty.idKey, personID)
		outcome := data.Record(studentParty.slot)
		outcome.ID = personID.String()
		outcome.Created = true
	}

	if !data.Has(studentParty.idKey) {
		return nil
	}
	personID, err := personIDFrom(data, studentParty.idKey)
	if err != nil {
		return err
	}
	return s.accounts.transferDocuments(ctx, studentParty, data, personID)
}

func (s *CreateStudent) Rollback(ctx context.Context, data *formdata.FormData) error {
	outcome := data.Outcome(studentParty.slot)
	if !outcome.Created {
		return nil
	}
	personID, err := id.ParsePersonID(outcome.ID)
	if err != nil {
		return err
	}

	if err := s.accounts.remove(ctx, personID); err != nil {
		return err
	}

	data.Delete(studentParty.idKey)
	data.Reset(studentParty.slot)
	return nil
}
