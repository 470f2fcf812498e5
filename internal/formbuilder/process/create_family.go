package process

import (
	"context"
	"time"

	"formbuilder/internal/formbuilder/formdata"
	"formbuilder/internal/formbuilder/models"
	id "formbuilder/pkg/domain"
)

const StepCreateFamily = "create_family"

// CreateFamily creates the family the parents are linked into when the
// submission does not reference an existing one.
type CreateFamily struct {
	families FamilyStore
	now      func() time.Time
}

func NewCreateFamily(deps Deps) *CreateFamily {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &CreateFamily{families: deps.Families, now: now}
}

func (f *CreateFamily) Name() string { return StepCreateFamily }

func (f *CreateFamily) IsEnabled(cfg models.FormConfig) bool {
	return cfg.CreateFamily
}

func (f *CreateFamily) Process(ctx context.Context, _ models.FormConfig, data *formdata.FormData) error {
	if data.Has(formdata.KeyFamilyID) {
		return nil
	}
	name := familyName(data)
	if name == "" {
		return nil
	}

	familyID, err := f.families.InsertFamily(ctx, &models.Family{Name: name, CreatedAt: f.now()})
	if err != nil {
		return storageFault(err, "failed to insert family")
	}
	data.Set(formdata.KeyFamilyID, familyID)
	outcome := data.Record(formdata.SlotFamily)
	outcome.ID = familyID.String()
	outcome.Created = true
	return nil
}

func (f *CreateFamily) Rollback(ctx context.Context, data *formdata.FormData) error {
	outcome := data.Outcome(formdata.SlotFamily)
	if !outcome.Created {
		return nil
	}
	familyID, err := id.ParseFamilyID(outcome.ID)
	if err != nil {
		return err
	}
	if err := f.families.DeleteFamily(ctx, familyID); err != nil {
		return storageFault(err, "failed to delete family")
	}
	data.Delete(formdata.KeyFamilyID)
	data.Reset(formdata.SlotFamily)
	return nil
}

// familyName prefers the submitted family name and falls back to the
// student's surname.
func familyName(data *formdata.FormData) string {
	if name := data.GetString("familyName"); name != "" {
		return name
	}
	if surname := data.GetString("surname"); surname != "" {
		return surname + " Family"
	}
	return ""
}
