package process

import (
	"context"
	"errors"

	"github.com/hashicorp/go-multierror"

	"formbuilder/internal/formbuilder/formdata"
	"formbuilder/internal/formbuilder/models"
	id "formbuilder/pkg/domain"
	dErrors "formbuilder/pkg/domain-errors"
	"formbuilder/pkg/platform/sentinel"
)

const StepCreateParents = "create_parents"

// CreateParents creates up to two parent accounts, grants them the parent
// role and links them to the family and the student.
type CreateParents struct {
	accounts *accounts
	families FamilyStore
}

func NewCreateParents(deps Deps) *CreateParents {
	return &CreateParents{accounts: newAccounts(deps), families: deps.Families}
}

func (c *CreateParents) Name() string { return StepCreateParents }

func (c *CreateParents) IsEnabled(cfg models.FormConfig) bool {
	return cfg.CreateParents
}

func parentRequiredFields(p party) []string {
	return []string{p.key("preferredName"), p.key("surname"), p.key("relationship")}
}

func (c *CreateParents) Process(ctx context.Context, cfg models.FormConfig, data *formdata.FormData) error {
	parent1, parent2 := parentParties[0], parentParties[1]

	if !data.Has(parent1.idKey) && data.HasAll(parentRequiredFields(parent1)...) {
		if err := c.createParent(ctx, cfg, parent1, data); err != nil {
			return err
		}
	}
	if data.Has(parent1.idKey) {
		if err := c.attach(ctx, parent1, 1, data); err != nil {
			return err
		}
	}

	// Parent 2 is only created while no parent 1 is present, including a
	// parent 1 created just above.
	if !data.Has(parent1.idKey) && !data.Has(parent2.idKey) && data.HasAll(parentRequiredFields(parent2)...) {
		if err := c.createParent(ctx, cfg, parent2, data); err != nil {
			return err
		}
	}
	if data.Has(parent2.idKey) {
		if err := c.attach(ctx, parent2, 2, data); err != nil {
			return err
		}
	}
	return nil
}

func (c *CreateParents) createParent(ctx context.Context, cfg models.FormConfig, p party, data *formdata.FormData) error {
	personID, err := c.accounts.create(ctx, cfg, p, data)
	if err != nil {
		return err
	}
	data.Set(p.idKey, personID)
	outcome := data.Record(p.slot)
	outcome.ID = personID.String()
	outcome.Created = true

	return c.accounts.transferDocuments(ctx, p, data, personID)
}

// attach grants the parent role and links the parent into the family.
func (c *CreateParents) attach(ctx context.Context, p party, priority int, data *formdata.FormData) error {
	personID, err := personIDFrom(data, p.idKey)
	if err != nil {
		return err
	}
	outcome := data.Record(p.slot)
	outcome.ID = personID.String()

	changed, err := c.accounts.store.AddRole(ctx, personID, models.RoleParent)
	if err != nil {
		return storageFault(err, "failed to grant parent role")
	}
	if changed {
		outcome.RoleChanged = true
	}

	return c.link(ctx, p, priority, personID, data)
}

// link reuses an existing family membership or adds one, then inserts the
// relationship edge to the student. The edge is always new.
func (c *CreateParents) link(ctx context.Context, p party, priority int, personID id.PersonID, data *formdata.FormData) error {
	if !data.HasAll(formdata.KeyFamilyID, p.key("relationship"), p.idKey, formdata.KeyStudentID) {
		return nil
	}
	familyID, err := familyIDFrom(data, formdata.KeyFamilyID)
	if err != nil {
		return err
	}
	studentID, err := personIDFrom(data, formdata.KeyStudentID)
	if err != nil {
		return err
	}

	outcome := data.Record(p.slot)
	outcome.FamilyID = familyID.String()
	outcome.ChildID = studentID.String()

	existing, err := c.families.FindAdult(ctx, familyID, personID)
	switch {
	case err == nil:
		outcome.LinkID = existing.ID.String()
	case errors.Is(err, sentinel.ErrNotFound):
		adult := models.NewFamilyAdult(familyID, personID, priority)
		linkID, err := c.families.InsertAdult(ctx, &adult)
		if err != nil {
			return storageFault(err, "failed to add adult to family")
		}
		outcome.LinkID = linkID.String()
		outcome.Added = true
	default:
		return storageFault(err, "failed to look up family adult")
	}

	outcome.EdgePending = true
	err = c.families.InsertRelationship(ctx, &models.FamilyRelationship{
		FamilyID:     familyID,
		AdultID:      personID,
		ChildID:      studentID,
		Relationship: data.GetString(p.key("relationship")),
	})
	if errors.Is(err, sentinel.ErrConflict) {
		// the edge predates this run
		outcome.EdgePending = false
		return dErrors.Wrap(err, dErrors.CodeConflict, "relationship already exists")
	}
	if err != nil {
		return storageFault(err, "failed to insert family relationship")
	}
	outcome.EdgePending = false
	outcome.Linked = true
	return nil
}

// Rollback undoes edges, then memberships, then role grants, then accounts.
// An edge whose insert faulted is deleted too; deleting an absent edge is a
// no-op. Each compensation clears its flag once done so a repeated call is a
// no-op.
func (c *CreateParents) Rollback(ctx context.Context, data *formdata.FormData) error {
	var merr *multierror.Error

	for _, p := range parentParties {
		outcome := data.Record(p.slot)
		if !outcome.Linked && !outcome.EdgePending {
			continue
		}
		familyID, adultID, err := parseLink(outcome)
		if err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		childID, err := id.ParsePersonID(outcome.ChildID)
		if err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		if err := c.families.DeleteRelationship(ctx, familyID, adultID, childID); err != nil {
			merr = multierror.Append(merr, storageFault(err, "failed to delete "+p.slot+" relationship"))
			continue
		}
		outcome.Linked = false
		outcome.EdgePending = false
	}

	for _, p := range parentParties {
		outcome := data.Record(p.slot)
		if !outcome.Added {
			continue
		}
		familyID, adultID, err := parseLink(outcome)
		if err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		if err := c.families.DeleteAdult(ctx, familyID, adultID); err != nil {
			merr = multierror.Append(merr, storageFault(err, "failed to remove "+p.slot+" from family"))
			continue
		}
		outcome.Added = false
		outcome.LinkID = ""
	}

	for _, p := range parentParties {
		outcome := data.Record(p.slot)
		if !outcome.RoleChanged {
			continue
		}
		personID, err := id.ParsePersonID(outcome.ID)
		if err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		if err := c.accounts.store.RemoveRole(ctx, personID, models.RoleParent); err != nil {
			merr = multierror.Append(merr, storageFault(err, "failed to revoke "+p.slot+" role"))
			continue
		}
		outcome.RoleChanged = false
	}

	for _, p := range parentParties {
		outcome := data.Record(p.slot)
		if !outcome.Created {
			continue
		}
		personID, err := id.ParsePersonID(outcome.ID)
		if err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		if err := c.accounts.remove(ctx, personID); err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		data.Delete(p.idKey)
		outcome.Created = false
	}

	for _, p := range parentParties {
		if !data.Outcome(p.slot).Touched() {
			data.Reset(p.slot)
		}
	}
	return merr.ErrorOrNil()
}

func parseLink(outcome *formdata.Outcome) (id.FamilyID, id.PersonID, error) {
	familyID, err := id.ParseFamilyID(outcome.FamilyID)
	if err != nil {
		return id.FamilyID{}, id.PersonID{}, err
	}
	personID, err := id.ParsePersonID(outcome.ID)
	if err != nil {
		return id.FamilyID{}, id.PersonID{}, err
	}
	return familyID, personID, nil
}
