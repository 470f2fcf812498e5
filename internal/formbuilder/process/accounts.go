package process

import (
	"context"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"

	"formbuilder/internal/formbuilder/formdata"
	"formbuilder/internal/formbuilder/models"
	id "formbuilder/pkg/domain"
	dErrors "formbuilder/pkg/domain-errors"
)

const dateLayout = "2006-01-02"

// party describes where one account's fields live in the form data and
// where its identifier and outcome are recorded.
type party struct {
	prefix string
	slot   string
	idKey  string
	role   models.RoleID
}

var studentParty = party{
	prefix: "",
	slot:   formdata.SlotStudent,
	idKey:  formdata.KeyStudentID,
	role:   models.RoleStudent,
}

var parentParties = []party{
	{prefix: "parent1", slot: formdata.SlotParent1, idKey: formdata.KeyParent1ID, role: models.RoleParent},
	{prefix: "parent2", slot: formdata.SlotParent2, idKey: formdata.KeyParent2ID, role: models.RoleParent},
}

func (p party) key(name string) string {
	return p.prefix + name
}

// Deps are the collaborators shared by the concrete steps.
type Deps struct {
	Accounts     AccountStore
	Families     FamilyStore
	CustomFields CustomFieldStore
	Documents    DocumentStore
	Credentials  CredentialGenerator
	// Now defaults to time.Now.
	Now func() time.Time
}

// accounts creates accounts for a party. Student and parent steps both
// compose it.
type accounts struct {
	store       AccountStore
	fields      CustomFieldStore
	documents   DocumentStore
	credentials CredentialGenerator
	now         func() time.Time
}

func newAccounts(deps Deps) *accounts {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &accounts{
		store:       deps.Accounts,
		fields:      deps.CustomFields,
		documents:   deps.Documents,
		credentials: deps.Credentials,
		now:         now,
	}
}

// create builds and inserts the account for p. The generated password is
// only stored hashed and the account is flagged for a reset on first login.
func (a *accounts) create(ctx context.Context, cfg models.FormConfig, p party, data *formdata.FormData) (id.PersonID, error) {
	username, err := a.credentials.GenerateUsername(ctx, p.role, p.prefix, data)
	if err != nil {
		return id.PersonID{}, storageFault(err, "failed to generate username")
	}
	password, err := a.credentials.GeneratePassword()
	if err != nil {
		return id.PersonID{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate password")
	}
	hash, err := a.credentials.HashPassword(password)
	if err != nil {
		return id.PersonID{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}

	account, err := a.userData(p, data)
	if err != nil {
		return id.PersonID{}, err
	}
	account.Username = username
	account.PasswordHash = hash
	account.PasswordForceReset = true

	a.setStatus(cfg, account)
	if p.role == models.RoleStudent {
		a.setDefaults(cfg, account)
	}
	if err := a.setCustomFields(ctx, p, data, account); err != nil {
		return id.PersonID{}, err
	}

	personID, err := a.store.Insert(ctx, account)
	if err != nil {
		return id.PersonID{}, storageFault(err, "failed to insert account")
	}
	return personID, nil
}

func (a *accounts) userData(p party, data *formdata.FormData) (*models.Account, error) {
	preferred := data.GetString(p.key("preferredName"))
	surname := data.GetString(p.key("surname"))
	first := data.GetString(p.key("firstName"))
	if first == "" {
		first = preferred
	}
	official := data.GetString(p.key("officialName"))
	if official == "" {
		official = strings.TrimSpace(first + " " + surname)
	}

	account := &models.Account{
		Title:         data.GetString(p.key("title")),
		PreferredName: preferred,
		Surname:       surname,
		FirstName:     first,
		OfficialName:  official,
		Email:         data.GetString(p.key("email")),
		Phone:         data.GetString(p.key("phone1")),
		PrimaryRole:   p.role,
		Roles:         []models.RoleID{p.role},
		CreatedAt:     a.now(),
	}

	if raw := data.GetString(p.key("dateStart")); raw != "" {
		start, err := time.Parse(dateLayout, raw)
		if err != nil {
			return nil, dErrors.New(dErrors.CodeValidation, p.key("dateStart")+" must be a date in YYYY-MM-DD format")
		}
		account.DateStart = &start
	}
	return account, nil
}

// setStatus marks accounts that start in the future as Expected.
func (a *accounts) setStatus(cfg models.FormConfig, account *models.Account) {
	if account.DateStart != nil && account.DateStart.After(a.now()) {
		account.Status = models.StatusExpected
		return
	}
	account.Status = cfg.Status()
}

// setDefaults fills the student email and website from the form defaults.
func (a *accounts) setDefaults(cfg models.FormConfig, account *models.Account) {
	if account.Email == "" && cfg.StudentDefaultEmail != "" {
		account.Email = strings.ReplaceAll(cfg.StudentDefaultEmail, "[username]", account.Username)
	}
	if account.Website == "" && cfg.StudentDefaultWebsite != "" {
		account.Website = strings.ReplaceAll(cfg.StudentDefaultWebsite, "[username]", account.Username)
	}
}

// setCustomFields copies submitted custom field values, falling back to each
// field's default.
func (a *accounts) setCustomFields(ctx context.Context, p party, data *formdata.FormData, account *models.Account) error {
	if a.fields == nil {
		return nil
	}
	defs, err := a.fields.Definitions(ctx, p.role)
	if err != nil {
		return storageFault(err, "failed to load custom fields")
	}
	values := make(map[string]string, len(defs))
	for _, def := range defs {
		if !def.AppliesTo(p.role) {
			continue
		}
		value := data.GetString(p.key("custom" + def.Key))
		if value == "" {
			value = def.DefaultValue
		}
		if value != "" {
			values[def.Key] = value
		}
	}
	if len(values) > 0 {
		account.CustomFields = values
	}
	return nil
}

// transferDocuments attaches the party's pending documents to owner.
func (a *accounts) transferDocuments(ctx context.Context, p party, data *formdata.FormData, owner id.PersonID) error {
	if a.documents == nil || !data.Has(p.key(formdata.KeyDocuments)) {
		return nil
	}
	pending, err := documentIDsFrom(data, p.key(formdata.KeyDocuments))
	if err != nil {
		return err
	}
	if err := a.documents.Transfer(ctx, pending, owner); err != nil {
		return storageFault(err, "failed to transfer personal documents")
	}
	return nil
}

// remove deletes an account created by this run along with any documents
// transferred to it. Both deletes are attempted.
func (a *accounts) remove(ctx context.Context, personID id.PersonID) error {
	var merr *multierror.Error
	if a.documents != nil {
		if err := a.documents.DeleteByOwner(ctx, personID); err != nil {
			merr = multierror.Append(merr, storageFault(err, "failed to delete transferred documents"))
		}
	}
	if err := a.store.Delete(ctx, personID); err != nil {
		merr = multierror.Append(merr, storageFault(err, "failed to delete account"))
	}
	return merr.ErrorOrNil()
}
