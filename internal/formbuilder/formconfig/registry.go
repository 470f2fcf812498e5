// Package formconfig loads form definitions from a config file.
package formconfig

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"formbuilder/internal/formbuilder/models"
	dErrors "formbuilder/pkg/domain-errors"
)

// DefaultFormID names the built-in admissions form used when no forms file
// is configured.
const DefaultFormID = "admissions"

// Registry resolves form definitions by ID.
type Registry struct {
	forms map[string]models.FormConfig
}

// NewRegistry validates forms and indexes them by ID.
func NewRegistry(forms ...models.FormConfig) (*Registry, error) {
	r := &Registry{forms: make(map[string]models.FormConfig, len(forms))}
	for i, form := range forms {
		form.ID = strings.TrimSpace(form.ID)
		if form.ID == "" {
			return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("form %d: id is required", i))
		}
		if _, dup := r.forms[form.ID]; dup {
			return nil, dErrors.New(dErrors.CodeConflict, fmt.Sprintf("form %q defined twice", form.ID))
		}
		if err := validateStatus(form.DefaultStatus); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeValidation, fmt.Sprintf("form %q", form.ID))
		}
		if form.Name == "" {
			form.Name = form.ID
		}
		r.forms[form.ID] = form
	}
	return r, nil
}

// Default returns a registry holding the admissions form with every process
// enabled.
func Default() *Registry {
	r, _ := NewRegistry(models.FormConfig{
		ID:            DefaultFormID,
		Name:          "Admissions",
		CreateStudent: true,
		CreateFamily:  true,
		CreateParents: true,
		DefaultStatus: models.StatusFull,
	})
	return r
}

// Load reads forms from a YAML, JSON or TOML file.
func Load(path string) (*Registry, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read forms config %s: %w", path, err)
	}
	return decode(v)
}

// LoadReader reads forms from r in the given format ("yaml", "json", "toml").
func LoadReader(r io.Reader, format string) (*Registry, error) {
	v := viper.New()
	v.SetConfigType(format)
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("read forms config: %w", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Registry, error) {
	var forms []models.FormConfig
	if err := v.UnmarshalKey("forms", &forms); err != nil {
		return nil, fmt.Errorf("decode forms config: %w", err)
	}
	if len(forms) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "forms config defines no forms")
	}
	return NewRegistry(forms...)
}

// Get returns the form with the given ID.
func (r *Registry) Get(formID string) (models.FormConfig, bool) {
	form, ok := r.forms[strings.TrimSpace(formID)]
	return form, ok
}

// List returns all forms ordered by ID.
func (r *Registry) List() []models.FormConfig {
	out := make([]models.FormConfig, 0, len(r.forms))
	for _, form := range r.forms {
		out = append(out, form)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func validateStatus(status models.AccountStatus) error {
	switch status {
	case "", models.StatusFull, models.StatusExpected, models.StatusLeft, models.StatusPending:
		return nil
	default:
		return fmt.Errorf("unknown default status %q", status)
	}
}
