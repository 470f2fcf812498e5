// Package credentials generates usernames and passwords for accounts created
// by form submissions.
package credentials

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"formbuilder/internal/formbuilder/formdata"
	"formbuilder/internal/formbuilder/models"
	dErrors "formbuilder/pkg/domain-errors"
)

const maxUsernameAttempts = 100

// Default username formats per role. Tokens are replaced with the submitted
// name fields of the party.
const (
	DefaultStudentFormat = "[preferredNameInitial][surname]"
	DefaultParentFormat  = "[preferredName].[surname]"
)

// UsernameChecker reports whether a username is already taken.
type UsernameChecker interface {
	UsernameExists(ctx context.Context, username string) (bool, error)
}

// Generator implements the credential generator used by the process steps.
type Generator struct {
	checker UsernameChecker
	formats map[models.RoleID]string
	cost    int
}

type Option func(*Generator)

// WithFormat overrides the username format for role.
func WithFormat(role models.RoleID, format string) Option {
	return func(g *Generator) {
		if strings.TrimSpace(format) != "" {
			g.formats[role] = format
		}
	}
}

// WithBcryptCost sets the hashing cost. Tests use bcrypt.MinCost.
func WithBcryptCost(cost int) Option {
	return func(g *Generator) {
		g.cost = cost
	}
}

func New(checker UsernameChecker, opts ...Option) *Generator {
	g := &Generator{
		checker: checker,
		formats: map[models.RoleID]string{
			models.RoleStudent: DefaultStudentFormat,
			models.RoleParent:  DefaultParentFormat,
		},
		cost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GenerateUsername renders the role's format from the fields under prefix
// and appends a numeric suffix until the name is free.
func (g *Generator) GenerateUsername(ctx context.Context, role models.RoleID, prefix string, data *formdata.FormData) (string, error) {
	format, ok := g.formats[role]
	if !ok {
		format = DefaultParentFormat
	}

	base := normalize(render(format, prefix, data))
	if base == "" {
		return "", dErrors.New(dErrors.CodeValidation, "cannot build a username without name fields")
	}

	candidate := base
	for attempt := 1; attempt <= maxUsernameAttempts; attempt++ {
		taken, err := g.checker.UsernameExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("checking username %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + strconv.Itoa(attempt)
	}
	return "", dErrors.New(dErrors.CodeConflict, "no free username for "+base)
}

func render(format, prefix string, data *formdata.FormData) string {
	preferred := data.GetString(prefix + "preferredName")
	first := data.GetString(prefix + "firstName")
	if first == "" {
		first = preferred
	}
	initial := ""
	if r := []rune(preferred); len(r) > 0 {
		initial = string(r[0])
	}
	return strings.NewReplacer(
		"[preferredNameInitial]", initial,
		"[preferredName]", preferred,
		"[firstName]", first,
		"[surname]", data.GetString(prefix+"surname"),
	).Replace(format)
}

// normalize lowercases, strips accents and drops anything that is not a
// letter, digit, dot, dash or underscore.
func normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	var b strings.Builder
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), ".-_")
}
