package customfield

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"formbuilder/internal/formbuilder/models"
	"formbuilder/pkg/platform/tx"
)

// PostgresStore reads custom field definitions from PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed custom field store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Save adds or replaces a definition.
func (s *PostgresStore) Save(ctx context.Context, field models.CustomField) error {
	_, err := tx.Execer(ctx, s.db).ExecContext(ctx, `
		INSERT INTO custom_fields (key, name, roles, default_value, active)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (key) DO UPDATE SET
			name = EXCLUDED.name,
			roles = EXCLUDED.roles,
			default_value = EXCLUDED.default_value,
			active = EXCLUDED.active
	`, field.Key, field.Name, pq.Array(roleStrings(field.Roles)), field.DefaultValue, field.Active)
	if err != nil {
		return fmt.Errorf("save custom field: %w", err)
	}
	return nil
}

// Definitions returns the active fields collected for role, ordered by key.
func (s *PostgresStore) Definitions(ctx context.Context, role models.RoleID) ([]models.CustomField, error) {
	rows, err := tx.Execer(ctx, s.db).QueryContext(ctx, `
		SELECT key, name, roles, default_value, active
		FROM custom_fields
		WHERE active AND $1 = ANY (roles)
		ORDER BY key
	`, string(role))
	if err != nil {
		return nil, fmt.Errorf("list custom fields: %w", err)
	}
	defer rows.Close()

	var out []models.CustomField
	for rows.Next() {
		var (
			f     models.CustomField
			roles pq.StringArray
		)
		if err := rows.Scan(&f.Key, &f.Name, &roles, &f.DefaultValue, &f.Active); err != nil {
			return nil, fmt.Errorf("scan custom field: %w", err)
		}
		for _, r := range roles {
			f.Roles = append(f.Roles, models.RoleID(r))
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list custom fields: %w", err)
	}
	return out, nil
}

func roleStrings(roles []models.RoleID) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, string(r))
	}
	return out
}
