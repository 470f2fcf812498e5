package account

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"formbuilder/internal/formbuilder/models"
	"formbuilder/internal/platform/postgres"
	id "formbuilder/pkg/domain"
	"formbuilder/pkg/platform/sentinel"
	"formbuilder/pkg/platform/tx"
)

// PostgresStore persists accounts and role grants in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed account store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Insert(ctx context.Context, account *models.Account) (id.PersonID, error) {
	personID := account.ID
	if personID.IsNil() {
		personID = id.PersonID(uuid.New())
	}
	customFields, err := json.Marshal(account.CustomFields)
	if err != nil {
		return id.PersonID{}, fmt.Errorf("marshal custom fields: %w", err)
	}
	if account.CustomFields == nil {
		customFields = []byte("{}")
	}
	roles := make([]string, 0, len(account.Roles))
	for _, r := range account.Roles {
		roles = append(roles, string(r))
	}

	err = tx.Run(ctx, s.db, func(ctx context.Context) error {
		exec := tx.Execer(ctx, s.db)
		_, err := exec.ExecContext(ctx, `
			INSERT INTO accounts (
				id, username, password_hash, password_force_reset, title, preferred_name, surname,
				first_name, official_name, email, website, phone, status, primary_role,
				custom_fields, date_start, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		`,
			uuid.UUID(personID), account.Username, account.PasswordHash, account.PasswordForceReset,
			account.Title, account.PreferredName, account.Surname, account.FirstName, account.OfficialName,
			account.Email, account.Website, account.Phone, string(account.Status), string(account.PrimaryRole),
			customFields, account.DateStart, account.CreatedAt,
		)
		if err != nil {
			return postgres.Classify(err)
		}
		_, err = exec.ExecContext(ctx, `
			INSERT INTO account_roles (person_id, role)
			SELECT $1, unnest($2::text[])
			ON CONFLICT DO NOTHING
		`, uuid.UUID(personID), pq.Array(roles))
		return postgres.Classify(err)
	})
	if err != nil {
		return id.PersonID{}, fmt.Errorf("insert account: %w", err)
	}
	return personID, nil
}

func (s *PostgresStore) Delete(ctx context.Context, personID id.PersonID) error {
	_, err := tx.Execer(ctx, s.db).ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, uuid.UUID(personID))
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}

// AddRole reports true only when the grant row was inserted by this call.
func (s *PostgresStore) AddRole(ctx context.Context, personID id.PersonID, role models.RoleID) (bool, error) {
	res, err := tx.Execer(ctx, s.db).ExecContext(ctx, `
		INSERT INTO account_roles (person_id, role) VALUES ($1, $2)
		ON CONFLICT (person_id, role) DO NOTHING
	`, uuid.UUID(personID), string(role))
	if err != nil {
		return false, fmt.Errorf("add role: %w", postgres.Classify(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("add role: %w", err)
	}
	return n == 1, nil
}

func (s *PostgresStore) RemoveRole(ctx context.Context, personID id.PersonID, role models.RoleID) error {
	_, err := tx.Execer(ctx, s.db).ExecContext(ctx,
		`DELETE FROM account_roles WHERE person_id = $1 AND role = $2`, uuid.UUID(personID), string(role))
	if err != nil {
		return fmt.Errorf("remove role: %w", err)
	}
	return nil
}

func (s *PostgresStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := tx.Execer(ctx, s.db).QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE lower(username) = lower($1))`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, personID id.PersonID) (*models.Account, error) {
	var (
		a            models.Account
		rawID        uuid.UUID
		status, role string
		customFields []byte
		dateStart    sql.NullTime
		roles        pq.StringArray
	)
	err := tx.Execer(ctx, s.db).QueryRowContext(ctx, `
		SELECT a.id, a.username, a.password_hash, a.password_force_reset, a.title, a.preferred_name,
			a.surname, a.first_name, a.official_name, a.email, a.website, a.phone, a.status,
			a.primary_role, a.custom_fields, a.date_start, a.created_at,
			COALESCE(array_agg(r.role ORDER BY r.role) FILTER (WHERE r.role IS NOT NULL), '{}')
		FROM accounts a
		LEFT JOIN account_roles r ON r.person_id = a.id
		WHERE a.id = $1
		GROUP BY a.id
	`, uuid.UUID(personID)).Scan(
		&rawID, &a.Username, &a.PasswordHash, &a.PasswordForceReset, &a.Title, &a.PreferredName,
		&a.Surname, &a.FirstName, &a.OfficialName, &a.Email, &a.Website, &a.Phone, &status,
		&role, &customFields, &dateStart, &a.CreatedAt, &roles,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	a.ID = id.PersonID(rawID)
	a.Status = models.AccountStatus(status)
	a.PrimaryRole = models.RoleID(role)
	if dateStart.Valid {
		a.DateStart = &dateStart.Time
	}
	if len(customFields) > 0 {
		if err := json.Unmarshal(customFields, &a.CustomFields); err != nil {
			return nil, fmt.Errorf("unmarshal custom fields: %w", err)
		}
		if len(a.CustomFields) == 0 {
			a.CustomFields = nil
		}
	}
	for _, r := range roles {
		a.Roles = append(a.Roles, models.RoleID(r))
	}
	return &a, nil
}

// Count returns the number of stored accounts.
func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := tx.Execer(ctx, s.db).QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return n, nil
}
