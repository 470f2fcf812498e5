package document

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"formbuilder/internal/formbuilder/models"
	"formbuilder/internal/platform/postgres"
	id "formbuilder/pkg/domain"
	"formbuilder/pkg/platform/sentinel"
	"formbuilder/pkg/platform/tx"
)

// PostgresStore persists personal documents in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed document store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// SavePending stores an uploaded document that has no owner yet.
func (s *PostgresStore) SavePending(ctx context.Context, doc *models.PersonalDocument) (id.DocumentID, error) {
	docID := doc.ID
	if docID.IsNil() {
		docID = id.DocumentID(uuid.New())
	}
	_, err := tx.Execer(ctx, s.db).ExecContext(ctx, `
		INSERT INTO personal_documents (id, owner_id, document_type, document_name, document_number, file_path)
		VALUES ($1, NULL, $2, $3, $4, $5)
	`, uuid.UUID(docID), doc.DocumentType, doc.DocumentName, doc.DocumentNo, doc.FilePath)
	if err != nil {
		return id.DocumentID{}, fmt.Errorf("save pending document: %w", postgres.Classify(err))
	}
	return docID, nil
}

// Transfer copies the pending documents to owner in a single statement.
func (s *PostgresStore) Transfer(ctx context.Context, pending []id.DocumentID, owner id.PersonID) error {
	if len(pending) == 0 {
		return nil
	}
	ids := make([]string, 0, len(pending))
	for _, d := range pending {
		ids = append(ids, d.String())
	}
	res, err := tx.Execer(ctx, s.db).ExecContext(ctx, `
		INSERT INTO personal_documents (id, owner_id, document_type, document_name, document_number, file_path)
		SELECT gen_random_uuid(), $2, document_type, document_name, document_number, file_path
		FROM personal_documents
		WHERE id = ANY ($1::uuid[])
	`, pq.Array(ids), uuid.UUID(owner))
	if err != nil {
		return fmt.Errorf("transfer documents: %w", postgres.Classify(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("transfer documents: %w", err)
	}
	if int(n) != len(pending) {
		return fmt.Errorf("transfer documents: %w: %d of %d pending documents", sentinel.ErrNotFound, n, len(pending))
	}
	return nil
}

func (s *PostgresStore) DeleteByOwner(ctx context.Context, owner id.PersonID) error {
	_, err := tx.Execer(ctx, s.db).ExecContext(ctx,
		`DELETE FROM personal_documents WHERE owner_id = $1`, uuid.UUID(owner))
	if err != nil {
		return fmt.Errorf("delete documents: %w", err)
	}
	return nil
}

// ListByOwner returns the documents owned by owner.
func (s *PostgresStore) ListByOwner(ctx context.Context, owner id.PersonID) ([]models.PersonalDocument, error) {
	rows, err := tx.Execer(ctx, s.db).QueryContext(ctx, `
		SELECT id, document_type, document_name, document_number, file_path, created_at
		FROM personal_documents WHERE owner_id = $1 ORDER BY created_at, id
	`, uuid.UUID(owner))
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var out []models.PersonalDocument
	for rows.Next() {
		var (
			doc   models.PersonalDocument
			rawID uuid.UUID
		)
		if err := rows.Scan(&rawID, &doc.DocumentType, &doc.DocumentName, &doc.DocumentNo, &doc.FilePath, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		doc.ID = id.DocumentID(rawID)
		doc.OwnerID = owner
		out = append(out, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return out, nil
}
