package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bionano-bdd/bddb-backend/internal/catalog/domain"
)

// AttachmentRepository reads a project's uploaded files. Attachments are
// write-once; the catalog only ever lists them and reads their tags.
type AttachmentRepository struct {
	db *pgxpool.Pool
}

func NewAttachmentRepository(db *pgxpool.Pool) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

// FetchAttachments returns the non-deleted files of a project. Tag payloads
// that fail to decode are kept as files with no tags; the classifier treats
// that as signal absence.
func (r *AttachmentRepository) FetchAttachments(ctx context.Context, projectID int64) ([]domain.Attachment, error) {
	const q = `
select id, project_id, title, coalesce(description, ''), coalesce(type, ''), tags, created_at
from attachments
where project_id = $1 and deleted = false
order by id;
`
	rows, err := r.db.Query(ctx, q, projectID)
	if err != nil {
		return nil, fmt.Errorf("fetch attachments: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Attachment, 0, 8)
	for rows.Next() {
		var a domain.Attachment
		var rawTags []byte
		if err := rows.Scan(&a.ID, &a.ProjectID, &a.Title, &a.Description, &a.Type, &rawTags, &a.CreatedAt); err != nil {
			return nil, err
		}
		if len(rawTags) > 0 {
			if err := json.Unmarshal(rawTags, &a.Tags); err != nil {
				a.Tags = nil
			}
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
