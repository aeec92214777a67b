package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bionano-bdd/bddb-backend/internal/catalog/domain"
)

// CommentRepository stores project comments. Comments are append-only: no
// edit, no delete.
type CommentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// ListByProject returns a project's comments, oldest first.
func (r *CommentRepository) ListByProject(ctx context.Context, projectID int64) ([]domain.Comment, error) {
	const q = `
SELECT id, project_id, user_id, username, user_firstname, user_lastname, comment, created_at
FROM comments
WHERE project_id = $1
ORDER BY created_at ASC;
`
	rows, err := r.db.QueryContext(ctx, q, projectID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Comment, 0, 16)
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.ProjectID, &c.UserID, &c.Username, &c.UserFirstname, &c.UserLastname, &c.Comment, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Create appends a comment and fills in its assigned id and timestamp.
func (r *CommentRepository) Create(ctx context.Context, c *domain.Comment) error {
	const q = `
INSERT INTO comments (project_id, user_id, username, user_firstname, user_lastname, comment)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at;
`
	err := r.db.QueryRowContext(ctx, q,
		c.ProjectID, c.UserID, c.Username, c.UserFirstname, c.UserLastname, c.Comment,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}
