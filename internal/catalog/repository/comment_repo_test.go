package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bionano-bdd/bddb-backend/internal/catalog/domain"
)

func setupCommentRepo(t *testing.T) (*CommentRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return NewCommentRepository(db), mock, db
}

func TestCommentRepository_ListByProject(t *testing.T) {
	repo, mock, db := setupCommentRepo(t)
	defer db.Close()

	t.Run("returns comments oldest first", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(`SELECT id, project_id, user_id, username`).
			WithArgs(int64(42)).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "project_id", "user_id", "username", "user_firstname", "user_lastname", "comment", "created_at",
			}).
				AddRow(1, 42, 7, "carol", "Carol", "Chen", "great scaffold design", now.Add(-time.Hour)).
				AddRow(2, 42, 8, "dan", "Dan", "Diaz", "strand map is missing", now))

		comments, err := repo.ListByProject(context.Background(), 42)
		require.NoError(t, err)
		require.Len(t, comments, 2)
		assert.Equal(t, "carol", comments[0].Username)
		assert.Equal(t, int64(42), comments[1].ProjectID)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no comments yields an empty slice", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, project_id, user_id, username`).
			WithArgs(int64(43)).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "project_id", "user_id", "username", "user_firstname", "user_lastname", "comment", "created_at",
			}))

		comments, err := repo.ListByProject(context.Background(), 43)
		require.NoError(t, err)
		assert.Empty(t, comments)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCommentRepository_Create(t *testing.T) {
	repo, mock, db := setupCommentRepo(t)
	defer db.Close()

	t.Run("fills in id and timestamp", func(t *testing.T) {
		c := &domain.Comment{
			ProjectID:     42,
			UserID:        7,
			Username:      "carol",
			UserFirstname: "Carol",
			UserLastname:  "Chen",
			Comment:       "great scaffold design",
		}

		mock.ExpectQuery(`INSERT INTO comments`).
			WithArgs(int64(42), int64(7), "carol", "Carol", "Chen", "great scaffold design").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(11, time.Now()))

		require.NoError(t, repo.Create(context.Background(), c))
		assert.Equal(t, int64(11), c.ID)
		assert.False(t, c.CreatedAt.IsZero())

		require.NoError(t, mock.ExpectationsWereMet())
	})
}
