package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postRows(posts ...models.Post) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "title", "subtitle", "date", "body", "image_url", "created_at", "updated_at",
	})
	for _, p := range posts {
		rows.AddRow(p.ID, p.UserID, p.Title, p.Subtitle, p.Date, p.Body, p.ImageURL, time.Now(), time.Now())
	}
	return rows
}

func TestPostGetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "posts" WHERE "posts"\."id" = \$1`).
		WithArgs(1, 1).
		WillReturnRows(postRows(models.Post{
			ID: 1, UserID: 2, Title: "First Post", Subtitle: "sub",
			Date: "April 05, 2024", Body: "body",
		}))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"\."id" = \$1`).
		WithArgs(2).
		WillReturnRows(userRows(models.User{ID: 2, Username: "alice", Email: "alice@example.com"}))

	post, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "First Post", post.Title)
	assert.Equal(t, "alice", post.User.Username)
}

func TestPostGetByIDNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "posts" WHERE "posts"\."id" = \$1`).
		WithArgs(404, 1).
		WillReturnRows(postRows())

	_, err := repo.GetByID(context.Background(), 404)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestPostListNewestFirst(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "posts" ORDER BY created_at DESC`).
		WillReturnRows(postRows(
			models.Post{ID: 2, UserID: 1, Title: "Newer", Date: "May 01, 2024", Body: "b"},
			models.Post{ID: 1, UserID: 1, Title: "Older", Date: "April 01, 2024", Body: "b"},
		))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"\."id" = \$1`).
		WithArgs(1).
		WillReturnRows(userRows(models.User{ID: 1, Username: "alice", Email: "alice@example.com"}))

	posts, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "Newer", posts[0].Title)
	assert.Equal(t, "Older", posts[1].Title)
}

func TestPostCreateDuplicateTitle(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "posts"`).
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "uni_posts_title" (SQLSTATE 23505)`))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.Post{
		UserID: 1, Title: "Taken", Subtitle: "s", Date: "April 05, 2024", Body: "b",
	})
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeDuplicateTitle, appErr.Code)
}

func TestPostUpdateDuplicateTitle(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "posts" SET`).
		WillReturnError(errors.New(`UNIQUE constraint failed: posts.title`))
	mock.ExpectRollback()

	err := repo.Update(context.Background(), &models.Post{
		ID: 1, UserID: 1, Title: "Taken", Subtitle: "s", Date: "April 05, 2024", Body: "b",
	})
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeDuplicateTitle, appErr.Code)
}

func TestPostDelete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "posts" WHERE "posts"\."id" = \$1`).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
