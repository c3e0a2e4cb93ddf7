package postgres

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-community-events/internal/domain/entity"
	"github.com/oksasatya/go-community-events/internal/domain/repository"
)

func TestBlogRepository_List(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)

	defer mock.Close()

	now := time.Now().Truncate(time.Second)
	rows := pgxmock.NewRows([]string{"id", "author_id", "title", "banner_image", "category",
		"short_description", "body_text", "post_date", "last_modified"}).
		AddRow(eventID, userID, "Recap", "", "news", "short", "body", now, now)
	mock.ExpectQuery(`FROM blog_posts ORDER BY post_date DESC`).WillReturnRows(rows)

	got, err := NewBlogRepository(mock).List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Recap", got[0].Title)
	assert.Equal(t, now, got[0].LastModified)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBlogRepository_Delete_NotFound(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)

	defer mock.Close()

	mock.ExpectExec("DELETE FROM blog_posts").
		WithArgs(eventID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err = NewBlogRepository(mock).Delete(context.Background(), eventID)
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBlogRepository_Update(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)

	defer mock.Close()

	now := time.Now().Truncate(time.Second)
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM blog_posts WHERE id = \$1 FOR UPDATE`).
		WithArgs(eventID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "author_id", "title", "banner_image", "category",
			"short_description", "body_text", "post_date", "last_modified"}).
			AddRow(eventID, userID, "Recap", "", "news", "short", "draft", now, now))
	mock.ExpectExec("UPDATE blog_posts").
		WithArgs("Recap", "", "news", "short", "body", now.Add(time.Hour), eventID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	got, err := NewBlogRepository(mock).Update(context.Background(), eventID, func(p *entity.BlogPost) error {
		p.BodyText = "body"
		p.LastModified = now.Add(time.Hour)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "news", got.Category)
	assert.Equal(t, "body", got.BodyText)

	require.NoError(t, mock.ExpectationsWereMet())
}
