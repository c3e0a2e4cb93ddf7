package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/go-community-events/internal/domain/entity"
	"github.com/oksasatya/go-community-events/internal/domain/repository"
)

const blogSelect = `
	SELECT id::text, author_id::text, title, banner_image, category, short_description, body_text,
		post_date, last_modified
	FROM blog_posts`

type BlogRepository struct {
	db DB
}

func NewBlogRepository(db DB) *BlogRepository {
	return &BlogRepository{db: db}
}

func (r *BlogRepository) Create(ctx context.Context, p *entity.BlogPost) error {
	p.ID = newID(p.ID)
	_, err := r.db.Exec(ctx, `
		INSERT INTO blog_posts (id, author_id, title, banner_image, category, short_description,
			body_text, post_date, last_modified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, p.ID, p.AuthorID, p.Title, p.BannerImage, p.Category, p.ShortDescription, p.BodyText,
		p.PostDate, p.LastModified)
	if err != nil {
		if pgCode(err) == pgForeignKeyViolation {
			return repository.ErrUserNotFound
		}
		return fmt.Errorf("insert blog post: %w", err)
	}
	return nil
}

func (r *BlogRepository) GetByID(ctx context.Context, id string) (*entity.BlogPost, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	p, err := scanBlogPost(r.db.QueryRow(ctx, blogSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("select blog post: %w", err)
	}
	return p, nil
}

func (r *BlogRepository) List(ctx context.Context) ([]*entity.BlogPost, error) {
	rows, err := r.db.Query(ctx, blogSelect+` ORDER BY post_date DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("select blog posts: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.BlogPost, 0)
	for rows.Next() {
		p, err := scanBlogPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan blog post: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *BlogRepository) Update(ctx context.Context, id string, fn func(p *entity.BlogPost) error) (*entity.BlogPost, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	var out *entity.BlogPost
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		p, err := scanBlogPost(tx.QueryRow(ctx, blogSelect+` WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return repository.ErrNotFound
			}
			return fmt.Errorf("lock blog post: %w", err)
		}
		if err := fn(p); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
			UPDATE blog_posts
			SET title = $1, banner_image = $2, category = $3, short_description = $4, body_text = $5,
				last_modified = $6
			WHERE id = $7
		`, p.Title, p.BannerImage, p.Category, p.ShortDescription, p.BodyText, p.LastModified, id); err != nil {
			return fmt.Errorf("update blog post: %w", err)
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return repository.ErrNotFound
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete blog post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanBlogPost(row rowScanner) (*entity.BlogPost, error) {
	p := &entity.BlogPost{}
	if err := row.Scan(&p.ID, &p.AuthorID, &p.Title, &p.BannerImage, &p.Category, &p.ShortDescription,
		&p.BodyText, &p.PostDate, &p.LastModified); err != nil {
		return nil, err
	}
	return p, nil
}

var _ repository.BlogRepository = (*BlogRepository)(nil)
