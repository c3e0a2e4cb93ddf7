package repository

import (
	"context"

	"github.com/oksasatya/go-community-events/internal/domain/entity"
)

type BlogRepository interface {
	Create(ctx context.Context, p *entity.BlogPost) error
	GetByID(ctx context.Context, id string) (*entity.BlogPost, error)
	List(ctx context.Context) ([]*entity.BlogPost, error)
	// Update locks the post, hands the current row to fn and writes back what fn leaves in it.
	Update(ctx context.Context, id string, fn func(p *entity.BlogPost) error) (*entity.BlogPost, error)
	Delete(ctx context.Context, id string) error
}
