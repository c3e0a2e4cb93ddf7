package application

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-community-events/internal/domain/entity"
	repo "github.com/oksasatya/go-community-events/internal/domain/repository"
)

// BlogService manages editorial content. Writes are reserved for admins.
type BlogService struct {
	Posts  repo.BlogRepository
	Users  repo.UserRepository
	Now    func() time.Time
	Logger *logrus.Logger
}

func NewBlogService(posts repo.BlogRepository, users repo.UserRepository, logger *logrus.Logger) *BlogService {
	return &BlogService{Posts: posts, Users: users, Now: time.Now, Logger: logger}
}

type CreateBlogPostInput struct {
	Title            string
	BannerImage      string
	Category         string
	ShortDescription string
	BodyText         string
}

type UpdateBlogPostInput struct {
	Title            *string
	BannerImage      *string
	Category         *string
	ShortDescription *string
	BodyText         *string
}

var ErrBlogTitleRequired = &Error{Kind: KindInvalidArgument, Entity: "blog post", Message: "title is required"}

func (s *BlogService) Create(ctx context.Context, actorID string, in CreateBlogPostInput) (*entity.BlogPost, error) {
	actor, err := s.requireAdmin(ctx, actorID)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ErrBlogTitleRequired
	}
	now := s.now()
	p := &entity.BlogPost{
		AuthorID:         actor.ID,
		Title:            title,
		BannerImage:      in.BannerImage,
		Category:         in.Category,
		ShortDescription: in.ShortDescription,
		BodyText:         in.BodyText,
		PostDate:         now,
		LastModified:     now,
	}
	if err := s.Posts.Create(ctx, p); err != nil {
		return nil, translate(err, ErrUserNotFound)
	}
	return p, nil
}

func (s *BlogService) Get(ctx context.Context, id string) (*entity.BlogPost, error) {
	p, err := s.Posts.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, ErrBlogPostNotFound)
	}
	return p, nil
}

func (s *BlogService) List(ctx context.Context) ([]*entity.BlogPost, error) {
	posts, err := s.Posts.List(ctx)
	if err != nil {
		return nil, Internal(err)
	}
	return posts, nil
}

func (s *BlogService) Update(ctx context.Context, actorID, id string, in UpdateBlogPostInput) (*entity.BlogPost, error) {
	if _, err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return nil, ErrBlogTitleRequired
	}
	p, err := s.Posts.Update(ctx, id, func(p *entity.BlogPost) error {
		if in.Title != nil {
			p.Title = strings.TrimSpace(*in.Title)
		}
		if in.BannerImage != nil {
			p.BannerImage = *in.BannerImage
		}
		if in.Category != nil {
			p.Category = *in.Category
		}
		if in.ShortDescription != nil {
			p.ShortDescription = *in.ShortDescription
		}
		if in.BodyText != nil {
			p.BodyText = *in.BodyText
		}
		p.LastModified = s.now()
		return nil
	})
	if err != nil {
		return nil, translate(err, ErrBlogPostNotFound)
	}
	return p, nil
}

func (s *BlogService) Delete(ctx context.Context, actorID, id string) error {
	if _, err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	if err := s.Posts.Delete(ctx, id); err != nil {
		return translate(err, ErrBlogPostNotFound)
	}
	return nil
}

func (s *BlogService) requireAdmin(ctx context.Context, actorID string) (*entity.User, error) {
	actor, err := s.Users.GetByID(ctx, actorID)
	if err != nil {
		return nil, translate(err, ErrUserNotFound)
	}
	if !actor.IsAdmin() {
		return nil, ErrUnauthorized
	}
	return actor, nil
}

func (s *BlogService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
