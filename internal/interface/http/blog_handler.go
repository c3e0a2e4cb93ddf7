package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-community-events/internal/application"
	"github.com/oksasatya/go-community-events/internal/domain/entity"
	"github.com/oksasatya/go-community-events/pkg/response"
)

type BlogService interface {
	Create(ctx context.Context, actorID string, in application.CreateBlogPostInput) (*entity.BlogPost, error)
	Get(ctx context.Context, id string) (*entity.BlogPost, error)
	List(ctx context.Context) ([]*entity.BlogPost, error)
	Update(ctx context.Context, actorID, id string, in application.UpdateBlogPostInput) (*entity.BlogPost, error)
	Delete(ctx context.Context, actorID, id string) error
}

type BlogHandler struct {
	Svc    BlogService
	Logger *logrus.Logger
}

func NewBlogHandler(svc BlogService, logger *logrus.Logger) *BlogHandler {
	return &BlogHandler{Svc: svc, Logger: logger}
}

type createBlogPostRequest struct {
	Title            string `json:"title" binding:"title"`
	BannerImage      string `json:"banner_image" binding:"omitempty,url"`
	Category         string `json:"category" binding:"max=60"`
	ShortDescription string `json:"short_description" binding:"max=500"`
	BodyText         string `json:"body_text"`
}

type updateBlogPostRequest struct {
	Title            *string `json:"title" binding:"omitempty,title"`
	BannerImage      *string `json:"banner_image" binding:"omitempty,url"`
	Category         *string `json:"category" binding:"omitempty,max=60"`
	ShortDescription *string `json:"short_description" binding:"omitempty,max=500"`
	BodyText         *string `json:"body_text"`
}

func (h *BlogHandler) Create(c *gin.Context) {
	var req createBlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), actorID(c), application.CreateBlogPostInput(req))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toBlogPostResponse(p), "blog post created", nil)
}

func (h *BlogHandler) List(c *gin.Context) {
	posts, err := h.Svc.List(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	out := make([]blogPostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toBlogPostResponse(p))
	}
	response.Success(c, http.StatusOK, out, "blog posts", map[string]any{"count": len(out)})
}

func (h *BlogHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toBlogPostResponse(p), "blog post", nil)
}

func (h *BlogHandler) Update(c *gin.Context) {
	var req updateBlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), actorID(c), c.Param("id"), application.UpdateBlogPostInput(req))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toBlogPostResponse(p), "blog post updated", nil)
}

func (h *BlogHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), actorID(c), c.Param("id")); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "blog post deleted", nil)
}
