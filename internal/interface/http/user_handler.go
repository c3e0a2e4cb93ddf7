package handlers

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-community-events/internal/application"
	"github.com/oksasatya/go-community-events/internal/domain/entity"
	"github.com/oksasatya/go-community-events/pkg/response"
)

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*entity.User, error)
	UpdateProfile(ctx context.Context, actorID string, in application.UpdateProfileInput) (*entity.User, error)
	UploadProfilePicture(ctx context.Context, actorID string, r io.Reader, filename, contentType string) (string, error)
}

type UserHandler struct {
	Svc            UserService
	Logger         *logrus.Logger
	MaxUploadBytes int64
}

func NewUserHandler(svc UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger, MaxUploadBytes: 2 << 20}
}

type updateProfileRequest struct {
	Name           *string      `json:"name" binding:"omitempty,notblank,max=100"`
	Phone          *string      `json:"phone" binding:"omitempty,phone"`
	DOB            *string      `json:"dob" binding:"omitempty,datetime=2006-01-02"`
	Location       *locationDTO `json:"location"`
	ProfilePicture *string      `json:"profile_picture" binding:"omitempty,url"`
	Interests      *[]string    `json:"interests" binding:"omitempty,max=20,dive,tag"`
}

// GetProfile serves the public profile of any user.
func (h *UserHandler) GetProfile(c *gin.Context) {
	u, err := h.Svc.GetProfile(c.Request.Context(), userParam(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toPublicProfile(u), "profile", nil)
}

// Me serves the caller's full profile.
func (h *UserHandler) Me(c *gin.Context) {
	u, err := h.Svc.GetProfile(c.Request.Context(), actorID(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toProfile(u), "profile", nil)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	in := application.UpdateProfileInput{
		Name:           req.Name,
		Phone:          req.Phone,
		ProfilePicture: req.ProfilePicture,
		Interests:      req.Interests,
	}
	if req.DOB != nil {
		dob, _ := time.Parse(time.DateOnly, *req.DOB)
		in.DOB = &dob
	}
	if req.Location != nil {
		in.Location = &entity.Location{ProvinceState: req.Location.ProvinceState, Country: req.Location.Country}
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), actorID(c), in)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toProfile(u), "profile updated", nil)
}

func (h *UserHandler) UploadProfilePicture(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		writeError(c, h.Logger, application.ErrInvalidUpload)
		return
	}
	if fh.Size > h.MaxUploadBytes {
		response.Error[any](c, http.StatusRequestEntityTooLarge, "file too large", map[string]any{"max_bytes": h.MaxUploadBytes})
		return
	}
	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		response.Error[any](c, http.StatusUnsupportedMediaType, "file must be an image", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		writeError(c, h.Logger, application.Internal(err))
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadProfilePicture(c.Request.Context(), actorID(c), f, fh.Filename, contentType)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"profile_picture": url}, "profile picture uploaded", nil)
}
