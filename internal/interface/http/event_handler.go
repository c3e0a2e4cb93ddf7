package handlers

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-community-events/internal/application"
	"github.com/oksasatya/go-community-events/internal/domain/entity"
	"github.com/oksasatya/go-community-events/internal/domain/repository"
	"github.com/oksasatya/go-community-events/pkg/response"
)

// EventService is the part of application.EventService the handler drives.
type EventService interface {
	Create(ctx context.Context, actorID string, in application.CreateEventInput) (*entity.Event, error)
	Get(ctx context.Context, eventID string) (*entity.Event, error)
	Search(ctx context.Context, f repository.EventFilter) ([]*entity.Event, error)
	FullTextSearch(ctx context.Context, query string, size int) ([]*entity.Event, error)
	Update(ctx context.Context, actorID, eventID string, in application.UpdateEventInput) (*entity.Event, error)
	Delete(ctx context.Context, actorID, eventID string) error
	UploadBanner(ctx context.Context, actorID, eventID string, r io.Reader, filename, contentType string) (*entity.Event, error)
}

type EventHandler struct {
	Svc            EventService
	Logger         *logrus.Logger
	MaxUploadBytes int64
}

func NewEventHandler(svc EventService, logger *logrus.Logger) *EventHandler {
	return &EventHandler{Svc: svc, Logger: logger, MaxUploadBytes: 5 << 20}
}

type createEventRequest struct {
	Title       string      `json:"title" binding:"title"`
	Description string      `json:"description" binding:"max=5000"`
	BannerImage string      `json:"banner_image" binding:"omitempty,url"`
	Location    string      `json:"location" binding:"max=200"`
	StartDate   time.Time   `json:"start_date" binding:"required"`
	EndDate     time.Time   `json:"end_date" binding:"required"`
	AgeLimit    ageLimitDTO `json:"age_limit"`
	Capacity    *int        `json:"capacity" binding:"required,gte=0"`
	Tags        []string    `json:"tags" binding:"max=20,dive,tag"`
}

type updateEventRequest struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description" binding:"omitempty,max=5000"`
	BannerImage *string      `json:"banner_image" binding:"omitempty,url"`
	Location    *string      `json:"location" binding:"omitempty,max=200"`
	StartDate   *time.Time   `json:"start_date"`
	EndDate     *time.Time   `json:"end_date"`
	AgeLimit    *ageLimitDTO `json:"age_limit"`
	Capacity    *int         `json:"capacity" binding:"omitempty,gte=0"`
	Tags        *[]string    `json:"tags" binding:"omitempty,max=20,dive,tag"`
}

// listEventsQuery binds GET /events. Dates accept RFC3339 or YYYY-MM-DD.
type listEventsQuery struct {
	Search    string `form:"search" binding:"max=200"`
	Location  string `form:"location" binding:"max=200"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	Tags      string `form:"tags"`
}

func (h *EventHandler) Create(c *gin.Context) {
	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	e, err := h.Svc.Create(c.Request.Context(), actorID(c), application.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		BannerImage: req.BannerImage,
		Location:    req.Location,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		AgeLimit:    entity.AgeLimit{Lower: req.AgeLimit.Lower, Upper: req.AgeLimit.Upper},
		Capacity:    *req.Capacity,
		Tags:        req.Tags,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toEventResponse(e), "event created", nil)
}

func (h *EventHandler) List(c *gin.Context) {
	var q listEventsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	f := repository.EventFilter{Search: strings.TrimSpace(q.Search), Location: strings.TrimSpace(q.Location)}
	details := map[string]string{}
	if q.StartDate != "" {
		t, err := parseDate(q.StartDate, false)
		if err != nil {
			details["startDate"] = "must be RFC3339 or YYYY-MM-DD"
		}
		f.StartDate = &t
	}
	if q.EndDate != "" {
		t, err := parseDate(q.EndDate, true)
		if err != nil {
			details["endDate"] = "must be RFC3339 or YYYY-MM-DD"
		}
		f.EndDate = &t
	}
	if len(details) > 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid query", details)
		return
	}
	if q.Tags != "" {
		f.Tags = strings.Split(q.Tags, ",")
	}

	events, err := h.Svc.Search(c.Request.Context(), f)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toEventResponses(events), "events", map[string]any{"count": len(events)})
}

// FullTextSearch answers GET /events/search?q=&size= from the search index.
func (h *EventHandler) FullTextSearch(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "invalid query", map[string]string{"q": "is required"})
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	events, err := h.Svc.FullTextSearch(c.Request.Context(), q, size)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toEventResponses(events), "events", map[string]any{"count": len(events)})
}

func (h *EventHandler) Get(c *gin.Context) {
	e, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toEventResponse(e), "event", nil)
}

func (h *EventHandler) Update(c *gin.Context) {
	var req updateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	in := application.UpdateEventInput{
		Title:       req.Title,
		Description: req.Description,
		BannerImage: req.BannerImage,
		Location:    req.Location,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Capacity:    req.Capacity,
		Tags:        req.Tags,
	}
	if req.AgeLimit != nil {
		in.AgeLimit = &entity.AgeLimit{Lower: req.AgeLimit.Lower, Upper: req.AgeLimit.Upper}
	}
	e, err := h.Svc.Update(c.Request.Context(), actorID(c), c.Param("id"), in)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toEventResponse(e), "event updated", nil)
}

func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), actorID(c), c.Param("id")); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "event deleted", nil)
}

// UploadBanner accepts a multipart "file" field holding an image.
func (h *EventHandler) UploadBanner(c *gin.Context) {
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

	e, err := h.Svc.UploadBanner(c.Request.Context(), actorID(c), c.Param("id"), f, fh.Filename, contentType)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toEventResponse(e), "banner uploaded", nil)
}

// parseDate accepts RFC3339 or a bare date. A bare end date covers the whole day.
func parseDate(s string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}
