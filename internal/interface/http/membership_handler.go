package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-community-events/internal/application"
	"github.com/oksasatya/go-community-events/pkg/response"
)

type MembershipService interface {
	Join(ctx context.Context, actorID, eventID string) error
	Leave(ctx context.Context, actorID, eventID string) error
	EventsForUser(ctx context.Context, userID string) (*application.UserEvents, error)
}

type MembershipHandler struct {
	Svc    MembershipService
	Logger *logrus.Logger
}

func NewMembershipHandler(svc MembershipService, logger *logrus.Logger) *MembershipHandler {
	return &MembershipHandler{Svc: svc, Logger: logger}
}

func (h *MembershipHandler) Join(c *gin.Context) {
	if err := h.Svc.Join(c.Request.Context(), actorID(c), c.Param("id")); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"event_id": c.Param("id"), "joined": true}, "joined event", nil)
}

func (h *MembershipHandler) Leave(c *gin.Context) {
	if err := h.Svc.Leave(c.Request.Context(), actorID(c), c.Param("id")); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"event_id": c.Param("id"), "joined": false}, "left event", nil)
}

// EventsForUser serves GET /users/:id/events. "me" resolves to the caller.
func (h *MembershipHandler) EventsForUser(c *gin.Context) {
	ue, err := h.Svc.EventsForUser(c.Request.Context(), userParam(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toUserEventsResponse(ue), "user events", nil)
}

func userParam(c *gin.Context) string {
	if id := c.Param("id"); id != "me" {
		return id
	}
	return actorID(c)
}
