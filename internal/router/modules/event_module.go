package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-community-events/internal/interface/http"
)

// EventModule serves the event lifecycle and membership routes.
// Public: GET /events, /events/search, /events/:id
// Protected: POST /events, PATCH|DELETE /events/:id, POST /events/:id/{banner,join,leave}
type EventModule struct {
	Events  *handlers.EventHandler
	Members *handlers.MembershipHandler
	Guards  Guards
}

func NewEventModule(events *handlers.EventHandler, members *handlers.MembershipHandler, g Guards) *EventModule {
	return &EventModule{Events: events, Members: members, Guards: g}
}

func (m *EventModule) Register(rg *gin.RouterGroup) {
	rg.GET("/events", m.Guards.IPLimit, m.Events.List)
	rg.GET("/events/search", m.Guards.IPLimit, m.Events.FullTextSearch)
	rg.GET("/events/:id", m.Guards.IPLimit, m.Events.Get)

	auth := m.Guards.authed(rg)
	{
		auth.POST("/events", m.Events.Create)
		auth.PATCH("/events/:id", m.Events.Update)
		auth.DELETE("/events/:id", m.Events.Delete)
		auth.POST("/events/:id/banner", m.Events.UploadBanner)
		auth.POST("/events/:id/join", m.Members.Join)
		auth.POST("/events/:id/leave", m.Members.Leave)
	}
}
