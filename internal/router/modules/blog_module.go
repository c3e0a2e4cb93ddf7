package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-community-events/internal/interface/http"
)

// BlogModule: reads are public, writes need an admin token (checked by the service).
type BlogModule struct {
	Handler *handlers.BlogHandler
	Guards  Guards
}

func NewBlogModule(h *handlers.BlogHandler, g Guards) *BlogModule {
	return &BlogModule{Handler: h, Guards: g}
}

func (m *BlogModule) Register(rg *gin.RouterGroup) {
	rg.GET("/blog-posts", m.Guards.IPLimit, m.Handler.List)
	rg.GET("/blog-posts/:id", m.Guards.IPLimit, m.Handler.Get)

	auth := m.Guards.authed(rg)
	{
		auth.POST("/blog-posts", m.Handler.Create)
		auth.PATCH("/blog-posts/:id", m.Handler.Update)
		auth.DELETE("/blog-posts/:id", m.Handler.Delete)
	}
}
