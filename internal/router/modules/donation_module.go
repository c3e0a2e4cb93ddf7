package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-community-events/internal/interface/http"
)

type DonationModule struct {
	Handler *handlers.DonationHandler
	Guards  Guards
}

func NewDonationModule(h *handlers.DonationHandler, g Guards) *DonationModule {
	return &DonationModule{Handler: h, Guards: g}
}

func (m *DonationModule) Register(rg *gin.RouterGroup) {
	auth := m.Guards.authed(rg)
	{
		auth.POST("/donations", m.Handler.Make)
		auth.GET("/events/:id/donations", m.Handler.ForEvent)
		auth.GET("/users/:id/donations", m.Handler.ForUser)
	}
}
