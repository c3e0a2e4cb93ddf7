package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-community-events/internal/interface/http"
)

// UserModule serves profiles and the per-user event partitions. Every route needs a token;
// ":id" accepts "me".
type UserModule struct {
	Users   *handlers.UserHandler
	Members *handlers.MembershipHandler
	Guards  Guards
}

func NewUserModule(users *handlers.UserHandler, members *handlers.MembershipHandler, g Guards) *UserModule {
	return &UserModule{Users: users, Members: members, Guards: g}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := m.Guards.authed(rg)
	{
		auth.GET("/users/me", m.Users.Me)
		auth.PATCH("/users/me", m.Users.UpdateProfile)
		auth.POST("/users/me/avatar", m.Users.UploadProfilePicture)
		auth.GET("/users/:id/profile", m.Users.GetProfile)
		auth.GET("/users/:id/events", m.Members.EventsForUser)
	}
}
