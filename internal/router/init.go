package router

import (
	"time"

	"github.com/oksasatya/go-community-events/internal/container"
	handlers "github.com/oksasatya/go-community-events/internal/interface/http"
	"github.com/oksasatya/go-community-events/internal/interface/middleware"
	"github.com/oksasatya/go-community-events/internal/router/modules"
)

// InitModules builds the handlers from c and adds every feature module to r.
func InitModules(r *Registry, c *container.Container) {
	perMinute := c.Config.RateLimitPerMinute
	guards := modules.Guards{
		Auth:      middleware.Auth(c.JWT),
		UserLimit: middleware.RateLimit(c.Redis, perMinute, time.Minute, middleware.KeyByUserID(), nil),
		IPLimit:   middleware.RateLimit(c.Redis, perMinute*2, time.Minute, middleware.KeyByIP(), nil),
	}

	events := handlers.NewEventHandler(c.Events, c.Logger)
	members := handlers.NewMembershipHandler(c.Memberships, c.Logger)

	r.Add(modules.NewEventModule(events, members, guards))
	r.Add(modules.NewDonationModule(handlers.NewDonationHandler(c.Donations, c.Logger), guards))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(c.Users, c.Logger), members, guards))
	r.Add(modules.NewBlogModule(handlers.NewBlogHandler(c.Blog, c.Logger), guards))

	if c.Config.DebugMetricsEnabled {
		debugLimit := middleware.RateLimit(c.Redis, 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
		r.Add(modules.NewDebugModule(debugLimit))
	}
}
