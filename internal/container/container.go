package container

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-community-events/config"
	"github.com/oksasatya/go-community-events/internal/application"
	pginfra "github.com/oksasatya/go-community-events/internal/infrastructure/postgres"
	"github.com/oksasatya/go-community-events/pkg/helpers"
)

// Infra is everything the process connects to before services are built. Index and Storage are
// nil when the backing service is not configured.
type Infra struct {
	Config   *config.Config
	Logger   *logrus.Logger
	DB       pginfra.DB
	Redis    *redis.Client
	JWT      *helpers.JWTManager
	Notifier application.Notifier
	Index    application.EventIndex
	Storage  application.ObjectStore
}

// Container holds the constructed services shared by the router modules.
type Container struct {
	Infra

	Events      *application.EventService
	Memberships *application.MembershipService
	Donations   *application.DonationService
	Users       *application.UserService
	Blog        *application.BlogService
}

func New(in Infra) *Container {
	users := pginfra.NewUserRepository(in.DB)
	events := pginfra.NewEventRepository(in.DB)
	donations := pginfra.NewDonationRepository(in.DB)
	posts := pginfra.NewBlogRepository(in.DB)

	return &Container{
		Infra:       in,
		Events:      application.NewEventService(events, users, in.Notifier, in.Index, in.Storage, in.Logger),
		Memberships: application.NewMembershipService(events, users, in.Notifier, in.Logger),
		Donations:   application.NewDonationService(donations, events, users, in.Notifier, in.Logger),
		Users:       application.NewUserService(users, in.Storage, in.Logger),
		Blog:        application.NewBlogService(posts, users, in.Logger),
	}
}
