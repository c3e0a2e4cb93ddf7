package application

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-community-events/internal/domain/entity"
	repo "github.com/oksasatya/go-community-events/internal/domain/repository"
)

// UserService exposes the profile part of an account. Credentials and membership projections
// are not writable here.
type UserService struct {
	Repo    repo.UserRepository
	Storage ObjectStore
	Logger  *logrus.Logger
}

func NewUserService(users repo.UserRepository, storage ObjectStore, logger *logrus.Logger) *UserService {
	return &UserService{Repo: users, Storage: storage, Logger: logger}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, translate(err, ErrUserNotFound)
	}
	return u, nil
}

type UpdateProfileInput struct {
	Name           *string
	Phone          *string
	DOB            *time.Time
	Location       *entity.Location
	ProfilePicture *string
	Interests      *[]string
}

func (s *UserService) UpdateProfile(ctx context.Context, actorID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.Repo.UpdateProfile(ctx, actorID, func(cur *entity.User) error {
		applyProfileUpdate(cur, in)
		return nil
	})
	if err != nil {
		return nil, translate(err, ErrUserNotFound)
	}
	return u, nil
}

func applyProfileUpdate(u *entity.User, in UpdateProfileInput) {
	if in.Name != nil {
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		u.Phone = *in.Phone
	}
	if in.DOB != nil {
		dob := *in.DOB
		u.DOB = &dob
	}
	if in.Location != nil {
		u.Location = *in.Location
	}
	if in.ProfilePicture != nil {
		u.ProfilePicture = *in.ProfilePicture
	}
	if in.Interests != nil {
		u.Interests = normalizeTags(*in.Interests)
	}
}

// UploadProfilePicture stores the image under the user's prefix and updates the profile.
func (s *UserService) UploadProfilePicture(ctx context.Context, actorID string, r io.Reader, filename, contentType string) (string, error) {
	u, err := s.Repo.GetByID(ctx, actorID)
	if err != nil {
		return "", translate(err, ErrUserNotFound)
	}
	if s.Storage == nil {
		return "", ErrStorageUnavailable
	}
	objectPath := filepath.ToSlash(filepath.Join("avatars", u.ID, uuid.NewString()+strings.ToLower(filepath.Ext(filename))))
	url, err := s.Storage.Upload(ctx, objectPath, contentType, r)
	if err != nil {
		return "", Internal(err)
	}
	_, err = s.Repo.UpdateProfile(ctx, u.ID, func(cur *entity.User) error {
		cur.ProfilePicture = url
		return nil
	})
	if err != nil {
		return "", translate(err, ErrUserNotFound)
	}
	return url, nil
}
