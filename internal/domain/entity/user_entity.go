package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// Password holds a bcrypt hash and GoogleID is set for OAuth accounts; both are owned by the
// authentication service and never written by the event core.
//
// JoinedEvents, CreatedEvents, Donations and BlogPosts are read-only projections of the
// participation, event, donation and blog tables.
type User struct {
	ID             string
	Name           string
	Email          string
	Password       string
	GoogleID       string
	IsVerified     bool
	DOB            *time.Time
	Phone          string
	Location       Location
	ProfilePicture string
	UserType       UserType
	Interests      []string
	JoinedEvents   []string
	CreatedEvents  []string
	Donations      []string
	BlogPosts      []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Location is the free-form home location of a user.
type Location struct {
	ProvinceState string
	Country       string
}

func (u *User) IsAdmin() bool {
	return u != nil && u.UserType == UserTypeAdmin
}

func (u *User) HasJoined(eventID string) bool {
	for _, id := range u.JoinedEvents {
		if id == eventID {
			return true
		}
	}
	return false
}
