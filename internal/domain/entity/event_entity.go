package entity

import "time"

// AgeLimit bounds the age of participants, both ends inclusive.
type AgeLimit struct {
	Lower int
	Upper int
}

// Event is a scheduled gathering with a hard participant ceiling.
// Participants and Donations are loaded from their own tables and are never written through
// the event row itself.
type Event struct {
	ID           string
	CreatorID    string
	Title        string
	Description  string
	BannerImage  string
	Location     string
	StartDate    time.Time
	EndDate      time.Time
	AgeLimit     AgeLimit
	Capacity     int
	Tags         []string
	Participants []string
	Donations    []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (e *Event) HasParticipant(userID string) bool {
	for _, id := range e.Participants {
		if id == userID {
			return true
		}
	}
	return false
}

// IsFull reports whether no further participant can be admitted.
func (e *Event) IsFull() bool {
	return len(e.Participants) >= e.Capacity
}

// HasEnded reports whether the event finished at or before now.
func (e *Event) HasEnded(now time.Time) bool {
	return !e.EndDate.After(now)
}
