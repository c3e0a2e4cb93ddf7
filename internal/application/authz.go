package application

import "github.com/oksasatya/go-community-events/internal/domain/entity"

// CanModifyEvent is the single ownership rule for event updates, deletes and banner uploads.
func CanModifyEvent(actor *entity.User, event *entity.Event) bool {
	if actor == nil || event == nil {
		return false
	}
	return actor.ID == event.CreatorID || actor.IsAdmin()
}
