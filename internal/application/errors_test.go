package application

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/go-community-events/internal/domain/entity"
	"github.com/oksasatya/go-community-events/internal/domain/repository"
)

func TestTranslate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   error
		want error
	}{
		{name: "nil", in: nil, want: nil},
		{name: "not found names the entity", in: fmt.Errorf("wrap: %w", repository.ErrNotFound), want: ErrEventNotFound},
		{name: "missing user reference names the user", in: fmt.Errorf("wrap: %w", repository.ErrUserNotFound), want: ErrUserNotFound},
		{name: "already participating", in: repository.ErrAlreadyParticipating, want: ErrAlreadyParticipating},
		{name: "capacity reached", in: repository.ErrCapacityReached, want: ErrCapacityReached},
		{name: "not participating", in: repository.ErrNotParticipating, want: ErrNotParticipating},
		{name: "capacity below enrollment", in: repository.ErrCapacityBelowEnrollment, want: ErrCapacityBelowEnrollment},
		{name: "service error passes through", in: ErrUnauthorized, want: ErrUnauthorized},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := translate(tt.in, ErrEventNotFound)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestTranslate_UnknownIsInternal(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	got := translate(cause, ErrUserNotFound)

	assert.Equal(t, KindInternal, KindOf(got))
	assert.ErrorIs(t, got, cause)
	assert.Equal(t, KindInternal, KindOf(cause))
}

func TestError_IsMatchesKindAndMessage(t *testing.T) {
	t.Parallel()

	copyOf := &Error{Kind: KindInvalidState, Message: "capacity reached"}
	assert.ErrorIs(t, copyOf, ErrCapacityReached)
	assert.NotErrorIs(t, ErrCapacityReached, ErrAlreadyParticipating)
	assert.NotErrorIs(t, &Error{Kind: KindNotFound, Message: "capacity reached"}, ErrCapacityReached)
}

func TestCanModifyEvent(t *testing.T) {
	t.Parallel()

	event := &entity.Event{CreatorID: "u1"}

	assert.True(t, CanModifyEvent(&entity.User{ID: "u1"}, event))
	assert.True(t, CanModifyEvent(&entity.User{ID: "u2", UserType: entity.UserTypeAdmin}, event))
	assert.False(t, CanModifyEvent(&entity.User{ID: "u2", UserType: entity.UserTypeRegular}, event))
	assert.False(t, CanModifyEvent(nil, event))
}
