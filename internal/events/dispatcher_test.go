package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/pos-service/internal/domain"
)

func TestDispatcher_PublishReachesSubscribersOfType(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []Event
	d.Subscribe(EventUserLoggedIn, func(_ context.Context, e Event) error {
		got = append(got, e)
		return nil
	})
	d.Subscribe(EventUserRegistered, func(context.Context, Event) error {
		t.Fatal("unexpected handler invoked")
		return nil
	})

	user := &domain.User{ID: 3, Email: "ada@pos.test"}
	event := NewEvent(EventUserLoggedIn, user, time.Now(), UserLoggedInPayload{Role: domain.RoleCashier})
	require.NoError(t, d.Publish(context.Background(), event))

	require.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].UserID)
	assert.Equal(t, "ada@pos.test", got[0].Email)
	assert.NotEmpty(t, got[0].ID)
}

func TestDispatcher_RunsAllHandlersAndJoinsErrors(t *testing.T) {
	d := NewInMemoryDispatcher()
	boom := errors.New("boom")

	calls := 0
	d.Subscribe(EventUserRegistered, func(context.Context, Event) error {
		calls++
		return boom
	})
	d.Subscribe(EventUserRegistered, func(context.Context, Event) error {
		calls++
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventUserRegistered})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}
