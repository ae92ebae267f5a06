package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherRoutesByType(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var created, deleted int
	dispatcher.Subscribe(EventTicketCreated, func(context.Context, Event) error {
		created++
		return nil
	})
	dispatcher.Subscribe(EventTicketDeleted, func(context.Context, Event) error {
		deleted++
		return nil
	})

	ctx := context.Background()
	require.NoError(t, dispatcher.Publish(ctx, Event{Type: EventTicketCreated}))
	require.NoError(t, dispatcher.Publish(ctx, Event{Type: EventTicketCreated}))
	require.NoError(t, dispatcher.Publish(ctx, Event{Type: EventTicketStatusChanged}))

	assert.Equal(t, 2, created)
	assert.Equal(t, 0, deleted)
}

func TestDispatcherHandlerErrorDoesNotStopDelivery(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var reached bool
	dispatcher.Subscribe(EventTicketCreated, func(context.Context, Event) error {
		return errors.New("boom")
	})
	dispatcher.Subscribe(EventTicketCreated, func(context.Context, Event) error {
		reached = true
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventTicketCreated}))
	assert.True(t, reached)
}
