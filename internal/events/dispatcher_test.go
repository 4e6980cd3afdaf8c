package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDispatcher_StampsAndDelivers(t *testing.T) {
	d := NewInMemoryDispatcher(zap.NewNop())

	var received Event
	d.Subscribe(EventCaseCreated, func(_ context.Context, event Event) error {
		received = event
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventCaseCreated, CaseID: "case-1"}))
	assert.Equal(t, "case-1", received.CaseID)
	assert.NotEmpty(t, received.ID)
	assert.False(t, received.Timestamp.IsZero())
}

func TestDispatcher_HandlerFailureDoesNotStopDelivery(t *testing.T) {
	d := NewInMemoryDispatcher(zap.NewNop())

	d.Subscribe(EventCaseDeleted, func(context.Context, Event) error {
		return errors.New("boom")
	})
	delivered := false
	d.Subscribe(EventCaseDeleted, func(context.Context, Event) error {
		delivered = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventCaseDeleted}))
	assert.True(t, delivered)
}
