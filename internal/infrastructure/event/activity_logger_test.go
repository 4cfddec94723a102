package event

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestActivityLogHandler_Handle(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handler := NewActivityLogHandler(zap.New(core))

	event := newTestEvent("RecipeCreated")
	err := handler.Handle(context.Background(), event)

	require.NoError(t, err)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "domain event", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "RecipeCreated", fields["event_type"])
	assert.Equal(t, "Recipe", fields["aggregate_type"])
}

func TestActivityLogHandler_ReceivesAllEvents(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handler := NewActivityLogHandler(zap.New(core))

	bus := NewInMemoryEventBus(zap.NewNop())
	bus.Subscribe(handler)

	err := bus.Publish(context.Background(),
		newTestEvent("RecipeCreated"),
		newTestEvent("UserRegistered"),
	)

	require.NoError(t, err)
	assert.Equal(t, 2, logs.Len())
}
