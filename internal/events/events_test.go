package events

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusFansOutToAllSubscribers(t *testing.T) {
	bus := NewBus()

	var first, second []*Event
	bus.Subscribe(func(e *Event) { first = append(first, e) })
	bus.Subscribe(func(e *Event) { second = append(second, e) })

	bus.Emit(GenerationStarted, "strategy", nil)
	bus.Emit(GenerationCompleted, "strategy", map[string]interface{}{"result_id": "abc"})

	require.Len(t, first, 2)
	require.Len(t, second, 2)
	assert.Equal(t, GenerationStarted, first[0].Type)
	assert.Equal(t, "abc", second[1].Data["result_id"])
}

func TestBusUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus()

	var got []*Event
	unsubscribe := bus.Subscribe(func(e *Event) { got = append(got, e) })

	bus.Emit(GenerationStarted, "strategy", nil)
	unsubscribe()
	bus.Emit(GenerationCompleted, "strategy", nil)

	require.Len(t, got, 1)
	assert.Equal(t, GenerationStarted, got[0].Type)
}

func TestManagerEmitTyped(t *testing.T) {
	bus := NewBus()
	var got []*Event
	bus.Subscribe(func(e *Event) { got = append(got, e) })

	manager := NewManager(bus, zerolog.Nop())
	manager.EmitTyped(GenerationProgress, "strategy", &GenerationProgressData{
		Phase:   "scoring",
		Current: 3,
		Total:   7,
	})

	require.Len(t, got, 1)
	assert.Equal(t, GenerationProgress, got[0].Type)
	assert.Equal(t, "scoring", got[0].Data["phase"])
	assert.Equal(t, float64(3), got[0].Data["current"])
}

func TestManagerEmitError(t *testing.T) {
	bus := NewBus()
	var got []*Event
	bus.Subscribe(func(e *Event) { got = append(got, e) })

	manager := NewManager(bus, zerolog.Nop())
	manager.EmitError("backup", errors.New("bucket unreachable"), map[string]interface{}{"bucket": "daebak"})

	require.Len(t, got, 1)
	assert.Equal(t, ErrorOccurred, got[0].Type)
	assert.Equal(t, "bucket unreachable", got[0].Data["error"])
}

func TestToMapNil(t *testing.T) {
	assert.Nil(t, ToMap(nil))
}
