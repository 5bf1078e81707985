package eventbus

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesSubscribersOfType(t *testing.T) {
	b := New(context.Background())
	defer b.Close()

	var mu sync.Mutex
	var got []DomainEvent
	b.Subscribe(EventSubmitted, func(e DomainEvent) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, e)
	})
	b.Subscribe(EventCleared, func(e DomainEvent) {
		t.Errorf("cleared handler should not see %v", e.Type())
	})

	b.Publish(SubmittedEvent{Query: "towel"})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, SubmittedEvent{Query: "towel"}, got[0])
}

func TestBroadcastToAllListeners(t *testing.T) {
	b := New(context.Background())
	defer b.Close()

	var count atomic.Int32
	for i := 0; i < 3; i++ {
		b.Subscribe(EventResultsDelivered, func(DomainEvent) { count.Add(1) })
	}

	b.Publish(ResultsDeliveredEvent{Channel: "search-results"})

	require.Eventually(t, func() bool { return count.Load() == 3 }, time.Second, 5*time.Millisecond)
}

func TestUnsubscribe(t *testing.T) {
	b := New(context.Background())
	defer b.Close()

	var kept, dropped atomic.Int32
	unsubscribe := b.Subscribe(EventClosed, func(DomainEvent) { dropped.Add(1) })
	b.Subscribe(EventClosed, func(DomainEvent) { kept.Add(1) })

	unsubscribe()
	unsubscribe()
	b.Publish(ClosedEvent{})

	require.Eventually(t, func() bool { return kept.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(0), dropped.Load())
}

func TestHandlerPanicDoesNotStopDispatch(t *testing.T) {
	b := New(context.Background())
	defer b.Close()

	var after atomic.Int32
	b.Subscribe(EventPicked, func(DomainEvent) { panic("boom") })
	b.Subscribe(EventPicked, func(DomainEvent) { after.Add(1) })

	b.Publish(PickedEvent{Label: "Pharmacy"})
	b.Publish(PickedEvent{Label: "Pharmacy"})

	require.Eventually(t, func() bool { return after.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func TestPublishAfterCloseIsDropped(t *testing.T) {
	b := New(context.Background())
	b.Close()
	b.Close()

	assert.NotPanics(t, func() { b.Publish(ClearedEvent{}) })
}
