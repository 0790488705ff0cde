package eventsender

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/HaruSatoru/shareit/internal/domain/models"
	"github.com/HaruSatoru/shareit/internal/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	mu        sync.Mutex
	published [][]byte
}

func (f *fakePublisher) Publish(_ context.Context, _, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, data)
	return nil
}

func (f *fakePublisher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.published)
}

type fakeEventStore struct {
	mu     sync.Mutex
	events map[uuid.UUID]models.Event
}

func newFakeEventStore(events ...models.Event) *fakeEventStore {
	store := &fakeEventStore{events: make(map[uuid.UUID]models.Event)}
	for _, e := range events {
		store.events[e.ID] = e
	}
	return store
}

func (f *fakeEventStore) NewEvents(_ context.Context, limit int) ([]models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Event
	for _, e := range f.events {
		if len(out) == limit {
			break
		}
		out = append(out, e)
	}

	return out, nil
}

func (f *fakeEventStore) SetEventDone(_ context.Context, eventID uuid.UUID) (models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	event, ok := f.events[eventID]
	if !ok {
		return models.Event{}, storage.ErrEventNotFound
	}

	delete(f.events, eventID)

	return event, nil
}

func (f *fakeEventStore) remaining() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

func TestSenderDrainsOutbox(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := newFakeEventStore(
		models.Event{ID: uuid.New(), Type: models.EventBookingCreated, Payload: `{"booking_id":1}`},
		models.Event{ID: uuid.New(), Type: models.EventBookingDecided, Payload: `{"booking_id":2}`},
	)
	publisher := &fakePublisher{}

	sender := NewSender(log, publisher, store)
	sender.StartProducing(context.Background(), 10, 10*time.Millisecond)
	defer sender.StopSending()

	require.Eventually(t, func() bool {
		return store.remaining() == 0
	}, time.Second, 10*time.Millisecond)

	assert.Equal(t, 2, publisher.count())
}

func TestSenderStopsOnContextCancel(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := newFakeEventStore()
	publisher := &fakePublisher{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sender := NewSender(log, publisher, store)
	sender.StartProducing(ctx, 10, 10*time.Millisecond)

	time.Sleep(50 * time.Millisecond)

	assert.Zero(t, publisher.count())
}
