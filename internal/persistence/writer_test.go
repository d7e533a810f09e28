package persistence

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"example.com/fitlog/internal/domain"
)

type recordingStore struct {
	mu     sync.Mutex
	values [][]byte
}

func (s *recordingStore) Get(context.Context, string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.values) == 0 {
		return nil, ErrNotFound
	}
	return s.values[len(s.values)-1], nil
}

func (s *recordingStore) Set(_ context.Context, _ string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = append(s.values, value)
	return nil
}

func TestWriterPreservesSaveOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := &recordingStore{}
	writer := NewWriter(testAdapter(t, store), 2)
	go writer.Start(ctx)

	activities := sampleActivities()
	for i := range activities {
		writer.Save(ctx, activities[:i+1])
	}
	writer.Close()

	require.Len(t, store.values, len(activities))
	for i, raw := range store.values {
		decoded, err := DecodeActivities(raw)
		require.NoError(t, err)
		require.Len(t, decoded, i+1)
	}

	loaded := writer.Load(ctx)
	require.Equal(t, activities, loaded)
}

func TestWriterFlushesAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	store := NewMemoryStore()
	writer := NewWriter(testAdapter(t, store), 4)
	go writer.Start(ctx)

	writer.Save(ctx, sampleActivities())
	cancel()
	writer.Close()

	loaded, err := testAdapter(t, store).Read(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded, len(sampleActivities()))
}

func TestWriterDropsAfterClose(t *testing.T) {
	store := &recordingStore{}
	writer := NewWriter(testAdapter(t, store), 1)
	go writer.Start(context.Background())
	writer.Close()

	writer.Save(context.Background(), sampleActivities())
	require.Empty(t, store.values)
}

func TestWriterBacksTracker(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	writer := NewWriter(testAdapter(t, store), 1)
	go writer.Start(ctx)

	tracker := domain.NewTracker(writer)
	for _, typ := range []string{"Run", "Row", "Ride"} {
		_, err := tracker.Submit(ctx, typ, "10", "100")
		require.NoError(t, err)
	}
	writer.Close()

	reloaded := domain.NewTracker(testAdapter(t, store))
	reloaded.Load(ctx)

	want, got := tracker.Activities(), reloaded.Activities()
	require.Len(t, got, len(want))
	for i := range want {
		require.Equal(t, want[i].ID, got[i].ID)
		require.Equal(t, want[i].Type, got[i].Type)
		require.True(t, want[i].Date.Equal(got[i].Date))
	}
}

func TestWriterStartTwiceIsHarmless(t *testing.T) {
	store := &recordingStore{}
	writer := NewWriter(testAdapter(t, store), 1)
	go writer.Start(context.Background())
	<-writer.started

	require.NotPanics(t, func() { writer.Start(context.Background()) })

	writer.Save(context.Background(), sampleActivities())
	writer.Close()
	require.Len(t, store.values, 1)
}
