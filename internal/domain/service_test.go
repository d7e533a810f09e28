package domain

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	loaded []Activity
	saves  [][]Activity
}

func (r *stubRepo) Load(context.Context) []Activity {
	return r.loaded
}

func (r *stubRepo) Save(_ context.Context, activities []Activity) {
	r.saves = append(r.saves, activities)
}

func newTestTracker(t *testing.T, repo ActivityRepository) *Tracker {
	now := time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC)
	ids := 0
	form := NewForm(
		WithClock(func() time.Time {
			now = now.Add(time.Minute)
			return now
		}),
		WithIDGenerator(func() string {
			ids++
			return string(rune('a' + ids - 1))
		}),
	)
	return NewTracker(repo, WithForm(form), WithLogger(zerolog.New(zerolog.NewTestWriter(t))))
}

func TestTrackerSubmitAppendsAndSaves(t *testing.T) {
	repo := &stubRepo{}
	tracker := newTestTracker(t, repo)

	activity, err := tracker.Submit(context.Background(), "Yoga", "30", "150")
	require.NoError(t, err)
	require.Equal(t, "Yoga", activity.Type)
	require.Equal(t, 30, activity.DurationMin)
	require.Equal(t, 150, activity.Calories)

	require.Equal(t, 1, tracker.Len())
	require.Len(t, repo.saves, 1)
	require.Equal(t, []Activity{activity}, repo.saves[0])
}

func TestTrackerSubmitRejectsWithoutMutation(t *testing.T) {
	repo := &stubRepo{}
	tracker := newTestTracker(t, repo)

	_, err := tracker.Submit(context.Background(), "", "30", "150")
	require.ErrorIs(t, err, ErrMissingType)
	require.Zero(t, tracker.Len())
	require.Empty(t, repo.saves)
}

func TestTrackerSavesFullSnapshots(t *testing.T) {
	repo := &stubRepo{}
	tracker := newTestTracker(t, repo)
	ctx := context.Background()

	first, err := tracker.Submit(ctx, "Run", "20", "200")
	require.NoError(t, err)
	second, err := tracker.Submit(ctx, "Swim", "40", "350")
	require.NoError(t, err)

	require.Len(t, repo.saves, 2)
	require.Equal(t, []Activity{first}, repo.saves[0], "earlier snapshot must not see later appends")
	require.Equal(t, []Activity{first, second}, repo.saves[1])
}

func TestTrackerActivitiesMostRecentFirst(t *testing.T) {
	tracker := newTestTracker(t, &stubRepo{})
	ctx := context.Background()

	for _, typ := range []string{"Run", "Bike", "Swim"} {
		_, err := tracker.Submit(ctx, typ, "10", "100")
		require.NoError(t, err)
	}

	listed := tracker.Activities()
	require.Len(t, listed, 3)
	require.Equal(t, "Swim", listed[0].Type)
	require.Equal(t, "Bike", listed[1].Type)
	require.Equal(t, "Run", listed[2].Type)
}

func TestTrackerLoadReplacesList(t *testing.T) {
	stored := []Activity{
		{ID: "1", Type: "Run", DurationMin: 30, Calories: 300, Date: time.Date(2024, time.January, 9, 7, 0, 0, 0, time.UTC)},
	}
	tracker := newTestTracker(t, &stubRepo{loaded: stored})

	tracker.Load(context.Background())
	require.Equal(t, stored, tracker.Activities())
}

func TestTrackerLoadFailureKeepsList(t *testing.T) {
	repo := &stubRepo{}
	tracker := newTestTracker(t, repo)
	_, err := tracker.Submit(context.Background(), "Run", "20", "200")
	require.NoError(t, err)

	repo.loaded = nil
	tracker.Load(context.Background())
	require.Equal(t, 1, tracker.Len())
}

func TestTrackerSummary(t *testing.T) {
	tracker := newTestTracker(t, &stubRepo{})
	ctx := context.Background()

	_, err := tracker.Submit(ctx, "Run", "20", "200")
	require.NoError(t, err)
	_, err = tracker.Submit(ctx, "Lift", "45", "250")
	require.NoError(t, err)

	s := tracker.Summary(time.Date(2024, time.January, 10, 18, 0, 0, 0, time.UTC))
	require.Equal(t, 450, s.DailyCalories)
	require.Equal(t, 65, s.DailyDuration)
	require.Equal(t, 2, s.WeeklyWorkouts)
	require.InDelta(t, 0.9, s.GoalProgress(), 1e-9)
}
