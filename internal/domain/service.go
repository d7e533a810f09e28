// Package domain defines the activity log: entry validation, the owned
// activity list and the dashboard aggregation.
package domain

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"example.com/fitlog/internal/observability"
)

// ActivityRepository captures snapshot persistence. Implementations log their
// own failures; neither call reports an error to the tracker.
type ActivityRepository interface {
	Load(ctx context.Context) []Activity
	Save(ctx context.Context, activities []Activity)
}

// TrackerOption configures optional behaviour for the Tracker.
type TrackerOption func(*Tracker)

// WithLogger overrides the logger used by the Tracker.
func WithLogger(logger zerolog.Logger) TrackerOption {
	return func(t *Tracker) {
		t.logger = logger
	}
}

// WithForm overrides the form used to validate submissions.
func WithForm(form *Form) TrackerOption {
	return func(t *Tracker) {
		t.form = form
	}
}

// Tracker owns the in-memory activity list. The list is append-only and kept
// in insertion order; every append triggers a full snapshot save.
type Tracker struct {
	repo   ActivityRepository
	form   *Form
	logger zerolog.Logger

	mu         sync.Mutex
	activities []Activity
}

// NewTracker constructs a Tracker with an empty list.
func NewTracker(repo ActivityRepository, opts ...TrackerOption) *Tracker {
	t := &Tracker{
		repo:   repo,
		form:   NewForm(),
		logger: log.Logger.With().Str("component", "tracker").Logger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Load replaces the list with the stored snapshot. A failed or empty load
// leaves the current list untouched.
func (t *Tracker) Load(ctx context.Context) {
	loaded := t.repo.Load(ctx)
	if loaded == nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.activities = loaded
	t.logger.Debug().Int("count", len(loaded)).Msg("activities loaded")
}

// Submit validates the form input, appends the new activity and saves the
// full list. Validation errors leave the list unchanged.
func (t *Tracker) Submit(ctx context.Context, typeInput, durationInput, caloriesInput string) (Activity, error) {
	activity, err := t.form.Submit(typeInput, durationInput, caloriesInput)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			observability.RecordValidationFailure(verr.Field)
		}
		return Activity{}, err
	}

	// The save runs under the lock so snapshot N always reaches the
	// repository before snapshot N+1.
	t.mu.Lock()
	defer t.mu.Unlock()

	t.activities = append(t.activities, activity)
	snapshot := make([]Activity, len(t.activities))
	copy(snapshot, t.activities)
	t.repo.Save(ctx, snapshot)

	observability.RecordSubmission()
	t.logger.Debug().
		Str("activity_id", activity.ID).
		Str("type", activity.Type).
		Int("duration_min", activity.DurationMin).
		Int("calories", activity.Calories).
		Msg("activity added")
	return activity, nil
}

// Activities returns the list most recent first.
func (t *Tracker) Activities() []Activity {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Activity, len(t.activities))
	for i, a := range t.activities {
		out[len(t.activities)-1-i] = a
	}
	return out
}

// Len reports how many activities are held.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.activities)
}

// Summary aggregates the current list relative to now.
func (t *Tracker) Summary(now time.Time) Summary {
	t.mu.Lock()
	snapshot := make([]Activity, len(t.activities))
	copy(snapshot, t.activities)
	t.mu.Unlock()

	return Summarize(snapshot, now)
}
