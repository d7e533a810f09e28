package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"example.com/fitlog/internal/domain"
	"example.com/fitlog/internal/observability"
)

// StorageKey is the store key holding the activity snapshot.
const StorageKey = "fitness_activities_v1"

// ErrorKind classifies a StorageError.
type ErrorKind string

const (
	KindRead      ErrorKind = "read"
	KindWrite     ErrorKind = "write"
	KindMalformed ErrorKind = "malformed"
)

// StorageError reports a failed snapshot load or save.
type StorageError struct {
	Op   string
	Kind ErrorKind
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Kind, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Option configures optional behaviour for the Adapter.
type Option func(*Adapter)

// WithLogger overrides the logger used to report storage failures.
func WithLogger(logger zerolog.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

// WithKey overrides StorageKey.
func WithKey(key string) Option {
	return func(a *Adapter) {
		a.key = key
	}
}

// Adapter reads and writes the full activity list under one key.
type Adapter struct {
	store  Store
	key    string
	logger zerolog.Logger
	now    func() time.Time
}

// NewAdapter constructs an Adapter over store.
func NewAdapter(store Store, opts ...Option) *Adapter {
	a := &Adapter{
		store:  store,
		key:    StorageKey,
		logger: log.Logger.With().Str("component", "persistence").Logger(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Read fetches and decodes the snapshot. A key that was never written reads
// as an empty list.
func (a *Adapter) Read(ctx context.Context) ([]domain.Activity, error) {
	raw, err := a.store.Get(ctx, a.key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []domain.Activity{}, nil
		}
		return nil, &StorageError{Op: "load", Kind: KindRead, Err: err}
	}
	if len(raw) == 0 {
		return []domain.Activity{}, nil
	}

	activities, undated, err := decodeActivities(raw)
	if err != nil {
		return nil, &StorageError{Op: "load", Kind: KindMalformed, Err: err}
	}
	if len(undated) > 0 {
		a.logger.Warn().
			Strs("activity_ids", undated).
			Str("key", a.key).
			Msg("unparseable activity dates loaded as undated")
	}
	return activities, nil
}

// Write encodes the full list and replaces the stored snapshot.
func (a *Adapter) Write(ctx context.Context, activities []domain.Activity) error {
	raw, err := EncodeActivities(activities)
	if err != nil {
		return &StorageError{Op: "save", Kind: KindMalformed, Err: err}
	}
	if err := a.store.Set(ctx, a.key, raw); err != nil {
		return &StorageError{Op: "save", Kind: KindWrite, Err: err}
	}
	observability.RecordSnapshotPersisted(a.now(), len(activities))
	return nil
}

// Load returns the stored list, or nil after logging when the store cannot be
// read or holds malformed content.
func (a *Adapter) Load(ctx context.Context) []domain.Activity {
	activities, err := a.Read(ctx)
	if err != nil {
		a.report(err)
		return nil
	}
	return activities
}

// Save writes the list, logging any failure. There is no retry.
func (a *Adapter) Save(ctx context.Context, activities []domain.Activity) {
	if err := a.Write(ctx, activities); err != nil {
		a.report(err)
	}
}

func (a *Adapter) report(err error) {
	var serr *StorageError
	if !errors.As(err, &serr) {
		serr = &StorageError{Op: "unknown", Kind: KindRead, Err: err}
	}
	observability.RecordStorageFailure(serr.Op, string(serr.Kind))
	a.logger.Error().
		Err(serr.Err).
		Str("op", serr.Op).
		Str("kind", string(serr.Kind)).
		Str("key", a.key).
		Msg("storage failure")
}
