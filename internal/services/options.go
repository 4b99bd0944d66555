package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/palabras/internal/storage"
)

// ProgressStore is the part of storage.Store the services depend on.
type ProgressStore interface {
	Load(ctx context.Context) storage.Snapshot
	Commit(ctx context.Context, snap storage.Snapshot) error
	ExportAll(ctx context.Context) ([]byte, error)
	ImportAll(ctx context.Context, data []byte) bool
	ResetAll(ctx context.Context) bool
}

const (
	defaultCorrectThreshold = 70
	defaultReviewLimit      = 20
	maxReviewLimit          = 500
)

type options struct {
	now              func() time.Time
	loc              *time.Location
	correctThreshold int
	reviewLimit      int
	newID            func() string
}

// Option configures a service.
type Option func(*options)

func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithLocation sets the time zone that decides calendar days for streaks and
// daily activity.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.loc = loc
		}
	}
}

// WithCorrectThreshold sets the score at or above which a word counts as
// answered correctly when no per-word result is given.
func WithCorrectThreshold(score int) Option {
	return func(o *options) {
		o.correctThreshold = score
	}
}

func WithReviewLimit(limit int) Option {
	return func(o *options) {
		if limit > 0 {
			o.reviewLimit = limit
		}
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(o *options) {
		o.newID = newID
	}
}

func buildOptions(opts []Option) options {
	o := options{
		now:              time.Now,
		loc:              time.Local,
		correctThreshold: defaultCorrectThreshold,
		reviewLimit:      defaultReviewLimit,
		newID:            uuid.NewString,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// today returns the current instant in the configured zone.
func (o options) today() time.Time {
	return o.now().In(o.loc)
}
