// Package store persists answer records keyed by reference token.
//
// Three backends share one contract: an in-memory map for local runs and
// tests, Redis for deployments that want expiring surveys, and PostgreSQL for
// durable storage. Every backend returns sentinel.ErrNotFound for unknown
// references and treats concurrent writes to the same reference as
// last-write-wins.
package store

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"energyadvice/internal/survey/models"
	"energyadvice/pkg/platform/sentinel"
)

// Store is the reference-token store the survey service depends on.
type Store interface {
	// GenerateReference issues a fresh reference and saves an empty record
	// under it.
	GenerateReference(ctx context.Context) (string, error)
	IsReferenceValid(ctx context.Context, reference string) (bool, error)
	Load(ctx context.Context, reference string) (*models.AnswerRecord, error)
	// Save overwrites the record for an already issued reference.
	Save(ctx context.Context, record *models.AnswerRecord) error
}

// HealthChecker is implemented by backends with a remote dependency.
type HealthChecker interface {
	Health(ctx context.Context) error
}

const (
	// ReferenceLength is the number of characters in a reference token.
	ReferenceLength      = 8
	maxReferenceAttempts = 5
)

// NewReference returns a short, upper-case hex token cut from a random UUID.
func NewReference() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:ReferenceLength])
}

type options struct {
	newReference func() string
	clock        func() time.Time
	ttl          time.Duration
}

// Option configures a store.
type Option func(*options)

// WithReferenceGenerator replaces the token source.
func WithReferenceGenerator(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.newReference = fn
		}
	}
}

// WithClock sets the clock used to stamp new records.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithTTL sets how long an untouched survey is kept. Only the Redis backend
// expires records; zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(o *options) {
		if ttl >= 0 {
			o.ttl = ttl
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{newReference: NewReference, clock: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// issue draws references until create accepts one. create reports false when
// the reference is already taken.
func issue(ctx context.Context, newReference func() string, create func(ctx context.Context, reference string) (bool, error)) (string, error) {
	for range maxReferenceAttempts {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		reference := newReference()
		created, err := create(ctx, reference)
		if err != nil {
			return "", err
		}
		if created {
			return reference, nil
		}
	}
	return "", sentinel.ErrConflict
}
