// Package store owns the canonical plan list and its persisted form.
//
// The list lives under a single key of a Medium. Every mutation rewrites the
// whole document in one Write. When the medium fails the store keeps working
// from memory for the rest of the session and reports ErrStorageUnavailable.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dbsmedya/planbrowser/internal/logger"
	"github.com/dbsmedya/planbrowser/internal/plan"
)

// DefaultKey is the medium key holding the plan list.
const DefaultKey = "plans"

var (
	// ErrStorageUnavailable is returned when the medium cannot be read or
	// written. The store continues in memory-only mode.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrDuplicateID is returned when adding a plan whose id already exists.
	ErrDuplicateID = errors.New("duplicate plan id")

	// ErrNotFound is returned when an id does not resolve to a plan.
	ErrNotFound = errors.New("plan not found")

	// ErrInvalidPlan is returned when a plan fails validation.
	ErrInvalidPlan = errors.New("invalid plan")
)

// Medium is the durable key-value substrate behind a Store.
type Medium interface {
	// Read returns the document stored under key. found is false when the
	// key has never been written.
	Read(ctx context.Context, key string) (data []byte, found bool, err error)
	// Write replaces the document under key. A failed Write must leave the
	// previous document intact.
	Write(ctx context.Context, key string, data []byte) error
}

// Option configures a Store.
type Option func(*Store)

// WithKey sets the medium key. Empty keys are ignored.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithDefaults sets the dataset used to seed an empty medium.
func WithDefaults(plans []plan.Plan) Option {
	return func(s *Store) {
		s.defaults = plan.Clone(plans)
	}
}

// WithLogger sets the logger.
func WithLogger(log *logger.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// Store is the record store. It is not safe for concurrent use.
type Store struct {
	medium   Medium
	key      string
	defaults []plan.Plan
	log      *logger.Logger

	plans    []plan.Plan
	index    map[string]int
	degraded bool
}

// New creates a Store over medium. Without WithDefaults the bundled dataset
// seeds an empty medium.
func New(medium Medium, opts ...Option) *Store {
	s := &Store{
		medium:   medium,
		key:      DefaultKey,
		defaults: plan.Defaults(),
		log:      logger.NewNop(),
		index:    map[string]int{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the persisted list, seeding and persisting the defaults when
// the medium holds nothing usable. On a medium failure it still returns a
// usable list together with an error wrapping ErrStorageUnavailable.
func (s *Store) Load(ctx context.Context) ([]plan.Plan, error) {
	log := s.log.WithOperation("load")

	if s.medium == nil {
		s.degraded = true
		s.replace(s.defaults)
		return s.List(), fmt.Errorf("%w: no medium configured", ErrStorageUnavailable)
	}

	data, found, err := s.medium.Read(ctx, s.key)
	if err != nil {
		log.Warnw("Failed to read persisted plans, continuing in memory", "key", s.key, "error", err)
		s.degraded = true
		s.replace(s.defaults)
		return s.List(), fmt.Errorf("%w: read %q: %v", ErrStorageUnavailable, s.key, err)
	}

	if found {
		plans, decodeErr := plan.Decode(data)
		if decodeErr == nil {
			s.degraded = false
			s.replace(plans)
			log.Debugw("Loaded persisted plans", "key", s.key, "count", len(plans))
			return s.List(), nil
		}
		log.Warnw("Persisted plans are malformed, reseeding defaults", "key", s.key, "error", decodeErr)
	}

	s.degraded = false
	s.replace(s.defaults)
	if err := s.persist(ctx, s.plans); err != nil {
		return s.List(), err
	}
	log.Infow("Seeded default plans", "key", s.key, "count", len(s.plans))
	return s.List(), nil
}

// Add appends p and persists the list.
func (s *Store) Add(ctx context.Context, p plan.Plan) ([]plan.Plan, error) {
	if err := p.Validate(); err != nil {
		return s.List(), fmt.Errorf("%w: %v", ErrInvalidPlan, err)
	}
	if _, exists := s.index[p.ID]; exists {
		return s.List(), fmt.Errorf("%w: %q", ErrDuplicateID, p.ID)
	}

	next := make([]plan.Plan, 0, len(s.plans)+1)
	next = append(next, s.plans...)
	next = append(next, p)

	if err := s.commit(ctx, next); err != nil {
		return s.List(), err
	}
	s.log.WithPlan(p.ID).Debugw("Added plan", "count", len(s.plans))
	return s.List(), nil
}

// Update replaces the plan with the same id, keeping its position.
func (s *Store) Update(ctx context.Context, p plan.Plan) ([]plan.Plan, error) {
	if err := p.Validate(); err != nil {
		return s.List(), fmt.Errorf("%w: %v", ErrInvalidPlan, err)
	}
	pos, exists := s.index[p.ID]
	if !exists {
		return s.List(), fmt.Errorf("%w: %q", ErrNotFound, p.ID)
	}

	next := plan.Clone(s.plans)
	next[pos] = p

	if err := s.commit(ctx, next); err != nil {
		return s.List(), err
	}
	s.log.WithPlan(p.ID).Debugw("Updated plan", "position", pos)
	return s.List(), nil
}

// Delete removes the plan with id. Deleting an absent id is a no-op and
// does not touch the medium. removed reports whether a plan was dropped.
func (s *Store) Delete(ctx context.Context, id string) (plans []plan.Plan, removed bool, err error) {
	pos, exists := s.index[id]
	if !exists {
		return s.List(), false, nil
	}

	next := make([]plan.Plan, 0, len(s.plans)-1)
	next = append(next, s.plans[:pos]...)
	next = append(next, s.plans[pos+1:]...)

	if err := s.commit(ctx, next); err != nil {
		return s.List(), true, err
	}
	s.log.WithPlan(id).Debugw("Deleted plan", "count", len(s.plans))
	return s.List(), true, nil
}

// Get returns the plan with id.
func (s *Store) Get(id string) (plan.Plan, error) {
	pos, exists := s.index[id]
	if !exists {
		return plan.Plan{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return s.plans[pos], nil
}

// Has reports whether id resolves to a plan.
func (s *Store) Has(id string) bool {
	_, exists := s.index[id]
	return exists
}

// List returns a copy of the plans in insertion order.
func (s *Store) List() []plan.Plan {
	out := make([]plan.Plan, len(s.plans))
	copy(out, s.plans)
	return out
}

// Len returns the number of plans.
func (s *Store) Len() int {
	return len(s.plans)
}

// Degraded reports whether the store has fallen back to memory-only mode.
func (s *Store) Degraded() bool {
	return s.degraded
}

// Key returns the medium key the store persists under.
func (s *Store) Key() string {
	return s.key
}

// commit installs next as the current list and persists it. The in-memory
// list is authoritative even when persisting fails.
func (s *Store) commit(ctx context.Context, next []plan.Plan) error {
	s.replace(next)
	return s.persist(ctx, next)
}

func (s *Store) persist(ctx context.Context, plans []plan.Plan) error {
	if s.degraded {
		return nil
	}

	data, err := plan.Encode(plans)
	if err != nil {
		return err
	}
	if err := s.medium.Write(ctx, s.key, data); err != nil {
		s.degraded = true
		s.log.WithOperation("persist").Warnw("Failed to persist plans, continuing in memory",
			"key", s.key, "count", len(plans), "error", err)
		return fmt.Errorf("%w: write %q: %v", ErrStorageUnavailable, s.key, err)
	}
	return nil
}

func (s *Store) replace(plans []plan.Plan) {
	s.plans = plan.Clone(plans)
	if s.plans == nil {
		s.plans = []plan.Plan{}
	}
	s.index = make(map[string]int, len(s.plans))
	for i, p := range s.plans {
		s.index[p.ID] = i
	}
}
