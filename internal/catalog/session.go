// Package catalog binds the record store and the selection sets into one
// browsing session.
//
// A Session resolves selected ids against the live store, prunes selections
// when a plan is deleted and optionally persists the selection under its own
// medium key so it survives between CLI invocations.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dbsmedya/planbrowser/internal/filter"
	"github.com/dbsmedya/planbrowser/internal/logger"
	"github.com/dbsmedya/planbrowser/internal/plan"
	"github.com/dbsmedya/planbrowser/internal/selection"
	"github.com/dbsmedya/planbrowser/internal/store"
)

// DefaultSelectionKey is the medium key holding the persisted selection.
const DefaultSelectionKey = "selection"

// Options configures Open.
type Options struct {
	// PersistSelection stores compare and favorite ids on the medium.
	PersistSelection bool
	// SelectionKey overrides DefaultSelectionKey.
	SelectionKey string
	Logger       *logger.Logger
	StoreOptions []store.Option
}

// View is one filtered rendering of the catalog.
type View struct {
	Plans    []plan.Plan
	Total    int
	Criteria filter.Criteria
	Search   string
}

// Summary returns the "Showing N of M Plans" line.
func (v View) Summary() string {
	return filter.Summary(len(v.Plans), v.Total)
}

// Session is one open catalog. It is not safe for concurrent use.
type Session struct {
	medium    store.Medium
	store     *store.Store
	selection *selection.Manager
	log       *logger.Logger

	persistSelection bool
	selectionKey     string
	selectionFailed  bool
	notices          []string
}

// Open loads the store from medium and restores the persisted selection.
// Storage failures do not fail Open; they are reported through Notices.
func Open(ctx context.Context, medium store.Medium, opts Options) (*Session, error) {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	key := opts.SelectionKey
	if key == "" {
		key = DefaultSelectionKey
	}

	storeOpts := append([]store.Option{store.WithLogger(log)}, opts.StoreOptions...)
	s := &Session{
		medium:           medium,
		store:            store.New(medium, storeOpts...),
		selection:        selection.NewManager(),
		log:              log,
		persistSelection: opts.PersistSelection,
		selectionKey:     key,
	}
	if s.persistSelection && key == s.store.Key() {
		return nil, fmt.Errorf("selection key %q collides with the plan key", key)
	}

	if _, err := s.store.Load(ctx); err != nil {
		if !errors.Is(err, store.ErrStorageUnavailable) {
			return nil, err
		}
		s.notify("storage unavailable, changes will not be saved: %v", err)
	}

	s.restoreSelection(ctx)
	return s, nil
}

// View filters the live plan list.
func (s *Session) View(c filter.Criteria, search string) View {
	plans := s.store.List()
	return View{
		Plans:    filter.Filter(plans, c, search),
		Total:    len(plans),
		Criteria: c,
		Search:   search,
	}
}

// Options returns the selector values for the current data.
func (s *Session) Options() filter.Options {
	return filter.BuildOptions(s.store.List())
}

// Get returns the plan with id.
func (s *Session) Get(id string) (plan.Plan, error) {
	return s.store.Get(id)
}

// Add appends p to the catalog.
func (s *Session) Add(ctx context.Context, p plan.Plan) error {
	_, err := s.store.Add(ctx, p)
	return err
}

// Update replaces the plan with p's id. Selections keep pointing at it.
func (s *Session) Update(ctx context.Context, p plan.Plan) error {
	_, err := s.store.Update(ctx, p)
	return err
}

// Delete removes id from the catalog and from both selection sets.
// Deleting an unknown id is a no-op.
func (s *Session) Delete(ctx context.Context, id string) (bool, error) {
	_, removed, err := s.store.Delete(ctx, id)
	if removed {
		s.selection.Prune(id)
		s.saveSelection(ctx)
	}
	return removed, err
}

// ToggleCompare adds or removes id from the compare set. Selecting requires
// id to exist; the oldest selection is evicted past selection.CompareLimit.
func (s *Session) ToggleCompare(ctx context.Context, id string) (selected bool, evicted string, err error) {
	if !s.selection.IsCompared(id) && !s.store.Has(id) {
		return false, "", fmt.Errorf("%w: %q", store.ErrNotFound, id)
	}
	selected, evicted = s.selection.ToggleCompare(id)
	if evicted != "" {
		s.log.WithPlan(evicted).Debugw("Evicted from compare set", "added", id)
	}
	s.saveSelection(ctx)
	return selected, evicted, nil
}

// ClearCompare empties the compare set.
func (s *Session) ClearCompare(ctx context.Context) {
	s.selection.ClearCompare()
	s.saveSelection(ctx)
}

// ToggleFavorite adds or removes id from the favorites. Marking requires id
// to exist.
func (s *Session) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	if !s.selection.IsFavorite(id) && !s.store.Has(id) {
		return false, fmt.Errorf("%w: %q", store.ErrNotFound, id)
	}
	favorite := s.selection.ToggleFavorite(id)
	s.saveSelection(ctx)
	return favorite, nil
}

// Compared resolves the compare set to live plans in catalog order.
func (s *Session) Compared() []plan.Plan {
	return s.resolve(s.selection.IsCompared)
}

// Favorites resolves the favorites to live plans in catalog order.
func (s *Session) Favorites() []plan.Plan {
	return s.resolve(s.selection.IsFavorite)
}

// IsCompared reports whether id is in the compare set.
func (s *Session) IsCompared(id string) bool {
	return s.selection.IsCompared(id)
}

// IsFavorite reports whether id is a favorite.
func (s *Session) IsFavorite(id string) bool {
	return s.selection.IsFavorite(id)
}

// Store returns the underlying record store.
func (s *Session) Store() *store.Store {
	return s.store
}

// Selection returns the underlying selection manager.
func (s *Session) Selection() *selection.Manager {
	return s.selection
}

// Notices returns non-fatal problems met so far, oldest first.
func (s *Session) Notices() []string {
	out := make([]string, len(s.notices))
	copy(out, s.notices)
	return out
}

func (s *Session) resolve(selected func(string) bool) []plan.Plan {
	out := []plan.Plan{}
	for _, p := range s.store.List() {
		if selected(p.ID) {
			out = append(out, p)
		}
	}
	return out
}

func (s *Session) restoreSelection(ctx context.Context) {
	if !s.selectionPersisted() {
		return
	}
	log := s.log.WithOperation("restore-selection")

	data, found, err := s.medium.Read(ctx, s.selectionKey)
	if err != nil {
		s.selectionFailed = true
		log.Warnw("Failed to read selection", "key", s.selectionKey, "error", err)
		s.notify("selection could not be restored: %v", err)
		return
	}
	if !found {
		return
	}

	var snap selection.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		log.Warnw("Persisted selection is malformed, starting empty", "key", s.selectionKey, "error", err)
		return
	}
	s.selection.Restore(snap)

	pruned := 0
	for _, id := range append(s.selection.CompareIDs(), s.selection.FavoriteIDs()...) {
		if !s.store.Has(id) {
			s.selection.Prune(id)
			pruned++
		}
	}
	if pruned > 0 {
		log.Debugw("Pruned dangling selections", "count", pruned)
		s.saveSelection(ctx)
	}
}

// saveSelection writes the selection snapshot. Failures are logged and
// surfaced as notices; the in-memory selection stays authoritative.
func (s *Session) saveSelection(ctx context.Context) {
	if !s.selectionPersisted() {
		return
	}

	data, err := json.Marshal(s.selection.Snapshot())
	if err != nil {
		s.log.Errorw("Failed to encode selection", "error", err)
		return
	}
	if err := s.medium.Write(ctx, s.selectionKey, data); err != nil {
		s.selectionFailed = true
		s.log.WithOperation("save-selection").Warnw("Failed to persist selection", "key", s.selectionKey, "error", err)
		s.notify("selection could not be saved: %v", err)
	}
}

func (s *Session) selectionPersisted() bool {
	return s.persistSelection && s.medium != nil && !s.store.Degraded() && !s.selectionFailed
}

func (s *Session) notify(format string, args ...interface{}) {
	s.notices = append(s.notices, fmt.Sprintf(format, args...))
}
