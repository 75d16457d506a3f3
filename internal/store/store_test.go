package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dbsmedya/planbrowser/internal/logger"
	"github.com/dbsmedya/planbrowser/internal/plan"
	"github.com/dbsmedya/planbrowser/internal/storage/memory"
)

var errDisk = errors.New("disk unavailable")

func seedPlans() []plan.Plan {
	a := plan.Placeholder("P1")
	a.Carrier = "Aetna"
	b := plan.Placeholder("P2")
	b.Carrier = "Humana"
	c := plan.Placeholder("P3")
	c.Carrier = "UHC"
	return []plan.Plan{a, b, c}
}

func planIDs(plans []plan.Plan) []string {
	out := make([]string, 0, len(plans))
	for _, p := range plans {
		out = append(out, p.ID)
	}
	return out
}

func persisted(t *testing.T, m *memory.Medium) []plan.Plan {
	t.Helper()
	data, ok := m.Get(DefaultKey)
	require.True(t, ok, "expected a persisted document")
	plans, err := plan.Decode(data)
	require.NoError(t, err)
	return plans
}

func loaded(t *testing.T, m *memory.Medium) *Store {
	t.Helper()
	s := New(m, WithDefaults(seedPlans()))
	_, err := s.Load(context.Background())
	require.NoError(t, err)
	return s
}

func TestLoadSeedsDefaultsOnEmptyMedium(t *testing.T) {
	m := memory.New()
	s := New(m, WithDefaults(seedPlans()))

	plans, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, seedPlans(), plans)
	assert.Equal(t, seedPlans(), persisted(t, m), "defaults must be persisted verbatim")
	assert.Equal(t, 1, m.Writes())
	assert.False(t, s.Degraded())
}

func TestLoadEmptyDefaults(t *testing.T) {
	m := memory.New()
	s := New(m, WithDefaults(nil))

	plans, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, plans)
	assert.Empty(t, persisted(t, m))
}

func TestLoadUsesBundledDefaults(t *testing.T) {
	s := New(memory.New())
	plans, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, plan.Defaults(), plans)
}

func TestLoadReturnsPersistedList(t *testing.T) {
	m := memory.New()
	stored := []plan.Plan{plan.Placeholder("X1")}
	doc, err := plan.Encode(stored)
	require.NoError(t, err)
	m.Put(DefaultKey, doc)

	s := New(m, WithDefaults(seedPlans()))
	plans, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stored, plans)
	assert.Equal(t, 0, m.Writes(), "a valid document must not be rewritten")
}

func TestLoadPersistedEmptyListIsKept(t *testing.T) {
	m := memory.New()
	m.Put(DefaultKey, []byte("[]"))

	s := New(m, WithDefaults(seedPlans()))
	plans, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, plans)
}

func TestLoadKeepsOutOfRangeRecords(t *testing.T) {
	m := memory.New()
	m.Put(DefaultKey, []byte(`[{"id":"MINE-1","rating":4.5},{"id":"MINE-2","rating":5.5}]`))

	s := New(m, WithDefaults([]plan.Plan{plan.Placeholder("DEFAULT")}))
	plans, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"MINE-1", "MINE-2"}, planIDs(plans))
	assert.Equal(t, 5.5, plans[1].Rating)
	assert.Equal(t, 0, m.Writes(), "user records must not be overwritten")

	// The loaded record can still be deleted and the rest persisted.
	_, removed, err := s.Delete(context.Background(), "MINE-1")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, []string{"MINE-2"}, planIDs(persisted(t, m)))
}

func TestLoadReseedsMalformedDocument(t *testing.T) {
	for _, doc := range []string{"{not json", "null", `{"id":"P1"}`, `[{"id":""}]`, `[{"id":"A"},{"id":"A"}]`} {
		t.Run(doc, func(t *testing.T) {
			m := memory.New()
			m.Put(DefaultKey, []byte(doc))

			s := New(m, WithDefaults(seedPlans()))
			plans, err := s.Load(context.Background())
			require.NoError(t, err)
			assert.Equal(t, seedPlans(), plans)
			assert.Equal(t, seedPlans(), persisted(t, m))
		})
	}
}

func TestLoadReadFailureDegrades(t *testing.T) {
	m := memory.New()
	m.FailReads(errDisk)

	s := New(m, WithDefaults(seedPlans()))
	plans, err := s.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStorageUnavailable))
	assert.Equal(t, seedPlans(), plans, "caller still gets a usable list")
	assert.True(t, s.Degraded())

	// Memory-only operation continues without touching the medium.
	m.FailReads(nil)
	_, err = s.Add(context.Background(), plan.Placeholder("P4"))
	require.NoError(t, err)
	assert.Equal(t, 4, s.Len())
	assert.Equal(t, 0, m.Writes())
}

func TestLoadSeedWriteFailureDegrades(t *testing.T) {
	m := memory.New()
	m.FailWrites(errDisk)

	s := New(m, WithDefaults(seedPlans()))
	plans, err := s.Load(context.Background())
	assert.True(t, errors.Is(err, ErrStorageUnavailable))
	assert.Equal(t, seedPlans(), plans)
	assert.True(t, s.Degraded())
}

func TestLoadWithoutMedium(t *testing.T) {
	s := New(nil, WithDefaults(seedPlans()))
	plans, err := s.Load(context.Background())
	assert.True(t, errors.Is(err, ErrStorageUnavailable))
	assert.Equal(t, seedPlans(), plans)

	_, err = s.Add(context.Background(), plan.Placeholder("P9"))
	assert.NoError(t, err)
}

func TestAdd(t *testing.T) {
	m := memory.New()
	s := loaded(t, m)

	plans, err := s.Add(context.Background(), plan.Placeholder("P4"))
	require.NoError(t, err)
	assert.Equal(t, []string{"P1", "P2", "P3", "P4"}, planIDs(plans))
	assert.Equal(t, plans, persisted(t, m))
}

func TestAddDuplicateID(t *testing.T) {
	m := memory.New()
	s := loaded(t, m)
	ctx := context.Background()

	first := plan.Placeholder("N1")
	first.Carrier = "Aetna"
	_, err := s.Add(ctx, first)
	require.NoError(t, err)
	writes := m.Writes()

	second := plan.Placeholder("N1")
	second.Carrier = "Humana"
	plans, err := s.Add(ctx, second)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateID))

	count := 0
	for _, p := range plans {
		if p.ID == "N1" {
			count++
			assert.Equal(t, "Aetna", p.Carrier)
		}
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, writes, m.Writes(), "rejected add must not write")
	assert.Equal(t, s.List(), persisted(t, m))
}

func TestAddInvalid(t *testing.T) {
	m := memory.New()
	s := loaded(t, m)

	_, err := s.Add(context.Background(), plan.Plan{Name: "no id"})
	assert.True(t, errors.Is(err, ErrInvalidPlan))
	assert.Equal(t, 3, s.Len())
}

func TestUpdate(t *testing.T) {
	m := memory.New()
	s := loaded(t, m)

	changed := plan.Placeholder("P2")
	changed.Carrier = "BCBS"
	changed.Premium = 42

	plans, err := s.Update(context.Background(), changed)
	require.NoError(t, err)
	assert.Equal(t, []string{"P1", "P2", "P3"}, planIDs(plans), "position is preserved")
	assert.Equal(t, changed, plans[1])
	assert.Equal(t, plans, persisted(t, m))
}

func TestUpdateNotFound(t *testing.T) {
	m := memory.New()
	s := loaded(t, m)
	before := s.List()
	writes := m.Writes()

	_, err := s.Update(context.Background(), plan.Placeholder("missing"))
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, before, s.List())
	assert.Equal(t, writes, m.Writes())
}

func TestUpdateInvalid(t *testing.T) {
	s := loaded(t, memory.New())
	bad := plan.Placeholder("P1")
	bad.Premium = -1

	_, err := s.Update(context.Background(), bad)
	assert.True(t, errors.Is(err, ErrInvalidPlan))
	got, _ := s.Get("P1")
	assert.Equal(t, 100.0, got.Premium)
}

func TestDelete(t *testing.T) {
	m := memory.New()
	s := loaded(t, m)

	plans, removed, err := s.Delete(context.Background(), "P2")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, []string{"P1", "P3"}, planIDs(plans))
	assert.Equal(t, plans, persisted(t, m))

	_, err = s.Get("P2")
	assert.True(t, errors.Is(err, ErrNotFound))
	// Index stays consistent after removal.
	p3, err := s.Get("P3")
	require.NoError(t, err)
	assert.Equal(t, "P3", p3.ID)
}

func TestDeleteMissingIsNoop(t *testing.T) {
	m := memory.New()
	s := loaded(t, m)
	writes := m.Writes()

	plans, removed, err := s.Delete(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Len(t, plans, 3)
	assert.Equal(t, writes, m.Writes())

	// Deleting twice is idempotent.
	_, removed, err = s.Delete(context.Background(), "P1")
	require.NoError(t, err)
	assert.True(t, removed)
	_, removed, err = s.Delete(context.Background(), "P1")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestWriteFailureKeepsMemoryAuthoritative(t *testing.T) {
	m := memory.New()
	s := loaded(t, m)
	before := persisted(t, m)

	m.FailWrites(errDisk)
	plans, err := s.Add(context.Background(), plan.Placeholder("P4"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStorageUnavailable))
	assert.Equal(t, []string{"P1", "P2", "P3", "P4"}, planIDs(plans))
	assert.True(t, s.Degraded())
	assert.Equal(t, before, persisted(t, m), "medium keeps the last good document")

	// Further mutations stay in memory and report no error.
	m.FailWrites(nil)
	_, _, err = s.Delete(context.Background(), "P1")
	require.NoError(t, err)
	assert.Equal(t, []string{"P2", "P3", "P4"}, planIDs(s.List()))
	assert.Equal(t, before, persisted(t, m))
}

func TestPersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := memory.New()
	s := loaded(t, m)

	_, err := s.Add(ctx, plan.Placeholder("P4"))
	require.NoError(t, err)
	upd := plan.Placeholder("P1")
	upd.Name = "Renamed"
	_, err = s.Update(ctx, upd)
	require.NoError(t, err)
	_, _, err = s.Delete(ctx, "P3")
	require.NoError(t, err)
	_, err = s.Add(ctx, plan.Placeholder("P3"))
	require.NoError(t, err)

	want := s.List()

	reopened := New(m, WithDefaults(seedPlans()))
	got, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, []string{"P1", "P2", "P4", "P3"}, planIDs(got))
}

func TestListReturnsCopy(t *testing.T) {
	s := loaded(t, memory.New())
	list := s.List()
	list[0].Name = "mutated"

	got, err := s.Get("P1")
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", got.Name)
}

func TestAccessors(t *testing.T) {
	s := loaded(t, memory.New())
	assert.True(t, s.Has("P1"))
	assert.False(t, s.Has("nope"))
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, DefaultKey, s.Key())

	custom := New(memory.New(), WithKey("catalog"), WithKey(""))
	assert.Equal(t, "catalog", custom.Key())
}

func TestCustomKey(t *testing.T) {
	m := memory.New()
	s := New(m, WithKey("catalog"), WithDefaults(seedPlans()))
	_, err := s.Load(context.Background())
	require.NoError(t, err)

	_, ok := m.Get("catalog")
	assert.True(t, ok)
	_, ok = m.Get(DefaultKey)
	assert.False(t, ok)
}

func TestMutationLogsOnlyOnSuccess(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	m := memory.New()
	s := New(m, WithDefaults(seedPlans()), WithLogger(logger.FromZap(zap.New(core))))
	_, err := s.Load(context.Background())
	require.NoError(t, err)

	_, err = s.Add(context.Background(), plan.Placeholder("P4"))
	require.NoError(t, err)
	added := logs.FilterMessage("Added plan")
	require.Equal(t, 1, added.Len())
	assert.Equal(t, "P4", added.All()[0].ContextMap()["plan"])

	m.FailWrites(errDisk)
	_, err = s.Update(context.Background(), plan.Placeholder("P1"))
	require.ErrorIs(t, err, ErrStorageUnavailable)
	assert.Zero(t, logs.FilterMessage("Updated plan").Len())
	assert.Equal(t, 1, logs.FilterMessage("Failed to persist plans, continuing in memory").Len())
}
