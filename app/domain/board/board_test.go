package board

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"vowboard.io/planner-gateway/app/domain/ordering"
)

type card struct {
	ID     string
	Lane   string
	Order  *int
	Done   bool
	Create time.Time
}

var cardAccessor = ordering.Accessor[*card]{
	ID:           func(c *card) string { return c.ID },
	Partition:    func(c *card) string { return c.Lane },
	Order:        func(c *card) *int { return c.Order },
	CreatedAt:    func(c *card) time.Time { return c.Create },
	SetOrder:     func(c *card, o int) { c.Order = &o },
	SetPartition: func(c *card, p string) { c.Lane = p },
}

func cloneCard(c *card) *card {
	out := *c
	if c.Order != nil {
		o := *c.Order
		out.Order = &o
	}
	return &out
}

type fakeSource struct {
	mu           sync.Mutex
	rows         map[string]*card
	loads        int
	orderErr     error
	partitionErr error
	orderCalls   int
	gate         *gate
}

// gate parks order updates of one lane until released.
type gate struct {
	lane    string
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func newGate(lane string) *gate {
	return &gate{lane: lane, entered: make(chan struct{}), release: make(chan struct{})}
}

func newFakeSource(lanes map[string][]string) *fakeSource {
	s := &fakeSource{rows: map[string]*card{}}
	for lane, ids := range lanes {
		for i, id := range ids {
			o := i
			s.rows[id] = &card{ID: id, Lane: lane, Order: &o}
		}
	}
	return s
}

func (s *fakeSource) Load(_ context.Context, _ string) ([]*card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	out := make([]*card, 0, len(s.rows))
	for _, c := range s.rows {
		out = append(out, cloneCard(c))
	}
	return out, nil
}

func (s *fakeSource) UpdateOrder(_ context.Context, _ string, change ordering.Change) error {
	if g := s.gate; g != nil && change.Partition == g.lane {
		g.once.Do(func() { close(g.entered) })
		<-g.release
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orderCalls++
	if s.orderErr != nil {
		return s.orderErr
	}
	o := change.Order
	s.rows[change.ID].Order = &o
	return nil
}

func (s *fakeSource) UpdatePartition(_ context.Context, _ string, id string, partition string) (*card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.partitionErr != nil {
		return nil, s.partitionErr
	}
	s.rows[id].Lane = partition
	return cloneCard(s.rows[id]), nil
}

type fakeCapabilities struct {
	supported   bool
	unsupported []string
}

func (f *fakeCapabilities) OrderingSupported(string) bool { return f.supported }

func (f *fakeCapabilities) MarkUnsupported(collection string) {
	f.supported = false
	f.unsupported = append(f.unsupported, collection)
}

func newTestRegistry(source *fakeSource, caps *fakeCapabilities) *Registry[*card] {
	return NewRegistry(Config[*card]{
		Collection:   "cards",
		Accessor:     cardAccessor,
		Clone:        cloneCard,
		Empty:        func(c *card) bool { return c == nil },
		Source:       source,
		Capabilities: caps,
	})
}

func laneIDs(items []*card, lane string) []string {
	var out []string
	for _, c := range items {
		if c.Lane == lane {
			out = append(out, c.ID)
		}
	}
	return out
}

func TestReorderPersistsDenseOrder(t *testing.T) {
	ctx := context.Background()
	source := newFakeSource(map[string][]string{"": {"a", "b", "c"}})
	b := newTestRegistry(source, &fakeCapabilities{supported: true}).Board("w1")

	result, err := b.Reorder(ctx, "u1", "c", "a", "")
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, ordering.OutcomeApplied, result.Outcome)
	assert.Equal(t, ordering.Idle, b.DragState("u1"))

	items, err := b.Items(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, laneIDs(items, ""))
	assert.Equal(t, 0, *source.rows["c"].Order)
	assert.Equal(t, 2, *source.rows["b"].Order)
}

func TestReorderDegradesWhenOrderingUnsupported(t *testing.T) {
	ctx := context.Background()
	source := newFakeSource(map[string][]string{"": {"d1", "d2", "d3"}})
	b := newTestRegistry(source, &fakeCapabilities{supported: false}).Board("w1")

	result, err := b.Reorder(ctx, "u1", "d3", "d1", "")
	require.NoError(t, err)
	assert.Equal(t, ordering.OutcomeDegraded, result.Outcome)
	assert.Zero(t, source.orderCalls)

	items, err := b.Items(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"d3", "d1", "d2"}, laneIDs(items, ""))
}

func TestReorderMarksCapabilityOnSchemaErrorAtWriteTime(t *testing.T) {
	ctx := context.Background()
	source := newFakeSource(map[string][]string{"": {"a", "b"}})
	source.orderErr = ordering.ErrOrderingUnsupported
	caps := &fakeCapabilities{supported: true}
	b := newTestRegistry(source, caps).Board("w1")

	result, err := b.Reorder(ctx, "u1", "b", "a", "")
	require.NoError(t, err)
	assert.Equal(t, ordering.OutcomeDegraded, result.Outcome)
	assert.Equal(t, []string{"cards"}, caps.unsupported)
}

func TestReorderFailureReloadsFromSource(t *testing.T) {
	ctx := context.Background()
	source := newFakeSource(map[string][]string{"": {"a", "b", "c"}})
	b := newTestRegistry(source, &fakeCapabilities{supported: true}).Board("w1")
	_, err := b.Items(ctx)
	require.NoError(t, err)

	source.orderErr = errors.New("network down")
	result, err := b.Reorder(ctx, "u1", "a", "", "")
	require.Error(t, err)
	assert.Equal(t, ordering.OutcomeFailed, result.Outcome)
	assert.Equal(t, 2, source.loads)
	assert.Equal(t, ordering.Idle, b.DragState("u1"))

	items, err := b.Items(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, laneIDs(items, ""))
}

func TestCrossPartitionMovePersistsMembershipEvenWhenDegraded(t *testing.T) {
	ctx := context.Background()
	source := newFakeSource(map[string][]string{"": {"a", "b"}, "g1": {"x"}})
	b := newTestRegistry(source, &fakeCapabilities{supported: false}).Board("w1")

	result, err := b.Reorder(ctx, "u1", "a", "", "g1")
	require.NoError(t, err)
	assert.Equal(t, ordering.OutcomeDegraded, result.Outcome)
	assert.Equal(t, "g1", source.rows["a"].Lane)

	items, err := b.Items(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "a"}, laneIDs(items, "g1"))
	assert.Equal(t, []string{"b"}, laneIDs(items, ""))
}

func TestNoOpDropIssuesNoWrites(t *testing.T) {
	ctx := context.Background()
	source := newFakeSource(map[string][]string{"": {"a", "b"}})
	b := newTestRegistry(source, &fakeCapabilities{supported: true}).Board("w1")

	result, err := b.Reorder(ctx, "u1", "a", "a", "")
	require.NoError(t, err)
	assert.False(t, result.Changed)
	assert.Zero(t, source.orderCalls)

	_, err = b.Reorder(ctx, "u1", "a", "ghost", "")
	assert.ErrorIs(t, err, ordering.ErrInvalidDrop)
	assert.Equal(t, ordering.Idle, b.DragState("u1"))
}

func TestUpdateRollsBackOnFailureAndReconcilesOnSuccess(t *testing.T) {
	ctx := context.Background()
	source := newFakeSource(map[string][]string{"": {"a"}})
	b := newTestRegistry(source, &fakeCapabilities{supported: true}).Board("w1")

	_, err := b.Update(ctx, "toggle", "a", func(c *card) { c.Done = !c.Done }, func(context.Context, *card) (*card, error) {
		return nil, errors.New("rejected")
	})
	require.Error(t, err)
	items, _ := b.Items(ctx)
	assert.False(t, items[0].Done)

	_, err = b.Update(ctx, "toggle", "a", func(c *card) { c.Done = !c.Done }, func(context.Context, *card) (*card, error) {
		return nil, nil
	})
	require.Error(t, err)
	items, _ = b.Items(ctx)
	assert.False(t, items[0].Done)

	updated, err := b.Update(ctx, "toggle", "a", func(c *card) { c.Done = !c.Done }, func(_ context.Context, c *card) (*card, error) {
		canonical := cloneCard(c)
		canonical.Lane = "server"
		return canonical, nil
	})
	require.NoError(t, err)
	assert.True(t, updated.Done)
	items, _ = b.Items(ctx)
	assert.True(t, items[0].Done)
	assert.Equal(t, "server", items[0].Lane)

	_, err = b.Update(ctx, "toggle", "zzz", func(*card) {}, nil)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestRegistryInvalidateForcesReload(t *testing.T) {
	ctx := context.Background()
	source := newFakeSource(map[string][]string{"": {"a"}})
	r := newTestRegistry(source, &fakeCapabilities{supported: true})

	_, err := r.Board("w1").Items(ctx)
	require.NoError(t, err)
	_, err = r.Board("w1").Items(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, source.loads)

	r.Invalidate("w1")
	r.Invalidate("unknown")
	_, err = r.Board("w1").Items(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, source.loads)
}

func TestViewersReorderTheSameBoardConcurrently(t *testing.T) {
	ctx := context.Background()
	source := newFakeSource(map[string][]string{"": {"a", "b", "c"}, "g": {"x", "y"}})
	g := newGate("")
	source.gate = g
	b := newTestRegistry(source, &fakeCapabilities{supported: true}).Board("w1")
	_, err := b.Items(ctx)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := b.Reorder(ctx, "alice", "c", "a", "")
		done <- err
	}()
	<-g.entered
	assert.Equal(t, ordering.Dragging, b.DragState("alice"))

	result, err := b.Reorder(ctx, "bob", "y", "x", "g")
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, ordering.OutcomeApplied, result.Outcome)
	assert.Equal(t, ordering.Idle, b.DragState("bob"))

	_, err = b.Reorder(ctx, "alice", "b", "a", "")
	assert.ErrorIs(t, err, ordering.ErrAlreadyDragging)

	close(g.release)
	require.NoError(t, <-done)
	assert.Equal(t, ordering.Idle, b.DragState("alice"))

	items, err := b.Items(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, laneIDs(items, ""))
	assert.Equal(t, []string{"y", "x"}, laneIDs(items, "g"))
}

func TestMoveToCurrentPartitionIsNoOp(t *testing.T) {
	ctx := context.Background()
	source := newFakeSource(map[string][]string{"g": {"a", "b", "c"}})
	b := newTestRegistry(source, &fakeCapabilities{supported: true}).Board("w1")

	result, err := b.MoveTo(ctx, "a", "g")
	require.NoError(t, err)
	assert.False(t, result.Changed)
	assert.Zero(t, source.orderCalls)

	items, err := b.Items(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, laneIDs(items, "g"))

	_, err = b.MoveTo(ctx, "ghost", "g")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestMoveToOtherPartitionAppends(t *testing.T) {
	ctx := context.Background()
	source := newFakeSource(map[string][]string{"": {"a", "b"}, "g": {"x"}})
	b := newTestRegistry(source, &fakeCapabilities{supported: true}).Board("w1")

	result, err := b.MoveTo(ctx, "a", "g")
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, "g", source.rows["a"].Lane)
	assert.Equal(t, 1, *source.rows["a"].Order)
	assert.Equal(t, 0, *source.rows["b"].Order)
}

func TestDropOnTargetInAnotherPartitionIsInvalid(t *testing.T) {
	ctx := context.Background()
	source := newFakeSource(map[string][]string{"": {"a", "b"}, "g": {"x"}})
	b := newTestRegistry(source, &fakeCapabilities{supported: true}).Board("w1")

	_, err := b.Reorder(ctx, "u1", "a", "x", "")
	assert.ErrorIs(t, err, ordering.ErrInvalidDrop)
	assert.Zero(t, source.orderCalls)
	assert.Equal(t, ordering.Idle, b.DragState("u1"))
}
