package taskgroup

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"vowboard.io/planner-gateway/app/domain/activitylog"
	"vowboard.io/planner-gateway/app/domain/ordering"
)

type memoryGroupRepo struct {
	groups     map[string]*TaskGroup
	orderCalls int
}

func (r *memoryGroupRepo) FindByWedding(_ context.Context, weddingID string) ([]*TaskGroup, error) {
	var out []*TaskGroup
	for _, g := range r.groups {
		if g.WeddingID == weddingID {
			out = append(out, g.Clone())
		}
	}
	return out, nil
}

func (r *memoryGroupRepo) Create(_ context.Context, g *TaskGroup) (*TaskGroup, error) {
	g.ID = g.Name
	r.groups[g.ID] = g.Clone()
	return g.Clone(), nil
}

func (r *memoryGroupRepo) Rename(_ context.Context, _ string, id string, name string) (*TaskGroup, error) {
	g, ok := r.groups[id]
	if !ok {
		return nil, nil
	}
	g.Name = name
	return g.Clone(), nil
}

func (r *memoryGroupRepo) UpdateOrder(_ context.Context, _ string, id string, order int) error {
	r.orderCalls++
	r.groups[id].Order = &order
	return nil
}

func (r *memoryGroupRepo) Delete(_ context.Context, _ string, id string) error {
	delete(r.groups, id)
	return nil
}

type nopLogRepo struct{}

func (nopLogRepo) Create(_ context.Context, e *activitylog.Entry) (*activitylog.Entry, error) {
	return e, nil
}

func (nopLogRepo) FindByWedding(context.Context, string, int) ([]*activitylog.Entry, error) {
	return nil, nil
}

type recordingInvalidator struct{ weddings []string }

func (r *recordingInvalidator) InvalidateWedding(weddingID string) {
	r.weddings = append(r.weddings, weddingID)
}

type staticCapabilities bool

func (c staticCapabilities) OrderingSupported(string) bool { return bool(c) }
func (staticCapabilities) MarkUnsupported(string)          {}

func seedRepo() *memoryGroupRepo {
	zero, one, two := 0, 1, 2
	return &memoryGroupRepo{groups: map[string]*TaskGroup{
		"ceremony":  {ID: "ceremony", WeddingID: "w1", Name: "Ceremony", Order: &zero},
		"reception": {ID: "reception", WeddingID: "w1", Name: "Reception", Order: &one},
		"travel":    {ID: "travel", WeddingID: "w1", Name: "Travel", Order: &two},
	}}
}

func names(groups []*TaskGroup) []string {
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.ID
	}
	return out
}

func TestReorderGroups(t *testing.T) {
	ctx := context.Background()
	repo := seedRepo()
	service := newService(repo, staticCapabilities(true), activitylog.NewService(nopLogRepo{}), &recordingInvalidator{})

	result, err := service.Reorder(ctx, "w1", "u1", "travel", "ceremony")
	require.NoError(t, err)
	assert.Equal(t, ordering.OutcomeApplied, result.Outcome)

	groups, err := service.Groups(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, []string{"travel", "ceremony", "reception"}, names(groups))
	assert.Equal(t, 0, *repo.groups["travel"].Order)
	assert.Equal(t, 2, *repo.groups["reception"].Order)
}

func TestReorderGroupsWithoutOrderColumn(t *testing.T) {
	ctx := context.Background()
	repo := seedRepo()
	service := newService(repo, staticCapabilities(false), activitylog.NewService(nopLogRepo{}), &recordingInvalidator{})

	result, err := service.Reorder(ctx, "w1", "u1", "ceremony", "")
	require.NoError(t, err)
	assert.Equal(t, ordering.OutcomeDegraded, result.Outcome)
	assert.Zero(t, repo.orderCalls)
}

func TestDeleteInvalidatesTaskBoards(t *testing.T) {
	tasks := &recordingInvalidator{}
	service := newService(seedRepo(), staticCapabilities(true), activitylog.NewService(nopLogRepo{}), tasks)

	require.NoError(t, service.Delete(context.Background(), "w1", "travel"))
	assert.Equal(t, []string{"w1"}, tasks.weddings)

	_, err := service.Create(context.Background(), &TaskGroup{WeddingID: "w1"})
	assert.ErrorIs(t, err, ErrNameEmpty)

	_, err = service.Rename(context.Background(), "w1", "nope", "Other")
	assert.ErrorIs(t, err, ErrTaskGroupNotFound)
}
