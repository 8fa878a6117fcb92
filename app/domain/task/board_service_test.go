package task

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"vowboard.io/planner-gateway/app/domain/activitylog"
	"vowboard.io/planner-gateway/app/domain/ordering"
)

type memoryTaskRepo struct {
	mu         sync.Mutex
	tasks      map[string]*Task
	updateErr  error
	orderErr   error
	orderCalls int
	groupCalls int
}

func newMemoryTaskRepo(tasks ...*Task) *memoryTaskRepo {
	r := &memoryTaskRepo{tasks: map[string]*Task{}}
	for _, t := range tasks {
		r.tasks[t.ID] = t
	}
	return r
}

func (r *memoryTaskRepo) FindByWedding(_ context.Context, weddingID string) ([]*Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Task
	for _, t := range r.tasks {
		if t.WeddingID == weddingID {
			out = append(out, t.Clone())
		}
	}
	return out, nil
}

func (r *memoryTaskRepo) FindByID(_ context.Context, _ string, id string) (*Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tasks[id].Clone(), nil
}

func (r *memoryTaskRepo) Create(_ context.Context, t *Task) (*Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t.ID = "new-" + t.Title
	r.tasks[t.ID] = t.Clone()
	return t.Clone(), nil
}

func (r *memoryTaskRepo) Update(_ context.Context, _ string, id string, patch TaskPatch) (*Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	t, ok := r.tasks[id]
	if !ok {
		return nil, nil
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	return t.Clone(), nil
}

func (r *memoryTaskRepo) UpdateOrder(_ context.Context, _ string, id string, order int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orderCalls++
	if r.orderErr != nil {
		return r.orderErr
	}
	r.tasks[id].Order = &order
	return nil
}

func (r *memoryTaskRepo) UpdateGroup(_ context.Context, _ string, id string, groupID *string) (*Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.groupCalls++
	r.tasks[id].TaskGroupID = groupID
	return r.tasks[id].Clone(), nil
}

func (r *memoryTaskRepo) Delete(_ context.Context, _ string, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tasks, id)
	return nil
}

type memoryLogRepo struct {
	mu      sync.Mutex
	entries []*activitylog.Entry
}

func (r *memoryLogRepo) Create(_ context.Context, e *activitylog.Entry) (*activitylog.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
	return e, nil
}

func (r *memoryLogRepo) FindByWedding(context.Context, string, int) ([]*activitylog.Entry, error) {
	return nil, nil
}

type staticCapabilities bool

func (c staticCapabilities) OrderingSupported(string) bool { return bool(c) }
func (staticCapabilities) MarkUnsupported(string)          {}

func seedTasks() []*Task {
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	group := "venue"
	zero, one := 0, 1
	return []*Task{
		{ID: "t1", WeddingID: "w1", Title: "Book florist", Status: TaskStatusPending, Order: &zero, CreatedAt: base},
		{ID: "t2", WeddingID: "w1", Title: "Taste cake", Status: TaskStatusPending, Order: &one, CreatedAt: base},
		{ID: "t3", WeddingID: "w1", Title: "Sign contract", Status: TaskStatusPending, TaskGroupID: &group, Order: &zero, CreatedAt: base},
	}
}

func newTestBoards(repo *memoryTaskRepo, logs *memoryLogRepo) *BoardService {
	return newBoardService(repo, staticCapabilities(true), activitylog.NewService(logs))
}

func TestToggleStatusCommitsAndLogs(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryTaskRepo(seedTasks()...)
	logs := &memoryLogRepo{}
	boards := newTestBoards(repo, logs)

	updated, err := boards.ToggleStatus(ctx, "w1", "t1")
	require.NoError(t, err)
	assert.Equal(t, TaskStatusCompleted, updated.Status)
	assert.Equal(t, TaskStatusCompleted, repo.tasks["t1"].Status)
	require.Len(t, logs.entries, 1)
	assert.Equal(t, activitylog.ActionCompleted, logs.entries[0].Action)
}

func TestToggleStatusRollsBackOnRemoteError(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryTaskRepo(seedTasks()...)
	repo.updateErr = errors.New("permission denied")
	boards := newTestBoards(repo, &memoryLogRepo{})

	_, err := boards.ToggleStatus(ctx, "w1", "t1")
	require.Error(t, err)

	tasks, err := boards.Tasks(ctx, "w1")
	require.NoError(t, err)
	for _, task := range tasks {
		if task.ID == "t1" {
			assert.Equal(t, TaskStatusPending, task.Status)
		}
	}
}

func TestMoveToGroupPersistsMembershipAndOrder(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryTaskRepo(seedTasks()...)
	boards := newTestBoards(repo, &memoryLogRepo{})

	group := "venue"
	result, err := boards.MoveToGroup(ctx, "w1", "t1", &group)
	require.NoError(t, err)
	assert.Equal(t, ordering.OutcomeApplied, result.Outcome)
	assert.Equal(t, "venue", *repo.tasks["t1"].TaskGroupID)
	assert.Equal(t, 1, *repo.tasks["t1"].Order)
	assert.Equal(t, 0, *repo.tasks["t2"].Order)

	tasks, err := boards.Tasks(ctx, "w1")
	require.NoError(t, err)
	byGroup := map[string][]string{}
	for _, task := range tasks {
		byGroup[task.GroupKey()] = append(byGroup[task.GroupKey()], task.ID)
	}
	assert.Equal(t, []string{"t2"}, byGroup[""])
	assert.Equal(t, []string{"t3", "t1"}, byGroup["venue"])
}

func TestMoveToCurrentGroupLeavesOrderAlone(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryTaskRepo(seedTasks()...)
	logs := &memoryLogRepo{}
	boards := newTestBoards(repo, logs)

	group := "venue"
	result, err := boards.MoveToGroup(ctx, "w1", "t3", &group)
	require.NoError(t, err)
	assert.False(t, result.Changed)
	assert.Zero(t, repo.orderCalls)
	assert.Zero(t, repo.groupCalls)
	assert.Empty(t, logs.entries)

	result, err = boards.MoveToGroup(ctx, "w1", "t1", nil)
	require.NoError(t, err)
	assert.False(t, result.Changed)
	assert.Zero(t, repo.orderCalls)

	_, err = boards.MoveToGroup(ctx, "w1", "missing", &group)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestCreateRejectsEmptyTitle(t *testing.T) {
	repo := newMemoryTaskRepo()
	logs := &memoryLogRepo{}
	activity := activitylog.NewService(logs)
	service := NewService(repo, activity, newBoardService(repo, staticCapabilities(true), activity))

	_, err := service.Create(context.Background(), &Task{WeddingID: "w1"})
	assert.ErrorIs(t, err, ErrTitleEmpty)
	assert.Empty(t, repo.tasks)

	created, err := service.Create(context.Background(), &Task{WeddingID: "w1", Title: "Hire DJ"})
	require.NoError(t, err)
	assert.Equal(t, TaskStatusPending, created.Status)
	assert.Equal(t, TaskPriorityMedium, created.Priority)
}
