package taskrepo

import (
	"context"
	"errors"

	domain "vowboard.io/planner-gateway/app/domain/task"
	"vowboard.io/planner-gateway/app/infrastructure/cache"
	"vowboard.io/planner-gateway/app/infrastructure/remote"
	"vowboard.io/planner-gateway/app/infrastructure/remote/remoteschema"
	"vowboard.io/planner-gateway/app/infrastructure/supabase"
	"vowboard.io/planner-gateway/app/utils/functional"
	"vowboard.io/planner-gateway/config/environment_variables"
)

// TaskRemoteRepository caches tasks_<weddingID> for every caller of the
// wedding; see package remote for the access model.
type TaskRemoteRepository struct {
	client *supabase.Client
	cache  cache.CacheService
}

func NewTaskRemoteRepository(client *supabase.Client, cacheService cache.CacheService) domain.TaskRepository {
	return &TaskRemoteRepository{
		client: client,
		cache:  cacheService,
	}
}

func toDomain(row remoteschema.Task) *domain.Task {
	return row.EtoD()
}

func byRow(weddingID string, id string) *supabase.Query {
	return supabase.NewQuery().Eq("id", id).Eq("wedding_id", weddingID)
}

func (r *TaskRemoteRepository) FindByWedding(ctx context.Context, weddingID string) ([]*domain.Task, error) {
	rows, err := remote.ReadThrough(ctx, r.cache, cache.TasksKey(weddingID), environment_variables.EnvironmentVariables.TASKS_CACHE_TTL,
		func(ctx context.Context) ([]remoteschema.Task, error) {
			// ordering by "order" would fail where the column is missing; boards sort locally
			q := supabase.NewQuery().Eq("wedding_id", weddingID).Order("created_at", false, false)
			return supabase.SelectMany[remoteschema.Task](ctx, r.client, remoteschema.TableTasks, q)
		})
	if err != nil {
		return nil, err
	}
	return functional.Map(rows, toDomain), nil
}

func (r *TaskRemoteRepository) FindByID(ctx context.Context, weddingID string, id string) (*domain.Task, error) {
	row, err := supabase.SelectOne[remoteschema.Task](ctx, r.client, remoteschema.TableTasks, byRow(weddingID, id))
	if err != nil {
		return nil, remote.LogError(ctx, "task.find", err)
	}
	if row == nil {
		return nil, nil
	}
	return row.EtoD(), nil
}

func (r *TaskRemoteRepository) Create(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	row, err := supabase.InsertOne[remoteschema.Task](ctx, r.client, remoteschema.TableTasks, remoteschema.NewTaskInsert(t))
	if err != nil {
		return nil, remote.LogError(ctx, "task.create", err)
	}
	r.cache.Invalidate(ctx, cache.TasksKey(t.WeddingID))
	return row.EtoD(), nil
}

func (r *TaskRemoteRepository) Update(ctx context.Context, weddingID string, id string, patch domain.TaskPatch) (*domain.Task, error) {
	row, err := supabase.UpdateOne[remoteschema.Task](ctx, r.client, remoteschema.TableTasks, byRow(weddingID, id), remoteschema.NewTaskPatch(patch))
	if errors.Is(err, supabase.ErrEmptyResult) {
		return nil, nil
	}
	if err != nil {
		return nil, remote.LogError(ctx, "task.update", err)
	}
	r.cache.Invalidate(ctx, cache.TasksKey(weddingID))
	return row.EtoD(), nil
}

func (r *TaskRemoteRepository) UpdateOrder(ctx context.Context, weddingID string, id string, order int) error {
	err := r.client.Update(ctx, remoteschema.TableTasks, byRow(weddingID, id), map[string]any{"order": order}, nil)
	r.cache.Invalidate(ctx, cache.TasksKey(weddingID))
	if err != nil {
		return remote.OrderingError(remote.LogError(ctx, "task.order", err))
	}
	return nil
}

func (r *TaskRemoteRepository) UpdateGroup(ctx context.Context, weddingID string, id string, groupID *string) (*domain.Task, error) {
	row, err := supabase.UpdateOne[remoteschema.Task](ctx, r.client, remoteschema.TableTasks, byRow(weddingID, id), map[string]any{"task_group_id": groupID})
	r.cache.Invalidate(ctx, cache.TasksKey(weddingID))
	if errors.Is(err, supabase.ErrEmptyResult) {
		return nil, nil
	}
	if err != nil {
		return nil, remote.LogError(ctx, "task.group", err)
	}
	return row.EtoD(), nil
}

func (r *TaskRemoteRepository) Delete(ctx context.Context, weddingID string, id string) error {
	if err := r.client.Delete(ctx, remoteschema.TableTasks, byRow(weddingID, id)); err != nil {
		return remote.LogError(ctx, "task.delete", err)
	}
	r.cache.Invalidate(ctx, cache.TasksKey(weddingID))
	return nil
}
