package taskgrouprepo

import (
	"context"
	"errors"

	domain "vowboard.io/planner-gateway/app/domain/taskgroup"
	"vowboard.io/planner-gateway/app/infrastructure/cache"
	"vowboard.io/planner-gateway/app/infrastructure/remote"
	"vowboard.io/planner-gateway/app/infrastructure/remote/remoteschema"
	"vowboard.io/planner-gateway/app/infrastructure/supabase"
	"vowboard.io/planner-gateway/app/utils/functional"
	"vowboard.io/planner-gateway/config/environment_variables"
)

// TaskGroupRemoteRepository shares task_groups_<weddingID> across callers
// of the wedding.
type TaskGroupRemoteRepository struct {
	client *supabase.Client
	cache  cache.CacheService
}

func NewTaskGroupRemoteRepository(client *supabase.Client, cacheService cache.CacheService) domain.TaskGroupRepository {
	return &TaskGroupRemoteRepository{
		client: client,
		cache:  cacheService,
	}
}

func byRow(weddingID string, id string) *supabase.Query {
	return supabase.NewQuery().Eq("id", id).Eq("wedding_id", weddingID)
}

func (r *TaskGroupRemoteRepository) FindByWedding(ctx context.Context, weddingID string) ([]*domain.TaskGroup, error) {
	rows, err := remote.ReadThrough(ctx, r.cache, cache.TaskGroupsKey(weddingID), environment_variables.EnvironmentVariables.TASK_GROUPS_CACHE_TTL,
		func(ctx context.Context) ([]remoteschema.TaskGroup, error) {
			q := supabase.NewQuery().Eq("wedding_id", weddingID).Order("created_at", false, false)
			return supabase.SelectMany[remoteschema.TaskGroup](ctx, r.client, remoteschema.TableTaskGroups, q)
		})
	if err != nil {
		return nil, err
	}
	return functional.Map(rows, func(row remoteschema.TaskGroup) *domain.TaskGroup { return row.EtoD() }), nil
}

func (r *TaskGroupRemoteRepository) Create(ctx context.Context, g *domain.TaskGroup) (*domain.TaskGroup, error) {
	row, err := supabase.InsertOne[remoteschema.TaskGroup](ctx, r.client, remoteschema.TableTaskGroups, remoteschema.NewTaskGroupInsert(g))
	if err != nil {
		return nil, remote.LogError(ctx, "task_group.create", err)
	}
	r.cache.Invalidate(ctx, cache.TaskGroupsKey(g.WeddingID))
	return row.EtoD(), nil
}

func (r *TaskGroupRemoteRepository) Rename(ctx context.Context, weddingID string, id string, name string) (*domain.TaskGroup, error) {
	row, err := supabase.UpdateOne[remoteschema.TaskGroup](ctx, r.client, remoteschema.TableTaskGroups, byRow(weddingID, id), map[string]any{"name": name})
	if errors.Is(err, supabase.ErrEmptyResult) {
		return nil, nil
	}
	if err != nil {
		return nil, remote.LogError(ctx, "task_group.rename", err)
	}
	r.cache.Invalidate(ctx, cache.TaskGroupsKey(weddingID))
	return row.EtoD(), nil
}

func (r *TaskGroupRemoteRepository) UpdateOrder(ctx context.Context, weddingID string, id string, order int) error {
	err := r.client.Update(ctx, remoteschema.TableTaskGroups, byRow(weddingID, id), map[string]any{"order": order}, nil)
	r.cache.Invalidate(ctx, cache.TaskGroupsKey(weddingID))
	if err != nil {
		return remote.OrderingError(remote.LogError(ctx, "task_group.order", err))
	}
	return nil
}

// Delete removes the group. Its tasks are detached first so they fall back
// to the ungrouped list whatever the foreign key action is.
func (r *TaskGroupRemoteRepository) Delete(ctx context.Context, weddingID string, id string) error {
	detach := supabase.NewQuery().Eq("wedding_id", weddingID).Eq("task_group_id", id)
	if err := r.client.Update(ctx, remoteschema.TableTasks, detach, map[string]any{"task_group_id": nil}, nil); err != nil {
		return remote.LogError(ctx, "task_group.detach_tasks", err)
	}
	if err := r.client.Delete(ctx, remoteschema.TableTaskGroups, byRow(weddingID, id)); err != nil {
		return remote.LogError(ctx, "task_group.delete", err)
	}
	r.cache.Invalidate(ctx, cache.TaskGroupsKey(weddingID), cache.TasksKey(weddingID))
	return nil
}
