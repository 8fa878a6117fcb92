package taskgroup

import (
	"context"
	"errors"
	"fmt"

	"vowboard.io/planner-gateway/app/domain/activitylog"
	"vowboard.io/planner-gateway/app/domain/board"
	"vowboard.io/planner-gateway/app/domain/ordering"
	"vowboard.io/planner-gateway/app/domain/schema"
)

var (
	ErrTaskGroupNotFound = errors.New("task group not found")
	ErrNameEmpty         = errors.New("name is required")
)

// TaskInvalidator drops cached task boards whose tasks may have changed
// group.
type TaskInvalidator interface {
	InvalidateWedding(weddingID string)
}

type TaskGroupService struct {
	repo     TaskGroupRepository
	activity *activitylog.ActivityLogService
	tasks    TaskInvalidator
	registry *board.Registry[*TaskGroup]
}

func NewService(repo TaskGroupRepository, capabilities *schema.CapabilityService, activity *activitylog.ActivityLogService, tasks TaskInvalidator) *TaskGroupService {
	return newService(repo, capabilities, activity, tasks)
}

func newService(repo TaskGroupRepository, capabilities board.Capabilities, activity *activitylog.ActivityLogService, tasks TaskInvalidator) *TaskGroupService {
	return &TaskGroupService{
		repo:     repo,
		activity: activity,
		tasks:    tasks,
		registry: board.NewRegistry(board.Config[*TaskGroup]{
			Collection:   schema.TaskGroupsCollection,
			Accessor:     Accessor,
			Clone:        (*TaskGroup).Clone,
			Empty:        func(g *TaskGroup) bool { return g == nil },
			Source:       boardSource{repo: repo},
			Capabilities: capabilities,
		}),
	}
}

// Groups returns the wedding's groups in display order.
func (s *TaskGroupService) Groups(ctx context.Context, weddingID string) ([]*TaskGroup, error) {
	return s.registry.Board(weddingID).Items(ctx)
}

func (s *TaskGroupService) Create(ctx context.Context, g *TaskGroup) (*TaskGroup, error) {
	if g.Name == "" {
		return nil, ErrNameEmpty
	}
	created, err := s.repo.Create(ctx, g)
	if err != nil {
		return nil, fmt.Errorf("failed to create task group: %w", err)
	}
	s.registry.Invalidate(g.WeddingID)
	s.activity.Record(ctx, g.WeddingID, activitylog.ActionCreated, activitylog.EntityTaskGroup, created.ID, map[string]any{"name": created.Name})
	return created, nil
}

func (s *TaskGroupService) Rename(ctx context.Context, weddingID string, id string, name string) (*TaskGroup, error) {
	if name == "" {
		return nil, ErrNameEmpty
	}
	updated, err := s.repo.Rename(ctx, weddingID, id, name)
	if err != nil {
		return nil, fmt.Errorf("failed to rename task group: %w", err)
	}
	if updated == nil {
		return nil, ErrTaskGroupNotFound
	}
	s.registry.Invalidate(weddingID)
	return updated, nil
}

// Delete removes the group; its tasks fall back to the ungrouped list.
func (s *TaskGroupService) Delete(ctx context.Context, weddingID string, id string) error {
	if err := s.repo.Delete(ctx, weddingID, id); err != nil {
		return fmt.Errorf("failed to delete task group: %w", err)
	}
	s.registry.Invalidate(weddingID)
	s.tasks.InvalidateWedding(weddingID)
	s.activity.Record(ctx, weddingID, activitylog.ActionDeleted, activitylog.EntityTaskGroup, id, nil)
	return nil
}

func (s *TaskGroupService) Reorder(ctx context.Context, weddingID string, viewer string, draggedID string, targetID string) (board.Result, error) {
	return s.registry.Board(weddingID).Reorder(ctx, viewer, draggedID, targetID, "")
}

type boardSource struct {
	repo TaskGroupRepository
}

func (b boardSource) Load(ctx context.Context, weddingID string) ([]*TaskGroup, error) {
	return b.repo.FindByWedding(ctx, weddingID)
}

func (b boardSource) UpdateOrder(ctx context.Context, weddingID string, change ordering.Change) error {
	return b.repo.UpdateOrder(ctx, weddingID, change.ID, change.Order)
}

func (b boardSource) UpdatePartition(context.Context, string, string, string) (*TaskGroup, error) {
	return nil, errors.New("task groups have a single partition")
}
