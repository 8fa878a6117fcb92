package task

import (
	"context"
	"errors"

	"vowboard.io/planner-gateway/app/domain/activitylog"
	"vowboard.io/planner-gateway/app/domain/board"
	"vowboard.io/planner-gateway/app/domain/ordering"
	"vowboard.io/planner-gateway/app/domain/schema"
)

// BoardService holds the optimistic task list of each wedding.
type BoardService struct {
	registry *board.Registry[*Task]
	repo     TaskRepository
	activity *activitylog.ActivityLogService
}

func NewBoardService(repo TaskRepository, capabilities *schema.CapabilityService, activity *activitylog.ActivityLogService) *BoardService {
	return newBoardService(repo, capabilities, activity)
}

func newBoardService(repo TaskRepository, capabilities board.Capabilities, activity *activitylog.ActivityLogService) *BoardService {
	return &BoardService{
		registry: board.NewRegistry(board.Config[*Task]{
			Collection:   schema.TasksCollection,
			Accessor:     Accessor,
			Clone:        (*Task).Clone,
			Empty:        func(t *Task) bool { return t == nil },
			Source:       boardSource{repo: repo},
			Capabilities: capabilities,
		}),
		repo:     repo,
		activity: activity,
	}
}

func (s *BoardService) Tasks(ctx context.Context, weddingID string) ([]*Task, error) {
	return s.registry.Board(weddingID).Items(ctx)
}

func (s *BoardService) Reload(ctx context.Context, weddingID string) error {
	return s.registry.Board(weddingID).Reload(ctx)
}

func (s *BoardService) ToggleStatus(ctx context.Context, weddingID string, taskID string) (*Task, error) {
	updated, err := s.registry.Board(weddingID).Update(ctx, "toggle_status", taskID,
		func(t *Task) { t.Status = t.Status.Toggled() },
		func(ctx context.Context, t *Task) (*Task, error) {
			status := t.Status
			return s.repo.Update(ctx, weddingID, taskID, TaskPatch{Status: &status})
		})
	if err != nil {
		return nil, err
	}
	action := activitylog.ActionReopened
	if updated.Status == TaskStatusCompleted {
		action = activitylog.ActionCompleted
	}
	s.activity.Record(ctx, weddingID, action, activitylog.EntityTask, taskID, nil)
	return updated, nil
}

// Reorder is viewer's drag of draggedID onto targetID within targetGroupID.
// An empty targetID appends to the group; an empty group is the ungrouped
// list.
func (s *BoardService) Reorder(ctx context.Context, weddingID string, viewer string, draggedID string, targetID string, targetGroupID string) (board.Result, error) {
	return s.registry.Board(weddingID).Reorder(ctx, viewer, draggedID, targetID, targetGroupID)
}

// MoveToGroup changes the group of taskID, appending it to the new group.
// Moving a task to its current group is a no-op.
func (s *BoardService) MoveToGroup(ctx context.Context, weddingID string, taskID string, groupID *string) (board.Result, error) {
	target := ""
	if groupID != nil {
		target = *groupID
	}
	result, err := s.registry.Board(weddingID).MoveTo(ctx, taskID, target)
	if errors.Is(err, board.ErrItemNotFound) {
		return result, ErrTaskNotFound
	}
	if err == nil && result.Changed {
		s.activity.Record(ctx, weddingID, activitylog.ActionMoved, activitylog.EntityTask, taskID, map[string]any{"task_group_id": groupID})
	}
	return result, err
}

func (s *BoardService) DragState(weddingID string, viewer string) ordering.DragState {
	return s.registry.Board(weddingID).DragState(viewer)
}

type boardSource struct {
	repo TaskRepository
}

func (b boardSource) Load(ctx context.Context, weddingID string) ([]*Task, error) {
	return b.repo.FindByWedding(ctx, weddingID)
}

func (b boardSource) UpdateOrder(ctx context.Context, weddingID string, change ordering.Change) error {
	return b.repo.UpdateOrder(ctx, weddingID, change.ID, change.Order)
}

func (b boardSource) UpdatePartition(ctx context.Context, weddingID string, id string, partition string) (*Task, error) {
	var groupID *string
	if partition != "" {
		groupID = &partition
	}
	return b.repo.UpdateGroup(ctx, weddingID, id, groupID)
}

// InvalidateWedding marks the wedding's board stale after a write that did
// not go through it.
func (s *BoardService) InvalidateWedding(weddingID string) {
	s.registry.Invalidate(weddingID)
}
