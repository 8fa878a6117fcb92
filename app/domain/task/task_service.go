package task

import (
	"context"
	"errors"
	"fmt"

	"vowboard.io/planner-gateway/app/domain/activitylog"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrTitleEmpty   = errors.New("title is required")
)

type TaskService struct {
	repo     TaskRepository
	activity *activitylog.ActivityLogService
	boards   *BoardService
}

func NewService(repo TaskRepository, activity *activitylog.ActivityLogService, boards *BoardService) *TaskService {
	return &TaskService{
		repo:     repo,
		activity: activity,
		boards:   boards,
	}
}

func (s *TaskService) FindByID(ctx context.Context, weddingID string, id string) (*Task, error) {
	t, err := s.repo.FindByID(ctx, weddingID, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTaskNotFound
	}
	return t, nil
}

func (s *TaskService) Create(ctx context.Context, t *Task) (*Task, error) {
	if t.Title == "" {
		return nil, ErrTitleEmpty
	}
	if t.Status == "" {
		t.Status = TaskStatusPending
	}
	if t.Priority == "" {
		t.Priority = TaskPriorityMedium
	}
	created, err := s.repo.Create(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	s.boards.InvalidateWedding(t.WeddingID)
	s.activity.Record(ctx, t.WeddingID, activitylog.ActionCreated, activitylog.EntityTask, created.ID, map[string]any{"title": created.Title})
	return created, nil
}

func (s *TaskService) Update(ctx context.Context, weddingID string, id string, patch TaskPatch) (*Task, error) {
	if patch.Title != nil && *patch.Title == "" {
		return nil, ErrTitleEmpty
	}
	updated, err := s.repo.Update(ctx, weddingID, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	if updated == nil {
		return nil, ErrTaskNotFound
	}
	s.boards.InvalidateWedding(weddingID)
	s.activity.Record(ctx, weddingID, activitylog.ActionUpdated, activitylog.EntityTask, id, nil)
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, weddingID string, id string) error {
	if err := s.repo.Delete(ctx, weddingID, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	s.boards.InvalidateWedding(weddingID)
	s.activity.Record(ctx, weddingID, activitylog.ActionDeleted, activitylog.EntityTask, id, nil)
	return nil
}
