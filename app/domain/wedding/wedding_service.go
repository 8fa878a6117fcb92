package wedding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vowboard.io/planner-gateway/app/domain/activitylog"
)

var (
	ErrWeddingNotFound = errors.New("wedding not found")
	ErrTitleEmpty      = errors.New("title is required")
	ErrClientRequired  = errors.New("client is required")
	ErrInvalidDate     = errors.New("wedding date must be YYYY-MM-DD")
	ErrNegativeGuests  = errors.New("guest count cannot be negative")
)

const dateLayout = "2006-01-02"

type WeddingService struct {
	repo     WeddingRepository
	activity *activitylog.ActivityLogService
}

func NewService(repo WeddingRepository, activity *activitylog.ActivityLogService) *WeddingService {
	return &WeddingService{
		repo:     repo,
		activity: activity,
	}
}

func (s *WeddingService) FindByClient(ctx context.Context, clientID string) ([]*Wedding, error) {
	return s.repo.FindByClient(ctx, clientID)
}

func (s *WeddingService) FindByID(ctx context.Context, id string) (*Wedding, error) {
	w, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, ErrWeddingNotFound
	}
	return w, nil
}

func validateDetails(date *string, guests *int) error {
	if date != nil && *date != "" {
		if _, err := time.Parse(dateLayout, *date); err != nil {
			return ErrInvalidDate
		}
	}
	if guests != nil && *guests < 0 {
		return ErrNegativeGuests
	}
	return nil
}

func (s *WeddingService) Create(ctx context.Context, w *Wedding) (*Wedding, error) {
	if w.ClientID == "" {
		return nil, ErrClientRequired
	}
	if w.Title == "" {
		return nil, ErrTitleEmpty
	}
	if err := validateDetails(w.WeddingDate, w.GuestCount); err != nil {
		return nil, err
	}
	if w.Status == "" {
		w.Status = WeddingStatusPlanning
	}
	created, err := s.repo.Create(ctx, w)
	if err != nil {
		return nil, fmt.Errorf("failed to create wedding: %w", err)
	}
	s.activity.Record(ctx, created.ID, activitylog.ActionCreated, activitylog.EntityWedding, created.ID, nil)
	return created, nil
}

func (s *WeddingService) Update(ctx context.Context, id string, patch WeddingPatch) (*Wedding, error) {
	if patch.Title != nil && *patch.Title == "" {
		return nil, ErrTitleEmpty
	}
	if err := validateDetails(patch.WeddingDate, patch.GuestCount); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update wedding: %w", err)
	}
	if updated == nil {
		return nil, ErrWeddingNotFound
	}
	if patch.Notes == nil || patch.Title != nil || patch.Status != nil {
		s.activity.Record(ctx, id, activitylog.ActionUpdated, activitylog.EntityWedding, id, nil)
	}
	return updated, nil
}

// SaveNotes writes the wedding's free-text notes.
func (s *WeddingService) SaveNotes(ctx context.Context, id string, notes string) error {
	updated, err := s.repo.Update(ctx, id, WeddingPatch{Notes: &notes})
	if err != nil {
		return err
	}
	if updated == nil {
		return ErrWeddingNotFound
	}
	return nil
}

func (s *WeddingService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete wedding: %w", err)
	}
	return nil
}
