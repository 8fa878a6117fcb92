package activitylog

import (
	"context"

	"vowboard.io/planner-gateway/app/utils/logger"
)

const DefaultListLimit = 50

type ActivityLogService struct {
	repo ActivityLogRepository
}

func NewService(repo ActivityLogRepository) *ActivityLogService {
	return &ActivityLogService{repo: repo}
}

// Record stores an entry. Failures are logged only; a lost log line never
// fails the mutation it describes.
func (s *ActivityLogService) Record(ctx context.Context, weddingID string, action string, entityType string, entityID string, details map[string]any) {
	if weddingID == "" {
		return
	}
	entry := &Entry{
		WeddingID:  weddingID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
	}
	if _, err := s.repo.Create(ctx, entry); err != nil {
		logger.GetLogger().
			WithField("wedding_id", weddingID).
			WithField("action", action).
			WithError(err).
			Warn("activity log entry dropped")
	}
}

func (s *ActivityLogService) List(ctx context.Context, weddingID string, limit int) ([]*Entry, error) {
	if limit <= 0 || limit > 200 {
		limit = DefaultListLimit
	}
	return s.repo.FindByWedding(ctx, weddingID, limit)
}
