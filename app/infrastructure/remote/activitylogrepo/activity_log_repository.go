package activitylogrepo

import (
	"context"

	domain "vowboard.io/planner-gateway/app/domain/activitylog"
	"vowboard.io/planner-gateway/app/infrastructure/remote"
	"vowboard.io/planner-gateway/app/infrastructure/remote/remoteschema"
	"vowboard.io/planner-gateway/app/infrastructure/supabase"
	"vowboard.io/planner-gateway/app/utils/functional"
)

// Logs are append-only and read rarely; they bypass the cache.
type ActivityLogRemoteRepository struct {
	client *supabase.Client
}

func NewActivityLogRemoteRepository(client *supabase.Client) domain.ActivityLogRepository {
	return &ActivityLogRemoteRepository{client: client}
}

func (r *ActivityLogRemoteRepository) Create(ctx context.Context, e *domain.Entry) (*domain.Entry, error) {
	row, err := supabase.InsertOne[remoteschema.ActivityLog](ctx, r.client, remoteschema.TableLogs, remoteschema.NewActivityLogInsert(e))
	if err != nil {
		return nil, remote.LogError(ctx, "activity_log.create", err)
	}
	return row.EtoD(), nil
}

func (r *ActivityLogRemoteRepository) FindByWedding(ctx context.Context, weddingID string, limit int) ([]*domain.Entry, error) {
	q := supabase.NewQuery().Eq("wedding_id", weddingID).Order("created_at", false, false).Limit(limit)
	rows, err := supabase.SelectMany[remoteschema.ActivityLog](ctx, r.client, remoteschema.TableLogs, q)
	if err != nil {
		return nil, remote.LogError(ctx, "activity_log.list", err)
	}
	return functional.Map(rows, func(row remoteschema.ActivityLog) *domain.Entry { return row.EtoD() }), nil
}
