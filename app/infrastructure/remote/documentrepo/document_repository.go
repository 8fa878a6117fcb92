package documentrepo

import (
	"context"
	"errors"

	domain "vowboard.io/planner-gateway/app/domain/document"
	"vowboard.io/planner-gateway/app/infrastructure/cache"
	"vowboard.io/planner-gateway/app/infrastructure/remote"
	"vowboard.io/planner-gateway/app/infrastructure/remote/remoteschema"
	"vowboard.io/planner-gateway/app/infrastructure/supabase"
	"vowboard.io/planner-gateway/app/utils/functional"
	"vowboard.io/planner-gateway/config/environment_variables"
)

// DocumentRemoteRepository shares documents_<weddingID> across callers of
// the wedding.
type DocumentRemoteRepository struct {
	client *supabase.Client
	cache  cache.CacheService
}

func NewDocumentRemoteRepository(client *supabase.Client, cacheService cache.CacheService) domain.DocumentRepository {
	return &DocumentRemoteRepository{
		client: client,
		cache:  cacheService,
	}
}

func byRow(weddingID string, id string) *supabase.Query {
	return supabase.NewQuery().Eq("id", id).Eq("wedding_id", weddingID)
}

func (r *DocumentRemoteRepository) FindByWedding(ctx context.Context, weddingID string) ([]*domain.Document, error) {
	rows, err := remote.ReadThrough(ctx, r.cache, cache.DocumentsKey(weddingID), environment_variables.EnvironmentVariables.DOCUMENTS_CACHE_TTL,
		func(ctx context.Context) ([]remoteschema.Document, error) {
			q := supabase.NewQuery().Eq("wedding_id", weddingID).Order("created_at", false, false)
			return supabase.SelectMany[remoteschema.Document](ctx, r.client, remoteschema.TableDocuments, q)
		})
	if err != nil {
		return nil, err
	}
	return functional.Map(rows, func(row remoteschema.Document) *domain.Document { return row.EtoD() }), nil
}

func (r *DocumentRemoteRepository) FindByID(ctx context.Context, weddingID string, id string) (*domain.Document, error) {
	row, err := supabase.SelectOne[remoteschema.Document](ctx, r.client, remoteschema.TableDocuments, byRow(weddingID, id))
	if err != nil {
		return nil, remote.LogError(ctx, "document.find", err)
	}
	if row == nil {
		return nil, nil
	}
	return row.EtoD(), nil
}

func (r *DocumentRemoteRepository) Create(ctx context.Context, d *domain.Document) (*domain.Document, error) {
	row, err := supabase.InsertOne[remoteschema.Document](ctx, r.client, remoteschema.TableDocuments, remoteschema.NewDocumentInsert(d))
	if err != nil {
		return nil, remote.LogError(ctx, "document.create", err)
	}
	r.cache.Invalidate(ctx, cache.DocumentsKey(d.WeddingID))
	return row.EtoD(), nil
}

func (r *DocumentRemoteRepository) Update(ctx context.Context, weddingID string, id string, patch domain.DocumentPatch) (*domain.Document, error) {
	row, err := supabase.UpdateOne[remoteschema.Document](ctx, r.client, remoteschema.TableDocuments, byRow(weddingID, id), remoteschema.NewDocumentPatch(patch))
	if errors.Is(err, supabase.ErrEmptyResult) {
		return nil, nil
	}
	if err != nil {
		return nil, remote.LogError(ctx, "document.update", err)
	}
	r.cache.Invalidate(ctx, cache.DocumentsKey(weddingID))
	return row.EtoD(), nil
}

func (r *DocumentRemoteRepository) UpdateOrder(ctx context.Context, weddingID string, id string, order int) error {
	err := r.client.Update(ctx, remoteschema.TableDocuments, byRow(weddingID, id), map[string]any{"order": order}, nil)
	r.cache.Invalidate(ctx, cache.DocumentsKey(weddingID))
	if err != nil {
		return remote.OrderingError(remote.LogError(ctx, "document.order", err))
	}
	return nil
}

func (r *DocumentRemoteRepository) UpdatePinned(ctx context.Context, weddingID string, id string, pinned bool) (*domain.Document, error) {
	row, err := supabase.UpdateOne[remoteschema.Document](ctx, r.client, remoteschema.TableDocuments, byRow(weddingID, id), map[string]any{"pinned": pinned})
	r.cache.Invalidate(ctx, cache.DocumentsKey(weddingID))
	if errors.Is(err, supabase.ErrEmptyResult) {
		return nil, nil
	}
	if err != nil {
		return nil, remote.LogError(ctx, "document.pin", err)
	}
	return row.EtoD(), nil
}

func (r *DocumentRemoteRepository) Delete(ctx context.Context, weddingID string, id string) error {
	if err := r.client.Delete(ctx, remoteschema.TableDocuments, byRow(weddingID, id)); err != nil {
		return remote.LogError(ctx, "document.delete", err)
	}
	r.cache.Invalidate(ctx, cache.DocumentsKey(weddingID))
	return nil
}
