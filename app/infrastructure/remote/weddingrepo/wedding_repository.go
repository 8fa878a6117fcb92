package weddingrepo

import (
	"context"
	"errors"

	domain "vowboard.io/planner-gateway/app/domain/wedding"
	"vowboard.io/planner-gateway/app/infrastructure/cache"
	"vowboard.io/planner-gateway/app/infrastructure/remote"
	"vowboard.io/planner-gateway/app/infrastructure/remote/remoteschema"
	"vowboard.io/planner-gateway/app/infrastructure/supabase"
	"vowboard.io/planner-gateway/app/utils/functional"
	"vowboard.io/planner-gateway/config/environment_variables"
)

// WeddingRemoteRepository caches weddings per client and per id, shared by
// every caller allowed into that client.
type WeddingRemoteRepository struct {
	client *supabase.Client
	cache  cache.CacheService
}

func NewWeddingRemoteRepository(client *supabase.Client, cacheService cache.CacheService) domain.WeddingRepository {
	return &WeddingRemoteRepository{
		client: client,
		cache:  cacheService,
	}
}

func (r *WeddingRemoteRepository) FindByClient(ctx context.Context, clientID string) ([]*domain.Wedding, error) {
	rows, err := remote.ReadThrough(ctx, r.cache, cache.WeddingsByClientKey(clientID), environment_variables.EnvironmentVariables.WEDDINGS_CACHE_TTL,
		func(ctx context.Context) ([]remoteschema.Wedding, error) {
			q := supabase.NewQuery().Eq("client_id", clientID).Order("wedding_date", true, true)
			return supabase.SelectMany[remoteschema.Wedding](ctx, r.client, remoteschema.TableWeddings, q)
		})
	if err != nil {
		return nil, err
	}
	return functional.Map(rows, func(row remoteschema.Wedding) *domain.Wedding { return row.EtoD() }), nil
}

func (r *WeddingRemoteRepository) FindByID(ctx context.Context, id string) (*domain.Wedding, error) {
	// a cached null would hide a wedding created later, so only hits are cached
	var cached remoteschema.Wedding
	if r.cache.Get(ctx, cache.WeddingByIDKey(id), &cached) {
		return cached.EtoD(), nil
	}
	row, err := supabase.SelectOne[remoteschema.Wedding](ctx, r.client, remoteschema.TableWeddings, supabase.NewQuery().Eq("id", id))
	if err != nil {
		return nil, remote.LogError(ctx, "wedding.find", err)
	}
	if row == nil {
		return nil, nil
	}
	r.cache.Set(ctx, cache.WeddingByIDKey(id), row, environment_variables.EnvironmentVariables.WEDDINGS_CACHE_TTL)
	return row.EtoD(), nil
}

func (r *WeddingRemoteRepository) invalidate(ctx context.Context, row *remoteschema.Wedding) {
	r.cache.Invalidate(ctx, cache.WeddingByIDKey(row.ID), cache.WeddingsByClientKey(row.ClientID))
}

func (r *WeddingRemoteRepository) Create(ctx context.Context, w *domain.Wedding) (*domain.Wedding, error) {
	row, err := supabase.InsertOne[remoteschema.Wedding](ctx, r.client, remoteschema.TableWeddings, remoteschema.NewWeddingInsert(w))
	if err != nil {
		return nil, remote.LogError(ctx, "wedding.create", err)
	}
	r.invalidate(ctx, row)
	return row.EtoD(), nil
}

func (r *WeddingRemoteRepository) Update(ctx context.Context, id string, patch domain.WeddingPatch) (*domain.Wedding, error) {
	row, err := supabase.UpdateOne[remoteschema.Wedding](ctx, r.client, remoteschema.TableWeddings, supabase.NewQuery().Eq("id", id), remoteschema.NewWeddingPatch(patch))
	if errors.Is(err, supabase.ErrEmptyResult) {
		r.cache.Invalidate(ctx, cache.WeddingByIDKey(id))
		return nil, nil
	}
	if err != nil {
		return nil, remote.LogError(ctx, "wedding.update", err)
	}
	r.invalidate(ctx, row)
	return row.EtoD(), nil
}

func (r *WeddingRemoteRepository) Delete(ctx context.Context, id string) error {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.client.Delete(ctx, remoteschema.TableWeddings, supabase.NewQuery().Eq("id", id)); err != nil {
		return remote.LogError(ctx, "wedding.delete", err)
	}
	r.cache.Invalidate(ctx,
		cache.WeddingByIDKey(id),
		cache.TasksKey(id),
		cache.TaskGroupsKey(id),
		cache.DocumentsKey(id),
	)
	if existing != nil {
		r.cache.Invalidate(ctx, cache.WeddingsByClientKey(existing.ClientID))
	}
	return nil
}
