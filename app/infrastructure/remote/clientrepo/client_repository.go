package clientrepo

import (
	"context"
	"errors"

	domain "vowboard.io/planner-gateway/app/domain/client"
	"vowboard.io/planner-gateway/app/infrastructure/cache"
	"vowboard.io/planner-gateway/app/infrastructure/remote"
	"vowboard.io/planner-gateway/app/infrastructure/remote/remoteschema"
	"vowboard.io/planner-gateway/app/infrastructure/supabase"
	"vowboard.io/planner-gateway/app/utils/functional"
	"vowboard.io/planner-gateway/config/environment_variables"
)

// Elevated procedures bypassing per-row policies; they check the caller's
// organizer role themselves.
const (
	rpcGetClients    = "admin_get_clients"
	rpcGetClientByID = "admin_get_client_by_id"
	rpcCreateClient  = "admin_create_client"
	rpcUpdateClient  = "admin_update_client"
	rpcDeleteClient  = "admin_delete_client"
)

type ClientRemoteRepository struct {
	client *supabase.Client
	cache  cache.CacheService
}

func NewClientRemoteRepository(client *supabase.Client, cacheService cache.CacheService) domain.ClientRepository {
	return &ClientRemoteRepository{
		client: client,
		cache:  cacheService,
	}
}

func (r *ClientRemoteRepository) FindAll(ctx context.Context) ([]*domain.Client, error) {
	rows, err := remote.ReadThrough(ctx, r.cache, cache.ClientsKey, environment_variables.EnvironmentVariables.CLIENTS_CACHE_TTL,
		func(ctx context.Context) ([]remoteschema.Client, error) {
			return supabase.RPCMany[remoteschema.Client](ctx, r.client, rpcGetClients, nil)
		})
	if err != nil {
		return nil, err
	}
	return functional.Map(rows, func(row remoteschema.Client) *domain.Client { return row.EtoD() }), nil
}

func (r *ClientRemoteRepository) FindByID(ctx context.Context, id string) (*domain.Client, error) {
	var cached remoteschema.Client
	if r.cache.Get(ctx, cache.ClientKey(id), &cached) {
		return cached.EtoD(), nil
	}
	row, err := supabase.RPCOne[remoteschema.Client](ctx, r.client, rpcGetClientByID, map[string]any{"p_client_id": id})
	if errors.Is(err, supabase.ErrEmptyResult) || supabase.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, remote.LogError(ctx, "client.find", err)
	}
	r.cache.Set(ctx, cache.ClientKey(id), row, environment_variables.EnvironmentVariables.CLIENTS_CACHE_TTL)
	return row.EtoD(), nil
}

func clientParams(c *domain.Client) map[string]any {
	return map[string]any{
		"p_full_name":    c.FullName,
		"p_email":        c.Email,
		"p_phone":        c.Phone,
		"p_partner_name": c.PartnerName,
	}
}

func (r *ClientRemoteRepository) Create(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	row, err := supabase.RPCOne[remoteschema.Client](ctx, r.client, rpcCreateClient, clientParams(c))
	if err != nil {
		return nil, remote.LogError(ctx, "client.create", err)
	}
	r.cache.Invalidate(ctx, cache.ClientsKey)
	return row.EtoD(), nil
}

func (r *ClientRemoteRepository) Update(ctx context.Context, id string, patch domain.ClientPatch) (*domain.Client, error) {
	params := map[string]any{
		"p_client_id":    id,
		"p_full_name":    patch.FullName,
		"p_email":        patch.Email,
		"p_phone":        patch.Phone,
		"p_partner_name": patch.PartnerName,
	}
	row, err := supabase.RPCOne[remoteschema.Client](ctx, r.client, rpcUpdateClient, params)
	r.cache.Invalidate(ctx, cache.ClientsKey, cache.ClientKey(id))
	if errors.Is(err, supabase.ErrEmptyResult) {
		return nil, nil
	}
	if err != nil {
		return nil, remote.LogError(ctx, "client.update", err)
	}
	return row.EtoD(), nil
}

func (r *ClientRemoteRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.client.RPC(ctx, rpcDeleteClient, map[string]any{"p_client_id": id}); err != nil {
		return remote.LogError(ctx, "client.delete", err)
	}
	r.cache.Invalidate(ctx, cache.ClientsKey, cache.ClientKey(id), cache.WeddingsByClientKey(id))
	return nil
}
