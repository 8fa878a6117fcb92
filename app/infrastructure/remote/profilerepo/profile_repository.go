package profilerepo

import (
	"context"

	domain "vowboard.io/planner-gateway/app/domain/profile"
	"vowboard.io/planner-gateway/app/infrastructure/cache"
	"vowboard.io/planner-gateway/app/infrastructure/remote"
	"vowboard.io/planner-gateway/app/infrastructure/remote/remoteschema"
	"vowboard.io/planner-gateway/app/infrastructure/supabase"
	"vowboard.io/planner-gateway/config/environment_variables"
)

type ProfileRemoteRepository struct {
	client *supabase.Client
	cache  cache.CacheService
}

func NewProfileRemoteRepository(client *supabase.Client, cacheService cache.CacheService) domain.ProfileRepository {
	return &ProfileRemoteRepository{
		client: client,
		cache:  cacheService,
	}
}

func (r *ProfileRemoteRepository) FindByID(ctx context.Context, id string) (*domain.Profile, error) {
	var cached remoteschema.Profile
	if r.cache.Get(ctx, cache.ProfileKey(id), &cached) {
		return cached.EtoD(), nil
	}
	row, err := supabase.SelectOne[remoteschema.Profile](ctx, r.client, remoteschema.TableProfiles, supabase.NewQuery().Eq("id", id))
	if err != nil {
		return nil, remote.LogError(ctx, "profile.find", err)
	}
	if row == nil {
		return nil, nil
	}
	r.cache.Set(ctx, cache.ProfileKey(id), row, environment_variables.EnvironmentVariables.PROFILES_CACHE_TTL)
	return row.EtoD(), nil
}
