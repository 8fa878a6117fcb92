package sliderepo

import (
	"context"

	domain "vowboard.io/planner-gateway/app/domain/presentation"
	"vowboard.io/planner-gateway/app/infrastructure/cache"
	"vowboard.io/planner-gateway/app/infrastructure/remote"
	"vowboard.io/planner-gateway/app/infrastructure/remote/remoteschema"
	"vowboard.io/planner-gateway/app/infrastructure/supabase"
	"vowboard.io/planner-gateway/app/utils/functional"
	"vowboard.io/planner-gateway/config/environment_variables"
)

type SlideRemoteRepository struct {
	client *supabase.Client
	cache  cache.CacheService
}

func NewSlideRemoteRepository(client *supabase.Client, cacheService cache.CacheService) domain.SlideRepository {
	return &SlideRemoteRepository{
		client: client,
		cache:  cacheService,
	}
}

func (r *SlideRemoteRepository) FindByDeck(ctx context.Context, deckKey string) ([]*domain.Slide, error) {
	rows, err := remote.ReadThrough(ctx, r.cache, cache.SlidesKey(deckKey), environment_variables.EnvironmentVariables.SLIDES_CACHE_TTL,
		func(ctx context.Context) ([]remoteschema.Slide, error) {
			q := supabase.NewQuery().Eq("deck_key", deckKey).Order("position", true, false)
			return supabase.SelectMany[remoteschema.Slide](ctx, r.client, remoteschema.TableSlides, q)
		})
	if err != nil {
		return nil, err
	}
	return functional.Map(rows, func(row remoteschema.Slide) *domain.Slide { return row.EtoD() }), nil
}
