package domain

import (
	"github.com/google/wire"
	"vowboard.io/planner-gateway/app/domain/activitylog"
	"vowboard.io/planner-gateway/app/domain/auth"
	"vowboard.io/planner-gateway/app/domain/client"
	"vowboard.io/planner-gateway/app/domain/cron"
	"vowboard.io/planner-gateway/app/domain/document"
	"vowboard.io/planner-gateway/app/domain/healthcheck"
	"vowboard.io/planner-gateway/app/domain/preference"
	"vowboard.io/planner-gateway/app/domain/presentation"
	"vowboard.io/planner-gateway/app/domain/profile"
	"vowboard.io/planner-gateway/app/domain/schema"
	"vowboard.io/planner-gateway/app/domain/task"
	"vowboard.io/planner-gateway/app/domain/taskgroup"
	"vowboard.io/planner-gateway/app/domain/viewstate"
	"vowboard.io/planner-gateway/app/domain/wedding"
	"vowboard.io/planner-gateway/app/infrastructure/cache"
	"vowboard.io/planner-gateway/app/infrastructure/supabase"
	"vowboard.io/planner-gateway/config/environment_variables"
)

func ProvideNoteSaver(weddings *wedding.WeddingService, local preference.PreferenceRepository) *preference.NoteSaver {
	return preference.NewNoteSaver(weddings, local, environment_variables.EnvironmentVariables.NOTES_DEBOUNCE)
}

func ProvideScrollKeeper(cacheService cache.CacheService) *viewstate.ScrollKeeper {
	return viewstate.NewScrollKeeper(cacheService, environment_variables.EnvironmentVariables.SCROLL_STATE_TTL, cache.SystemClock{})
}

var ServiceProvider = wire.NewSet(
	schema.NewCapabilityService,
	activitylog.NewService,
	profile.NewService,
	auth.NewAuthService,
	wire.Bind(new(auth.SessionProvider), new(*supabase.Client)),
	client.NewService,
	wedding.NewService,
	task.NewBoardService,
	task.NewService,
	wire.Bind(new(taskgroup.TaskInvalidator), new(*task.BoardService)),
	taskgroup.NewService,
	document.NewService,
	presentation.NewService,
	preference.NewService,
	ProvideNoteSaver,
	ProvideScrollKeeper,
	cron.NewService,
	healthcheck.NewService,
)
