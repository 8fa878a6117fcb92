package infrastructure

import (
	"github.com/google/wire"
	"vowboard.io/planner-gateway/app/domain/schema"
	"vowboard.io/planner-gateway/app/infrastructure/cache"
	"vowboard.io/planner-gateway/app/infrastructure/database"
	"vowboard.io/planner-gateway/app/infrastructure/remote/activitylogrepo"
	"vowboard.io/planner-gateway/app/infrastructure/remote/clientrepo"
	"vowboard.io/planner-gateway/app/infrastructure/remote/documentrepo"
	"vowboard.io/planner-gateway/app/infrastructure/remote/profilerepo"
	"vowboard.io/planner-gateway/app/infrastructure/remote/sliderepo"
	"vowboard.io/planner-gateway/app/infrastructure/remote/taskgrouprepo"
	"vowboard.io/planner-gateway/app/infrastructure/remote/taskrepo"
	"vowboard.io/planner-gateway/app/infrastructure/remote/weddingrepo"
	"vowboard.io/planner-gateway/app/infrastructure/supabase"
)

var InfrastructureProvider = wire.NewSet(
	cache.NewCacheService,
	supabase.NewClient,
	wire.Bind(new(schema.ColumnChecker), new(*supabase.Client)),
	database.NewDB,
	clientrepo.NewClientRemoteRepository,
	weddingrepo.NewWeddingRemoteRepository,
	taskrepo.NewTaskRemoteRepository,
	taskgrouprepo.NewTaskGroupRemoteRepository,
	documentrepo.NewDocumentRemoteRepository,
	profilerepo.NewProfileRemoteRepository,
	activitylogrepo.NewActivityLogRemoteRepository,
	sliderepo.NewSlideRemoteRepository,
)
