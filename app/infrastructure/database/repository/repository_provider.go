package repository

import (
	"github.com/google/wire"
	"vowboard.io/planner-gateway/app/infrastructure/database/repository/preferencerepo"
)

var RepositoryProvider = wire.NewSet(
	preferencerepo.NewPreferenceGormRepository,
)
