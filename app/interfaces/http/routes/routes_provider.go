package routes

import (
	"github.com/google/wire"
	"vowboard.io/planner-gateway/app/interfaces/http/routes/admin"
	v1 "vowboard.io/planner-gateway/app/interfaces/http/routes/v1"
	"vowboard.io/planner-gateway/app/interfaces/http/routes/v1/auth"
	"vowboard.io/planner-gateway/app/interfaces/http/routes/v1/clients"
	"vowboard.io/planner-gateway/app/interfaces/http/routes/v1/preferences"
	"vowboard.io/planner-gateway/app/interfaces/http/routes/v1/presentations"
	"vowboard.io/planner-gateway/app/interfaces/http/routes/v1/viewstate"
	"vowboard.io/planner-gateway/app/interfaces/http/routes/v1/weddings"
)

var RouteProvider = wire.NewSet(
	auth.NewAuthRoute,
	clients.NewClientsRoute,
	weddings.NewWeddingsRoute,
	presentations.NewPresentationsRoute,
	preferences.NewPreferencesRoute,
	viewstate.NewViewStateRoute,
	v1.NewV1Route,
	admin.NewAdminRoute,
)
