//go:build wireinject

package main

import (
	"github.com/google/wire"
	"vowboard.io/planner-gateway/app/domain"
	"vowboard.io/planner-gateway/app/infrastructure"
	"vowboard.io/planner-gateway/app/infrastructure/database/repository"
	"vowboard.io/planner-gateway/app/interfaces/http"
	"vowboard.io/planner-gateway/app/interfaces/http/routes"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		infrastructure.InfrastructureProvider,
		repository.RepositoryProvider,
		domain.ServiceProvider,
		routes.RouteProvider,
		http.NewHttpServer,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
