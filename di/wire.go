//go:build wireinject
// +build wireinject

package di

import (
	"pomade/config"
	"pomade/infras/directory"
	"pomade/infras/kafka"
	"pomade/infras/otel"
	"pomade/infras/postgres"
	"pomade/infras/redis"
	"pomade/shared/cache"
	"pomade/transport/http"
	"pomade/transport/http/middleware"
	"pomade/transport/http/router"

	"github.com/google/wire"

	appointmentRepository "pomade/internal/domains/appointment/repository"
	appointmentService "pomade/internal/domains/appointment/service"
	slotService "pomade/internal/domains/slot/service"
	userRepository "pomade/internal/domains/user/repository"
	userService "pomade/internal/domains/user/service"

	appointmentHandler "pomade/internal/handlers/appointment"
	slotsHandler "pomade/internal/handlers/slots"
	userHandler "pomade/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	kafka.New,
	directory.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var appointmentDomain = wire.NewSet(
	appointmentRepository.New,
	appointmentRepository.NewDeletion,
	appointmentService.New,
)

var slotDomain = wire.NewSet(
	slotService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var domains = wire.NewSet(
	appointmentDomain,
	slotDomain,
	userDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	slotsHandler.New,
	appointmentHandler.New,
	userHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
