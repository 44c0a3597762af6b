package handler

import (
	"context"

	"budget-app-go/internal/config"
	budgetdomain "budget-app-go/internal/domain/budget"
	circlesdomain "budget-app-go/internal/domain/circles"
	demodomain "budget-app-go/internal/domain/demo"
	userdomain "budget-app-go/internal/domain/user"
	"budget-app-go/internal/transport/httpserver/middleware"
	"budget-app-go/pkg/logger"
)

type Handlers struct {
	Users    *userdomain.Service
	Circles  *circlesdomain.Service
	Budget   *budgetdomain.Service
	Demo     *demodomain.Service
	Sessions *middleware.Sessions

	ping         func(ctx context.Context) error
	demo         config.DemoConfig
	upcomingDays int
	views        *Renderer
	log          logger.Logger
}

type Deps struct {
	Users    *userdomain.Service
	Circles  *circlesdomain.Service
	Budget   *budgetdomain.Service
	Demo     *demodomain.Service
	Sessions *middleware.Sessions
	// Ping checks the record store for /health. Optional.
	Ping func(ctx context.Context) error
}

func New(cfg config.Config, deps Deps, views *Renderer, log logger.Logger) *Handlers {
	return &Handlers{
		Users:        deps.Users,
		Circles:      deps.Circles,
		Budget:       deps.Budget,
		Demo:         deps.Demo,
		Sessions:     deps.Sessions,
		ping:         deps.Ping,
		demo:         cfg.Demo,
		upcomingDays: cfg.UpcomingDays,
		views:        views,
		log:          log,
	}
}
