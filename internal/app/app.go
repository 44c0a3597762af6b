package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"budget-app-go/internal/config"
	"budget-app-go/internal/db"
	budgetdomain "budget-app-go/internal/domain/budget"
	circlesdomain "budget-app-go/internal/domain/circles"
	demodomain "budget-app-go/internal/domain/demo"
	userdomain "budget-app-go/internal/domain/user"
	"budget-app-go/internal/events"
	"budget-app-go/internal/repository/inmemory"
	budgetstore "budget-app-go/internal/repository/sqlstore/budget"
	circlesstore "budget-app-go/internal/repository/sqlstore/circles"
	demostore "budget-app-go/internal/repository/sqlstore/demo"
	userstore "budget-app-go/internal/repository/sqlstore/user"
	"budget-app-go/internal/transport/httpserver"
	"budget-app-go/internal/transport/httpserver/handler"
	"budget-app-go/internal/transport/httpserver/middleware"
	"budget-app-go/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	log        logger.Logger
	db         *gorm.DB
	publisher  events.Publisher
	httpServer *http.Server

	Users   *userdomain.Service
	Circles *circlesdomain.Service
	Budget  *budgetdomain.Service
	Demo    *demodomain.Service
}

// Option adjusts services after they are built. Used by tests to pin the
// clock or lower the bcrypt cost.
type Option func(*options)

type options struct {
	now      func() time.Time
	hashCost int
}

func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func WithHashCost(cost int) Option {
	return func(o *options) {
		o.hashCost = cost
	}
}

// New wires stores, caches and services over an already migrated database.
func New(cfg config.Config, log logger.Logger, opts ...Option) (*App, error) {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	log.Info("app: initializing database", "driver", cfg.DB.Driver)
	dbConn, err := db.Open(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	publisher, err := events.New(cfg.AMQP.URL, cfg.AMQP.Exchange, log)
	if err != nil {
		_ = db.Close(dbConn)
		return nil, err
	}

	var userOpts []userdomain.Option
	if o.hashCost > 0 {
		userOpts = append(userOpts, userdomain.WithHashCost(o.hashCost))
	}
	loc := cfg.Location()

	users := userdomain.NewService(userstore.New(dbConn), userOpts...)
	budget := budgetdomain.NewService(budgetstore.New(dbConn)).
		WithCache(inmemory.NewInMemoryChoicesCache(), cfg.Cache.CategoriesTTL).
		WithPublisher(publisher, log).
		WithClock(o.now, loc)
	circles := circlesdomain.NewService(circlesstore.New(dbConn)).
		WithCache(inmemory.NewInMemoryCirclesCache(), cfg.Cache.CategoriesTTL).
		WithInvalidator(budget)
	demo := demodomain.NewService(demostore.New(dbConn), log).
		WithClock(o.now, loc).
		WithInvalidator(budget, circles)
	if cfg.Demo.CSVPath != "" {
		demo = demo.WithTemplateFile(cfg.Demo.CSVPath)
	}

	a := &App{
		cfg:       cfg,
		log:       log,
		db:        dbConn,
		publisher: publisher,
		Users:     users,
		Circles:   circles,
		Budget:    budget,
		Demo:      demo,
	}

	log.Info("app: initializing router")
	views, err := handler.NewRenderer()
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	sessions := middleware.NewSessions(cfg.Session, users, log)
	handlers := handler.New(cfg, handler.Deps{
		Users:    users,
		Circles:  circles,
		Budget:   budget,
		Demo:     demo,
		Sessions: sessions,
		Ping:     a.ping,
	}, views, log)
	router, err := httpserver.NewRouter(handlers, log)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.httpServer = httpserver.New(cfg, router, log)

	return a, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

// EnsureDemoUser creates the configured demo account, or resets its
// password, when the demo is enabled.
func (a *App) EnsureDemoUser(ctx context.Context) error {
	if !a.cfg.Demo.Enabled {
		return nil
	}
	user, created, err := a.Users.EnsureUser(ctx, a.cfg.Demo.Username, a.cfg.Demo.Password)
	if err != nil {
		return fmt.Errorf("ensure demo user: %w", err)
	}
	a.log.Info("app: demo user ready", "user_id", user.ID, "created", created)
	return nil
}

// ResetDemo reseeds the demo account outside a login.
func (a *App) ResetDemo(ctx context.Context) (*demodomain.Report, error) {
	if !a.cfg.Demo.Enabled {
		return nil, errors.New("demo is disabled")
	}
	user, err := a.Users.GetByUsername(ctx, a.cfg.Demo.Username)
	if err != nil {
		return nil, fmt.Errorf("find demo user: %w", err)
	}
	return a.Demo.Reset(ctx, user.ID)
}

// CreateUser registers an account with its Personal circle.
func (a *App) CreateUser(ctx context.Context, input userdomain.RegisterInput) (*userdomain.User, error) {
	user, err := a.Users.Register(ctx, input)
	if err != nil {
		return nil, err
	}
	if _, err := a.Circles.SetupPersonalSpace(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("setup personal space: %w", err)
	}
	return user, nil
}

func (a *App) ping(ctx context.Context) error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (a *App) Close() error {
	var errs []error
	if a.publisher != nil {
		errs = append(errs, a.publisher.Close())
	}
	if a.db != nil {
		errs = append(errs, db.Close(a.db))
	}
	return errors.Join(errs...)
}
