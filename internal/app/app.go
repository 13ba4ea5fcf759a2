package app

import (
	"context"

	"github.com/aquamarinepk/aqm"
	"github.com/aquamarinepk/aqm/middleware"

	"github.com/brigadeclub/brigade/internal/analytics"
	"github.com/brigadeclub/brigade/internal/costs"
	"github.com/brigadeclub/brigade/internal/events"
	"github.com/brigadeclub/brigade/internal/foodsafety"
	"github.com/brigadeclub/brigade/internal/inventory"
	"github.com/brigadeclub/brigade/internal/kitchen"
	"github.com/brigadeclub/brigade/internal/menu"
	"github.com/brigadeclub/brigade/internal/mongo"
	"github.com/brigadeclub/brigade/internal/orders"
	"github.com/brigadeclub/brigade/internal/staff"
	"github.com/brigadeclub/brigade/internal/tables"
	"github.com/brigadeclub/brigade/pkg"
)

const (
	AppName    = "brigade"
	AppVersion = "0.1.0"
)

// App wires repositories, event plumbing and HTTP handlers into one service.
type App struct {
	config *aqm.Config
	logger aqm.Logger
	micro  *aqm.Micro
}

// repos bundles every repository the handlers depend on. Both store backends
// fill the same set.
type repos struct {
	orders         orders.OrderRepo
	stations       kitchen.StationRepo
	timers         kitchen.TimerRepo
	recipes        menu.RecipeRepo
	items          inventory.ItemRepo
	tables         tables.TableRepo
	reservations   tables.ReservationRepo
	users          staff.UserRepo
	tempLogs       foodsafety.TemperatureLogRepo
	violations     foodsafety.ViolationRepo
	controlPoints  foodsafety.ControlPointRepo
	audits         foodsafety.AuditRepo
	costs          costs.CostRepo
	costCenters    costs.CostCenterRepo
	recipeCosts    costs.RecipeCostRepo
	metrics        analytics.MetricRepo
	orderAnalytics analytics.OrderAnalyticsRepo
	staffAnalytics analytics.StaffAnalyticsRepo
}

func New(config *aqm.Config, logger aqm.Logger) (*App, error) {
	return &App{
		config: config,
		logger: logger,
	}, nil
}

// Initialize sets up all dependencies and components.
func (a *App) Initialize(ctx context.Context) error {
	lifecycles := make([]interface{}, 0)

	r, storeLifecycles, err := a.buildRepos(ctx)
	if err != nil {
		return err
	}
	lifecycles = append(lifecycles, storeLifecycles...)

	natsURL, _ := a.config.GetString("nats.url")
	if natsURL == "" {
		natsURL = "nats://localhost:4222"
	}

	publisher, err := pkg.NewNATSPublisher(natsURL)
	if err != nil {
		return err
	}
	lifecycles = append(lifecycles, aqm.LifecycleHooks{
		OnStop: func(context.Context) error { return publisher.Close() },
	})

	subscriber, err := pkg.NewNATSSubscriber(natsURL, a.logger)
	if err != nil {
		return err
	}
	lifecycles = append(lifecycles, aqm.LifecycleHooks{
		OnStop: func(context.Context) error { return subscriber.Close() },
	})

	orderSubscriber := events.NewOrderStatusSubscriber(subscriber, r.tables, publisher, a.logger)
	lifecycles = append(lifecycles, orderSubscriber)

	recorder := foodsafety.NewRecorder(r.tempLogs, r.violations, publisher, a.logger)
	costReporter := costs.NewReporter(r.costCenters, r.costs, r.recipeCosts)
	analyticsReporter := analytics.NewReporter(r.orderAnalytics, r.staffAnalytics)

	orderHandler := orders.NewHandler(r.orders, publisher, a.config, a.logger)
	kitchenHandler := kitchen.NewHandler(r.stations, r.timers, publisher, a.config, a.logger)
	menuHandler := menu.NewHandler(r.recipes, a.config, a.logger)
	inventoryHandler := inventory.NewHandler(r.items, a.config, a.logger)
	tableHandler := tables.NewHandler(r.tables, r.reservations, publisher, a.config, a.logger)
	staffHandler := staff.NewHandler(r.users, a.config, a.logger)
	foodsafetyHandler := foodsafety.NewHandler(recorder, r.tempLogs, r.violations, r.controlPoints, r.audits, publisher, a.config, a.logger)
	costHandler := costs.NewHandler(r.costs, r.costCenters, r.recipeCosts, costReporter, a.config, a.logger)
	analyticsHandler := analytics.NewHandler(r.metrics, r.orderAnalytics, r.staffAnalytics, analyticsReporter, a.config, a.logger)

	stack := middleware.DefaultStack(middleware.StackOptions{
		Logger:      a.logger,
		DisableCORS: true,
	})
	stack = append(stack, middleware.InternalOnly())

	options := []aqm.Option{
		aqm.WithConfig(a.config),
		aqm.WithLogger(a.logger),
		aqm.WithHTTPMiddleware(stack...),
		aqm.WithHTTPServerModules("web.port",
			orderHandler,
			kitchenHandler,
			menuHandler,
			inventoryHandler,
			tableHandler,
			staffHandler,
			foodsafetyHandler,
			costHandler,
			analyticsHandler,
		),
		aqm.WithLifecycle(lifecycles...),
		aqm.WithHealthChecks(AppName),
	}

	a.micro = aqm.NewMicro(options...)
	return nil
}

// buildRepos selects the store backend. db.storage=fake keeps everything in
// memory for local development; anything else connects to Mongo.
func (a *App) buildRepos(ctx context.Context) (*repos, []interface{}, error) {
	storage, _ := a.config.GetString("db.storage")
	if storage == "fake" {
		a.logger.Info("Using in-memory repositories")
		return &repos{
			orders:         orders.NewFakeOrderRepo(),
			stations:       kitchen.NewFakeStationRepo(),
			timers:         kitchen.NewFakeTimerRepo(),
			recipes:        menu.NewFakeRecipeRepo(),
			items:          inventory.NewFakeItemRepo(),
			tables:         tables.NewFakeTableRepo(),
			reservations:   tables.NewFakeReservationRepo(),
			users:          staff.NewFakeUserRepo(),
			tempLogs:       foodsafety.NewFakeTemperatureLogRepo(),
			violations:     foodsafety.NewFakeViolationRepo(),
			controlPoints:  foodsafety.NewFakeControlPointRepo(),
			audits:         foodsafety.NewFakeAuditRepo(),
			costs:          costs.NewFakeCostRepo(),
			costCenters:    costs.NewFakeCostCenterRepo(),
			recipeCosts:    costs.NewFakeRecipeCostRepo(),
			metrics:        analytics.NewFakeMetricRepo(),
			orderAnalytics: analytics.NewFakeOrderAnalyticsRepo(),
			staffAnalytics: analytics.NewFakeStaffAnalyticsRepo(),
		}, nil, nil
	}

	base := mongo.NewBaseRepo(a.config, a.logger)
	if err := base.Start(ctx); err != nil {
		return nil, nil, err
	}
	db := base.GetDatabase()

	tableRepo := mongo.NewTableRepo(db)
	userRepo := mongo.NewUserRepo(db)
	recipeCostRepo := mongo.NewRecipeCostRepo(db)

	// Unique indexes back the Conflict guarantees; they must exist before
	// the first write lands.
	if err := tableRepo.EnsureIndexes(ctx); err != nil {
		return nil, nil, err
	}
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		return nil, nil, err
	}
	if err := recipeCostRepo.EnsureIndexes(ctx); err != nil {
		return nil, nil, err
	}

	r := &repos{
		orders:         mongo.NewOrderRepo(db, a.logger),
		stations:       mongo.NewStationRepo(db),
		timers:         mongo.NewTimerRepo(db),
		recipes:        mongo.NewRecipeRepo(db),
		items:          mongo.NewItemRepo(db),
		tables:         tableRepo,
		reservations:   mongo.NewReservationRepo(db),
		users:          userRepo,
		tempLogs:       mongo.NewTemperatureLogRepo(db),
		violations:     mongo.NewViolationRepo(db),
		controlPoints:  mongo.NewControlPointRepo(db),
		audits:         mongo.NewAuditRepo(db),
		costs:          mongo.NewCostRepo(db),
		costCenters:    mongo.NewCostCenterRepo(db),
		recipeCosts:    recipeCostRepo,
		metrics:        mongo.NewMetricRepo(db),
		orderAnalytics: mongo.NewOrderAnalyticsRepo(db),
		staffAnalytics: mongo.NewStaffAnalyticsRepo(db),
	}

	lifecycles := []interface{}{aqm.LifecycleHooks{
		OnStop: base.Stop,
	}}
	return r, lifecycles, nil
}

// Run starts the application.
func (a *App) Run(ctx context.Context) error {
	a.logger.Infof("Starting %s(%s)", AppName, AppVersion)
	if err := a.micro.Run(ctx); err != nil {
		return err
	}
	a.logger.Infof("%s(%s) stopped", AppName, AppVersion)
	return nil
}
