package app

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	customersUC "github.com/smartsolutionslab/orange-car-rental/internal/application/usecases/customers"
	"github.com/smartsolutionslab/orange-car-rental/internal/application/usecases/guestbooking"
	reservationsUC "github.com/smartsolutionslab/orange-car-rental/internal/application/usecases/reservations"
	"github.com/smartsolutionslab/orange-car-rental/internal/eventstore/postgres"
	"github.com/smartsolutionslab/orange-car-rental/internal/infrastructure/clients"
	"github.com/smartsolutionslab/orange-car-rental/internal/interfaces/events"
	"github.com/smartsolutionslab/orange-car-rental/internal/interfaces/http"
	"github.com/smartsolutionslab/orange-car-rental/internal/outbox"
	"github.com/smartsolutionslab/orange-car-rental/internal/repository"
)

type Config struct {
	HTTPAddr     string
	PricingURL   string
	CustomersURL string
}

type App struct {
	logger    zerolog.Logger
	router    *message.Router
	forwarder *outbox.Forwarder
	srv       *http.Server
	db        *sqlx.DB
}

// NewApp wires the write side (postgres event store with an embedded
// outbox publisher), the projector (redis streams consumer updating
// the view tables) and the HTTP surface.
func NewApp(
	cfg Config,
	logger zerolog.Logger,
	watermillLogger watermill.LoggerAdapter,
	db *sqlx.DB,
	redisClient *redis.Client,
) (*App, error) {
	store := postgres.NewStore(db, logger,
		postgres.WithTxPublisher(outbox.NewPublisher(watermillLogger)),
	)

	reservationsRepo := repository.NewReservationsRepo(store)
	customersRepo := repository.NewCustomersRepo(store)
	reservationsView := repository.NewReservationsViewRepo(db)
	customersView := repository.NewCustomersViewRepo(db)
	attemptsRepo := repository.NewGuestBookingsRepo(db)

	createReservation := reservationsUC.NewCreateReservationUsecase(reservationsRepo, reservationsView, logger)
	transitionReservation := reservationsUC.NewTransitionReservationUsecase(reservationsRepo, logger)
	registerCustomer := customersUC.NewRegisterCustomerUsecase(customersRepo, logger)
	updateCustomer := customersUC.NewUpdateCustomerUsecase(customersRepo, logger)

	pricingClient := clients.NewPricingClient(cfg.PricingURL)

	// The saga registers the guest through the customers service when
	// one is configured; otherwise it calls the local usecase.
	var registrar guestbooking.CustomerRegistrar = registerCustomer
	if cfg.CustomersURL != "" {
		registrar = clients.NewCustomersClient(cfg.CustomersURL)
	}

	bookAsGuest := guestbooking.NewBookAsGuestUsecase(
		registrar,
		pricingClient,
		createReservation,
		attemptsRepo,
		logger,
	)

	router, err := message.NewRouter(message.RouterConfig{}, watermillLogger)
	if err != nil {
		return nil, fmt.Errorf("create router: %w", err)
	}
	router.AddMiddleware(middleware.Recoverer)
	router.AddMiddleware(events.CorrelationIDMiddleware)
	router.AddMiddleware(events.LoggingMiddleware)
	router.AddMiddleware(middleware.Retry{
		MaxRetries:      10,
		InitialInterval: time.Millisecond * 100,
		MaxInterval:     time.Second,
		Multiplier:      2,
		Logger:          watermillLogger,
	}.Middleware)

	processor, err := events.NewEventProcessor(router, redisClient, watermillLogger)
	if err != nil {
		return nil, fmt.Errorf("create event processor: %w", err)
	}
	handler := events.NewHandler(reservationsView, customersView, logger)
	if err := events.RegisterHandlers(processor, handler); err != nil {
		return nil, fmt.Errorf("register projector handlers: %w", err)
	}

	fwd, err := outbox.NewForwarder(db, redisClient, watermillLogger)
	if err != nil {
		return nil, fmt.Errorf("create outbox forwarder: %w", err)
	}

	srv := http.NewServer(
		cfg.HTTPAddr,
		logger,
		createReservation,
		transitionReservation,
		registerCustomer,
		updateCustomer,
		bookAsGuest,
		reservationsView,
		customersView,
		router.IsRunning,
	)

	return &App{
		logger:    logger,
		router:    router,
		forwarder: fwd,
		srv:       srv,
		db:        db,
	}, nil
}

// Run starts the router, the outbox forwarder and the HTTP server,
// and blocks until ctx is cancelled or one of them fails.
func (a *App) Run(ctx context.Context) error {
	if err := repository.InitializeDBSchema(a.db); err != nil {
		return fmt.Errorf("initialize db schema: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info().Msg("starting router")
		return a.router.Run(ctx)
	})

	g.Go(func() error {
		a.logger.Info().Msg("starting outbox forwarder")
		return a.forwarder.Run(ctx)
	})

	g.Go(func() error {
		<-a.router.Running()
		<-a.forwarder.Running()

		a.logger.Info().Msg("starting http server")
		return a.srv.Start()
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := a.srv.Stop(shutdownCtx); err != nil {
			a.logger.Err(err).Msg("error stopping http server")
			return err
		}
		return nil
	})

	return g.Wait()
}
