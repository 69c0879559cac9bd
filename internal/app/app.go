package app

import (
	"context"
	"fmt"

	"github.com/cphbikes/bikeshare-backend/internal/adapter/audit"
	"github.com/cphbikes/bikeshare-backend/internal/adapter/extsim"
	httphandler "github.com/cphbikes/bikeshare-backend/internal/adapter/handler/http"
	"github.com/cphbikes/bikeshare-backend/internal/adapter/logger"
	"github.com/cphbikes/bikeshare-backend/internal/adapter/memory"
	"github.com/cphbikes/bikeshare-backend/internal/adapter/prometheus"
	"github.com/cphbikes/bikeshare-backend/internal/config"
	"github.com/cphbikes/bikeshare-backend/internal/core/domain"
	"github.com/cphbikes/bikeshare-backend/internal/core/ports"
	"github.com/cphbikes/bikeshare-backend/internal/core/services"

	"github.com/go-playground/validator/v10"
)

type App struct {
	Config     *config.Container
	Logger     ports.LoggerPort
	HTTPRouter *httphandler.Router
	Sweeper    *services.Sweeper

	sweepCancel context.CancelFunc
}

func New(ctx context.Context, cfg *config.Container) (*App, error) {
	// Set logger
	loggerAdapter := logger.NewLoggerAdapter(cfg.App.Env)
	loggerAdapter.Info("Starting the application", map[string]interface{}{
		"app": cfg.App.Name,
		"env": cfg.App.Env,
	})

	// Audit trail
	auditEmitter := audit.NewEmitter()

	// Observability
	metrics := prometheus.NewPrometheusAdapter()

	// Validate
	validate := validator.New()

	// Stores
	bikeStore := memory.NewBikeStore(
		domain.Bike{ID: "b-42", Available: true},
		domain.Bike{ID: "b-43", Available: true},
		domain.Bike{ID: "b-44", Available: true},
	)
	reservationStore := memory.NewReservationStore()
	rentalStore := memory.NewRentalStore()
	userStore := memory.NewUserStore(
		domain.User{ID: "u123", Password: "password", Role: domain.AppUser},
		domain.User{ID: "admin1", Password: "adminpass", Role: domain.Admin},
	)

	// Simulated downstream collaborators
	payment := extsim.NewSimulator("payment",
		cfg.Sim.PaymentMinLatency, cfg.Sim.PaymentMaxLatency, cfg.Sim.PaymentFailureRate, nil)
	verifier := extsim.NewSimulator("verification",
		cfg.Sim.VerifyMinLatency, cfg.Sim.VerifyMaxLatency, cfg.Sim.VerifyFailureRate, nil)

	// Services
	fleetService := services.NewFleetService(
		bikeStore, userStore, loggerAdapter, auditEmitter, metrics, validate, cfg.Inventory.LowThreshold)
	reservationService := services.NewReservationService(
		bikeStore, reservationStore, payment, loggerAdapter, auditEmitter, metrics, validate, cfg.Sim.PaymentSlowThreshold)
	rentalService := services.NewRentalService(
		bikeStore, reservationStore, rentalStore, verifier, loggerAdapter, auditEmitter, metrics, validate, cfg.Billing.HourlyRate)
	authService := services.NewAuthService(userStore, loggerAdapter, auditEmitter, validate)
	sweeper := services.NewSweeper(
		reservationStore, bikeStore, loggerAdapter, cfg.Reservations.TTL, cfg.Reservations.SweepInterval)

	// HTTP Handlers
	tokenService := httphandler.NewJWTTokenService(cfg.Token.Secret, cfg.Token.Duration, loggerAdapter)
	authHandler := httphandler.NewAuthHandler(authService, tokenService, loggerAdapter)
	bikeHandler := httphandler.NewBikeHandler(fleetService, loggerAdapter)
	reservationHandler := httphandler.NewReservationHandler(reservationService, loggerAdapter)
	rentalHandler := httphandler.NewRentalHandler(rentalService, loggerAdapter)
	adminHandler := httphandler.NewAdminHandler(fleetService, loggerAdapter)

	// Init HTTP router
	router, err := httphandler.NewRouter(
		cfg.HTTP,
		tokenService,
		loggerAdapter,
		metrics,
		authHandler,
		bikeHandler,
		reservationHandler,
		rentalHandler,
		adminHandler,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize router: %w", err)
	}

	return &App{
		Config:     cfg,
		Logger:     loggerAdapter,
		HTTPRouter: router,
		Sweeper:    sweeper,
	}, nil
}

// Runs all services
func (a *App) Run() error {
	sweepCtx, cancel := context.WithCancel(context.Background())
	a.sweepCancel = cancel
	go a.Sweeper.Run(sweepCtx)

	listenAddr := fmt.Sprintf("%s:%s", a.Config.HTTP.URL, a.Config.HTTP.Port)
	a.Logger.Info("Starting HTTP server", map[string]interface{}{
		"addr": listenAddr,
	})

	go func() {
		if err := a.HTTPRouter.Serve(listenAddr); err != nil {
			a.Logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()
	return nil
}

// Stops all services
func (a *App) Stop(ctx context.Context) error {
	a.Logger.Info("Shutting down gracefully...", nil)

	if a.sweepCancel != nil {
		a.sweepCancel()
	}

	a.Logger.Info("Application stopped successfully", nil)
	return nil
}
