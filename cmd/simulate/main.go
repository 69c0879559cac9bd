// Command simulate drives the core services in-process with a shuffled
// sequence of randomized requests, the same traffic shape the deployed
// backend sees, and logs each one with the status code the HTTP layer would
// have returned.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/cphbikes/bikeshare-backend/internal/adapter/audit"
	"github.com/cphbikes/bikeshare-backend/internal/adapter/extsim"
	"github.com/cphbikes/bikeshare-backend/internal/adapter/logger"
	"github.com/cphbikes/bikeshare-backend/internal/adapter/memory"
	"github.com/cphbikes/bikeshare-backend/internal/adapter/prometheus"
	"github.com/cphbikes/bikeshare-backend/internal/config"
	"github.com/cphbikes/bikeshare-backend/internal/core/domain"
	"github.com/cphbikes/bikeshare-backend/internal/core/services"
	"github.com/cphbikes/bikeshare-backend/internal/correlation"

	"github.com/go-playground/validator/v10"
)

const sequenceLength = 30

type route struct {
	method string
	path   string
}

var routes = map[string]route{
	"get":       {http.MethodGet, "/bikes"},
	"reserve":   {http.MethodPost, "/reservations"},
	"start":     {http.MethodPost, "/rentals/start"},
	"end":       {http.MethodPost, "/rentals/end"},
	"login":     {http.MethodPost, "/auth/login"},
	"inventory": {http.MethodPost, "/admin/inventory"},
}

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	loggerAdapter := logger.NewLoggerAdapter(cfg.App.Env)
	auditEmitter := audit.NewEmitter()
	metrics := prometheus.NewPrometheusAdapter()
	validate := validator.New()

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

	payment := extsim.NewSimulator("payment",
		cfg.Sim.PaymentMinLatency, cfg.Sim.PaymentMaxLatency, cfg.Sim.PaymentFailureRate, nil)
	verifier := extsim.NewSimulator("verification",
		cfg.Sim.VerifyMinLatency, cfg.Sim.VerifyMaxLatency, cfg.Sim.VerifyFailureRate, nil)

	fleetService := services.NewFleetService(
		bikeStore, userStore, loggerAdapter, auditEmitter, metrics, validate, cfg.Inventory.LowThreshold)
	reservationService := services.NewReservationService(
		bikeStore, reservationStore, payment, loggerAdapter, auditEmitter, metrics, validate, cfg.Sim.PaymentSlowThreshold)
	rentalService := services.NewRentalService(
		bikeStore, reservationStore, rentalStore, verifier, loggerAdapter, auditEmitter, metrics, validate, cfg.Billing.HourlyRate)
	authService := services.NewAuthService(userStore, loggerAdapter, auditEmitter, validate)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	// every operation at least once, then pad and shuffle
	sequence := make([]string, 0, sequenceLength)
	for op := range routes {
		sequence = append(sequence, op)
	}
	for len(sequence) < sequenceLength {
		sequence = append(sequence, pick(rng, sequence[:len(routes)]))
	}
	rng.Shuffle(len(sequence), func(i, j int) {
		sequence[i], sequence[j] = sequence[j], sequence[i]
	})

	loggerAdapter.Info("Simulation started", map[string]interface{}{
		"operations": len(sequence),
	})

	var reservations []string
	var rentals []string

	for _, op := range sequence {
		cid := correlation.NewID()
		ctx := correlation.WithID(context.Background(), cid)
		ip := fmt.Sprintf("192.168.0.%d", rng.Intn(252)+2)

		start := time.Now()
		status := 0

		switch op {
		case "get":
			_, err := fleetService.ListAvailable(ctx)
			status = statusFor(err, http.StatusOK)

		case "reserve":
			available, err := fleetService.ListAvailable(ctx)
			if err != nil || len(available) == 0 {
				continue
			}
			bike := available[rng.Intn(len(available))]
			res, err := reservationService.Reserve(ctx, domain.ReserveRequest{
				UserID: "u123",
				BikeID: bike.ID,
			}, ip)
			status = statusFor(err, http.StatusCreated)
			if err == nil {
				reservations = append(reservations, res.ID)
			}

		case "start":
			if len(reservations) == 0 {
				continue
			}
			rid := reservations[rng.Intn(len(reservations))]
			rental, err := rentalService.Start(ctx, domain.StartRentalRequest{
				UserID:        "u123",
				ReservationID: rid,
			}, ip)
			status = statusFor(err, http.StatusCreated)
			if err == nil {
				rentals = append(rentals, rental.ID)
			}

		case "end":
			if len(rentals) == 0 {
				continue
			}
			rentID := rentals[rng.Intn(len(rentals))]
			_, err := rentalService.End(ctx, domain.EndRentalRequest{
				UserID:   "u123",
				RentalID: rentID,
			}, ip)
			status = statusFor(err, http.StatusOK)

		case "login":
			req := domain.LoginRequest{UserID: "u123", Password: "password"}
			if rng.Float64() >= 0.8 {
				req = domain.LoginRequest{UserID: "unknown", Password: "bad"}
			}
			if _, ok := authService.Login(ctx, req, ip); ok {
				status = http.StatusOK
			} else {
				status = http.StatusBadRequest
			}

		case "inventory":
			delta := rng.Intn(3) + 1
			if rng.Intn(2) == 0 {
				delta = -delta
			}
			_, err := fleetService.AdjustInventory(ctx, domain.InventoryUpdateRequest{
				AdminID: "admin1",
				Delta:   delta,
			}, ip)
			status = statusFor(err, http.StatusOK)
		}

		r := routes[op]
		elapsed := time.Since(start)
		metrics.RecordRequest(r.method, r.path, status, elapsed)
		loggerAdapter.Info("Request handled", map[string]interface{}{
			"method":         r.method,
			"path":           r.path,
			"status":         status,
			"elapsed_ms":     elapsed.Milliseconds(),
			"correlation_id": cid,
		})

		time.Sleep(time.Duration(50+rng.Intn(150)) * time.Millisecond)
	}

	loggerAdapter.Info("Simulation finished", map[string]interface{}{
		"reservations_created": len(reservations),
		"rentals_created":      len(rentals),
	})
}

func pick(rng *rand.Rand, ops []string) string {
	return ops[rng.Intn(len(ops))]
}

// statusFor mirrors the HTTP layer's outcome mapping: coded domain errors are
// expected rejections, anything else is internal.
func statusFor(err error, success int) int {
	if err == nil {
		return success
	}
	if domain.Code(err) != "" {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
