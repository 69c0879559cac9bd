package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type (
	Container struct {
		App          *App
		Token        *Token
		HTTP         *HTTP
		Billing      *Billing
		Inventory    *Inventory
		Reservations *Reservations
		Sim          *Sim
	}

	App struct {
		Name string
		Env  string
	}

	Token struct {
		Secret   string
		Duration time.Duration
	}

	HTTP struct {
		Env            string
		Port           string
		AllowedOrigins string
		URL            string
	}

	Billing struct {
		HourlyRate float64
	}

	Inventory struct {
		LowThreshold int
	}

	Reservations struct {
		TTL           time.Duration
		SweepInterval time.Duration
	}

	Sim struct {
		PaymentMinLatency    time.Duration
		PaymentMaxLatency    time.Duration
		PaymentFailureRate   float64
		PaymentSlowThreshold time.Duration
		VerifyMinLatency     time.Duration
		VerifyMaxLatency     time.Duration
		VerifyFailureRate    float64
	}
)

func New() (*Container, error) {
	if os.Getenv("APP_ENV") != "production" {
		// .env is optional outside production
		_ = godotenv.Load()
	}

	app := &App{
		Name: getenv("APP_NAME", "bikeshare-backend"),
		Env:  getenv("APP_ENV", "development"),
	}

	token := &Token{
		Secret:   getenv("TOKEN_SECRET", "local_dev_secret"),
		Duration: getenvDuration("TOKEN_DURATION", 24*time.Hour),
	}

	http := &HTTP{
		Port:           getenv("HTTP_PORT", "8080"),
		AllowedOrigins: getenv("ALLOWED_ORIGINS", "*"),
		URL:            getenv("HTTP_URL", "0.0.0.0"),
		Env:            app.Env,
	}

	billing := &Billing{
		HourlyRate: getenvFloat("BILLING_HOURLY_RATE", 10.0),
	}

	inventory := &Inventory{
		LowThreshold: getenvInt("INVENTORY_LOW_THRESHOLD", 3),
	}

	reservations := &Reservations{
		TTL:           getenvDuration("RESERVATION_TTL", 15*time.Minute),
		SweepInterval: getenvDuration("RESERVATION_SWEEP_INTERVAL", time.Minute),
	}

	sim := &Sim{
		PaymentMinLatency:    getenvDuration("SIM_PAYMENT_MIN_LATENCY", 50*time.Millisecond),
		PaymentMaxLatency:    getenvDuration("SIM_PAYMENT_MAX_LATENCY", time.Second),
		PaymentFailureRate:   getenvFloat("SIM_PAYMENT_FAILURE_RATE", 0.1),
		PaymentSlowThreshold: getenvDuration("SIM_PAYMENT_SLOW_THRESHOLD", 500*time.Millisecond),
		VerifyMinLatency:     getenvDuration("SIM_VERIFY_MIN_LATENCY", 50*time.Millisecond),
		VerifyMaxLatency:     getenvDuration("SIM_VERIFY_MAX_LATENCY", 200*time.Millisecond),
		VerifyFailureRate:    getenvFloat("SIM_VERIFY_FAILURE_RATE", 0),
	}

	return &Container{
		App:          app,
		Token:        token,
		HTTP:         http,
		Billing:      billing,
		Inventory:    inventory,
		Reservations: reservations,
		Sim:          sim,
	}, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getenvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
