package config

import (
	"time"

	"os"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken  string
	MerchantToken  string
	PublicBaseURL  string
	HTTPAddr       string
	DataDir        string
	JarsFile       string
	EventsFile     string
	JarAPIURL      string
	InvoiceAPIURL  string
	ReservationTTL time.Duration
	SweepInterval  time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, errors.New("TELEGRAM_BOT_TOKEN is required")
	}

	reservationTTL, _ := time.ParseDuration(os.Getenv("RESERVATION_TTL"))
	if reservationTTL == 0 {
		reservationTTL = 12 * time.Hour
	}
	sweepInterval, _ := time.ParseDuration(os.Getenv("SWEEP_INTERVAL"))
	if sweepInterval == 0 {
		sweepInterval = 10 * time.Minute
	}

	return &Config{
		TelegramToken:  token,
		MerchantToken:  os.Getenv("MONOBANK_MERCHANT_TOKEN"),
		PublicBaseURL:  getenv("PUBLIC_BASE_URL", "http://localhost:3000"),
		HTTPAddr:       getenv("HTTP_ADDR", ":3000"),
		DataDir:        getenv("DATA_DIR", "data"),
		JarsFile:       getenv("JARS_FILE", "jars.json"),
		EventsFile:     os.Getenv("EVENTS_FILE"),
		JarAPIURL:      getenv("JAR_API_URL", "https://send.monobank.ua/api/handler"),
		InvoiceAPIURL:  getenv("INVOICE_API_URL", "https://api.monobank.ua/api/merchant/invoice/create"),
		ReservationTTL: reservationTTL,
		SweepInterval:  sweepInterval,
	}, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
