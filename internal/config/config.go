package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultOpeningHour     = "8"
	defaultClosingHour     = "24"
	defaultWeekdayRate     = "125"
	defaultWeekendRate     = "175"
	defaultSetupRate       = "50"
	defaultDeposit         = "200"
	defaultWeekendMinHours = "4"

	defaultJWTSecret  = "change-me-jwt-secret"
	defaultJWTTTL     = "24h"
	defaultTokenTTL   = "720h" // management tokens live 30 days
	defaultContractV  = "1"
	defaultListenAddr = ":8080"
)

// Pricing carries the venue's rate card. Rates are whole dollars per hour;
// the calculator converts to cents.
type Pricing struct {
	OpeningHour       int
	ClosingHour       int
	WeekdayRate       int64
	WeekendRate       int64
	ExtraSetupRate    int64
	Deposit           int64
	WeekendMinimumHrs int
}

type Stripe struct {
	SecretKey     string
	WebhookSecret string
	SuccessURL    string
	CancelURL     string
}

type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	AdminTo  string
}

type App struct {
	ListenAddr         string
	DatabaseURL        string
	JWTSecret          string
	JWTTTL             time.Duration
	ManagementTokenTTL time.Duration
	ContractVersion    int
	ContractText       string

	Pricing Pricing
	Stripe  Stripe
	SMTP    SMTP
}

func Load() (*App, error) {
	cfg := &App{}

	cfg.ListenAddr = getEnv("LISTEN_ADDR", defaultListenAddr)
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "venuebook.db"
	}
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	var err error
	if cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL); err != nil {
		return nil, err
	}
	if cfg.ManagementTokenTTL, err = parseDurationEnv("MANAGEMENT_TOKEN_TTL", defaultTokenTTL); err != nil {
		return nil, err
	}
	if cfg.ContractVersion, err = parseIntEnv("CONTRACT_VERSION", defaultContractV); err != nil {
		return nil, err
	}
	cfg.ContractText = os.Getenv("CONTRACT_TEXT")
	if path := os.Getenv("CONTRACT_TEXT_FILE"); cfg.ContractText == "" && path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read CONTRACT_TEXT_FILE: %w", err)
		}
		cfg.ContractText = string(raw)
	}

	if cfg.Pricing, err = loadPricing(); err != nil {
		return nil, err
	}

	cfg.Stripe = Stripe{
		SecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		WebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		SuccessURL:    getEnv("STRIPE_SUCCESS_URL", "http://localhost:3000/booking/success"),
		CancelURL:     getEnv("STRIPE_CANCEL_URL", "http://localhost:3000/booking/cancelled"),
	}

	smtpPort, err := parseIntEnv("SMTP_PORT", "587")
	if err != nil {
		return nil, err
	}
	cfg.SMTP = SMTP{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     smtpPort,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
		AdminTo:  os.Getenv("ADMIN_NOTIFY_EMAIL"),
	}

	return cfg, nil
}

func loadPricing() (Pricing, error) {
	p := Pricing{}
	fields := []struct {
		dst  *int64
		name string
		def  string
	}{
		{&p.WeekdayRate, "PRICE_WEEKDAY_RATE", defaultWeekdayRate},
		{&p.WeekendRate, "PRICE_WEEKEND_RATE", defaultWeekendRate},
		{&p.ExtraSetupRate, "PRICE_SETUP_RATE", defaultSetupRate},
		{&p.Deposit, "PRICE_DEPOSIT", defaultDeposit},
	}
	for _, f := range fields {
		v, err := parseIntEnv(f.name, f.def)
		if err != nil {
			return Pricing{}, err
		}
		*f.dst = int64(v)
	}

	var err error
	if p.OpeningHour, err = parseIntEnv("VENUE_OPENING_HOUR", defaultOpeningHour); err != nil {
		return Pricing{}, err
	}
	if p.ClosingHour, err = parseIntEnv("VENUE_CLOSING_HOUR", defaultClosingHour); err != nil {
		return Pricing{}, err
	}
	if p.WeekendMinimumHrs, err = parseIntEnv("WEEKEND_MINIMUM_HOURS", defaultWeekendMinHours); err != nil {
		return Pricing{}, err
	}
	return p, nil
}

// DefaultPricing is the rate card used when no env overrides are set.
// Tests rely on these values staying in sync with loadPricing defaults.
func DefaultPricing() Pricing {
	return Pricing{
		OpeningHour:       8,
		ClosingHour:       24,
		WeekdayRate:       125,
		WeekendRate:       175,
		ExtraSetupRate:    50,
		Deposit:           200,
		WeekendMinimumHrs: 4,
	}
}

func getEnv(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func parseIntEnv(name, def string) (int, error) {
	raw := getEnv(name, def)
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", name, raw)
	}
	return v, nil
}

func parseDurationEnv(name, def string) (time.Duration, error) {
	raw := getEnv(name, def)
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q", name, raw)
	}
	return d, nil
}
