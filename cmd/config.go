package cmd

import (
	"fmt"
	"strings"
	"time"

	"forwarding/internal/core/domain/services"
	"forwarding/internal/pkg/errs"

	"github.com/caarlos0/env/v9"
	"github.com/shopspring/decimal"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName     string `env:"DB_NAME" envDefault:"forwarding"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`
	// DBLockTimeout bounds waits on locked storage locations.
	DBLockTimeout time.Duration `env:"DB_LOCK_TIMEOUT" envDefault:"3s"`

	KafkaBrokers            string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	KafkaNotificationsTopic string `env:"KAFKA_NOTIFICATIONS_TOPIC" envDefault:"order-notifications"`

	ValidationURL     string        `env:"VALIDATION_URL"`
	ValidationTimeout time.Duration `env:"VALIDATION_TIMEOUT" envDefault:"2s"`

	VolumeThresholdM3 string `env:"VOLUME_THRESHOLD_M3" envDefault:"29"`
	AmountThreshold   string `env:"AMOUNT_THRESHOLD" envDefault:"1500"`
	ReferenceCurrency string `env:"REFERENCE_CURRENCY" envDefault:"USD"`

	ReservationExpirySchedule string `env:"RESERVATION_EXPIRY_SCHEDULE" envDefault:"0 * * * * *"`
	OverdueItemsSchedule      string `env:"OVERDUE_ITEMS_SCHEDULE" envDefault:"0 */5 * * * *"`
}

// LoadConfig reads the environment. A .env file, when present, is loaded by
// the caller before this runs.
func LoadConfig() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("config parse: %w", err)
	}
	if _, err := c.Thresholds(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) KafkaBrokersSlice() []string {
	parts := strings.Split(c.KafkaBrokers, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Thresholds are the configured rule defaults. Values saved in the
// rule_settings table override them field by field.
func (c Config) Thresholds() (services.Thresholds, error) {
	volume, err := decimal.NewFromString(c.VolumeThresholdM3)
	if err != nil {
		return services.Thresholds{}, errs.NewValueIsInvalidErrorWithCause("VOLUME_THRESHOLD_M3", err)
	}
	amount, err := decimal.NewFromString(c.AmountThreshold)
	if err != nil {
		return services.Thresholds{}, errs.NewValueIsInvalidErrorWithCause("AMOUNT_THRESHOLD", err)
	}

	t := services.Thresholds{
		VolumeM3:          volume,
		Amount:            amount,
		ReferenceCurrency: strings.ToUpper(strings.TrimSpace(c.ReferenceCurrency)),
	}
	if err = t.Validate(); err != nil {
		return services.Thresholds{}, err
	}
	return t, nil
}
