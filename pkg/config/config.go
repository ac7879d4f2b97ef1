package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "TOURBOOK"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "TOURBOOK_DB_DSN"
	EnvDBHost = "TOURBOOK_DB_HOST"
	EnvDBUser = "TOURBOOK_DB_USER"
	EnvDBName = "TOURBOOK_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	FeatureFlags FeatureFlagsConfig
	Pricing      PricingConfig
	Booking      BookingConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"TOURBOOK_APP_ENV" required:"true"`
	Port         string `envconfig:"TOURBOOK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"TOURBOOK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TOURBOOK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"TOURBOOK_DB_DSN"`
	Driver string `envconfig:"TOURBOOK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"TOURBOOK_DB_HOST"`
	LegacyPort     int    `envconfig:"TOURBOOK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"TOURBOOK_DB_USER"`
	LegacyPassword string `envconfig:"TOURBOOK_DB_PASSWORD"`
	LegacyName     string `envconfig:"TOURBOOK_DB_NAME"`
	LegacySSLMode  string `envconfig:"TOURBOOK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TOURBOOK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TOURBOOK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TOURBOOK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TOURBOOK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"TOURBOOK_REDIS_URL" required:"true"`
	Address      string        `envconfig:"TOURBOOK_REDIS_ADDR"`
	Password     string        `envconfig:"TOURBOOK_REDIS_PASSWORD"`
	DB           int           `envconfig:"TOURBOOK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TOURBOOK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TOURBOOK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TOURBOOK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TOURBOOK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TOURBOOK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"TOURBOOK_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"TOURBOOK_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"TOURBOOK_JWT_EXPIRATION_MINUTES" required:"true"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"TOURBOOK_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"TOURBOOK_AUTO_MIGRATE" default:"false"`
}

// PricingConfig carries the fallback date windows applied when an offer does not
// define its own advance-day constraints.
type PricingConfig struct {
	EarlyBirdLeadDays    int `envconfig:"TOURBOOK_PRICING_EARLY_BIRD_LEAD_DAYS" default:"30"`
	LastMinuteWindowDays int `envconfig:"TOURBOOK_PRICING_LAST_MINUTE_WINDOW_DAYS" default:"7"`
}

type BookingConfig struct {
	ReferenceMaxAttempts int           `envconfig:"TOURBOOK_BOOKING_REFERENCE_MAX_ATTEMPTS" default:"5"`
	ReferenceRetryDelay  time.Duration `envconfig:"TOURBOOK_BOOKING_REFERENCE_RETRY_DELAY" default:"100ms"`
	IdempotencyTTL       time.Duration `envconfig:"TOURBOOK_BOOKING_IDEMPOTENCY_TTL" default:"168h"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
