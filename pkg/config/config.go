package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Report        ReportConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Report.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SHOPFLOOR_APP_ENV" default:"dev"`
	Host         string `envconfig:"SHOPFLOOR_APP_HOST" default:"127.0.0.1"`
	Port         string `envconfig:"SHOPFLOOR_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SHOPFLOOR_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"SHOPFLOOR_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"SHOPFLOOR_LOG_WARN_STACK" default:"false"`
	// CORSOrigins lists browser origins allowed to call the API, typically
	// the local front-end dev server.
	CORSOrigins []string `envconfig:"SHOPFLOOR_CORS_ORIGINS" default:"http://localhost:3000,http://127.0.0.1:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// Addr returns the listen address for the HTTP server.
func (a AppConfig) Addr() string {
	return a.Host + ":" + a.Port
}

type DBConfig struct {
	DSN    string `envconfig:"SHOPFLOOR_DB_DSN"`
	Driver string `envconfig:"SHOPFLOOR_DB_DRIVER" default:"sqlite"`

	// Path is the database file used when Driver is sqlite and DSN is empty.
	Path string `envconfig:"SHOPFLOOR_DB_PATH" default:"shopfloor.db"`

	MaxOpenConns    int           `envconfig:"SHOPFLOOR_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"SHOPFLOOR_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"SHOPFLOOR_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SHOPFLOOR_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the configured driver is the embedded sqlite store.
func (db DBConfig) IsSQLite() bool {
	return normalizeDriver(db.Driver) == DriverSQLite
}

type RedisConfig struct {
	URL          string        `envconfig:"SHOPFLOOR_REDIS_URL"`
	Address      string        `envconfig:"SHOPFLOOR_REDIS_ADDR"`
	Password     string        `envconfig:"SHOPFLOOR_REDIS_PASSWORD"`
	DB           int           `envconfig:"SHOPFLOOR_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SHOPFLOOR_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SHOPFLOOR_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SHOPFLOOR_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SHOPFLOOR_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SHOPFLOOR_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type JWTConfig struct {
	Secret                 string `envconfig:"SHOPFLOOR_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"SHOPFLOOR_JWT_ISSUER" default:"shopfloor"`
	ExpirationMinutes      int    `envconfig:"SHOPFLOOR_JWT_EXPIRATION_MINUTES" default:"480"`
	RefreshTokenTTLMinutes int    `envconfig:"SHOPFLOOR_REFRESH_TOKEN_TTL_MINUTES" default:"10080"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SHOPFLOOR_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SHOPFLOOR_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SHOPFLOOR_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SHOPFLOOR_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SHOPFLOOR_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"SHOPFLOOR_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginUsernameLimit int           `envconfig:"SHOPFLOOR_AUTH_RATE_LIMIT_LOGIN_USERNAME_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"SHOPFLOOR_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SHOPFLOOR_AUTO_MIGRATE" default:"true"`
	SeedSamples bool `envconfig:"SHOPFLOOR_SEED_SAMPLES" default:"true"`
	SeedAdmin   bool `envconfig:"SHOPFLOOR_SEED_ADMIN" default:"true"`
}

type ReportConfig struct {
	// DefaultPrice is used for sales whose inventory row no longer exists.
	DefaultPrice string `envconfig:"SHOPFLOOR_REPORT_DEFAULT_PRICE" default:"100"`
}

// DefaultPriceDecimal parses DefaultPrice. Load validates it, so the zero
// fallback only applies to hand-built configs.
func (r ReportConfig) DefaultPriceDecimal() decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(r.DefaultPrice))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func (r ReportConfig) validate() error {
	d, err := decimal.NewFromString(strings.TrimSpace(r.DefaultPrice))
	if err != nil {
		return fmt.Errorf("%s: %w", EnvReportDefaultPrice, err)
	}
	if d.IsNegative() {
		return fmt.Errorf("%s must not be negative", EnvReportDefaultPrice)
	}
	return nil
}

func normalizeDriver(driver string) string {
	d := strings.ToLower(strings.TrimSpace(driver))
	switch d {
	case "", "sqlite3":
		return DriverSQLite
	case "pg", "postgresql":
		return DriverPostgres
	}
	return d
}

func (db *DBConfig) ensureDSN() error {
	db.Driver = normalizeDriver(db.Driver)

	switch db.Driver {
	case DriverSQLite:
		if db.DSN != "" {
			return nil
		}
		if strings.TrimSpace(db.Path) == "" {
			return fmt.Errorf("either %s or %s are required", EnvDBDSN, EnvDBPath)
		}
		u := &url.URL{Scheme: "file", Opaque: db.Path}
		q := url.Values{}
		q.Set("_foreign_keys", "on")
		q.Set("_busy_timeout", "5000")
		u.RawQuery = q.Encode()
		db.DSN = u.String()
		return nil
	case DriverPostgres:
		if db.DSN == "" {
			return fmt.Errorf("%s is required when %s is %s", EnvDBDSN, EnvDBDriver, DriverPostgres)
		}
		return nil
	default:
		return fmt.Errorf("unsupported %s %q", EnvDBDriver, db.Driver)
	}
}
