package config

const EnvPrefix = "SHOPFLOOR"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Environment variable names referenced outside struct tags.
const (
	EnvAppEnv             = "SHOPFLOOR_APP_ENV"
	EnvPort               = "SHOPFLOOR_APP_PORT"
	EnvLogLevel           = "SHOPFLOOR_LOG_LEVEL"
	EnvDBDSN              = "SHOPFLOOR_DB_DSN"
	EnvDBDriver           = "SHOPFLOOR_DB_DRIVER"
	EnvDBPath             = "SHOPFLOOR_DB_PATH"
	EnvRedisURL           = "SHOPFLOOR_REDIS_URL"
	EnvJWTSecret          = "SHOPFLOOR_JWT_SECRET"
	EnvJWTIssuer          = "SHOPFLOOR_JWT_ISSUER"
	EnvJWTExpMins         = "SHOPFLOOR_JWT_EXPIRATION_MINUTES"
	EnvAutoMigrate        = "SHOPFLOOR_AUTO_MIGRATE"
	EnvSeedSamples        = "SHOPFLOOR_SEED_SAMPLES"
	EnvReportDefaultPrice = "SHOPFLOOR_REPORT_DEFAULT_PRICE"
)
