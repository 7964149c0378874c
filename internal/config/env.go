package config

const (
	EnvPrefix = "AGROLEDGER"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	StorePostgres = "postgres"
	StoreMemory   = "memory"

	EnvAppEnv                 = "AGROLEDGER_APP_ENV"
	EnvPort                   = "AGROLEDGER_APP_PORT"
	EnvLogLevel               = "AGROLEDGER_LOG_LEVEL"
	EnvStore                  = "AGROLEDGER_STORE"
	EnvDBDSN                  = "AGROLEDGER_DB_DSN"
	EnvDBMaxConns             = "AGROLEDGER_DB_MAX_CONNS"
	EnvDBMinConns             = "AGROLEDGER_DB_MIN_CONNS"
	EnvHTTPGzip               = "AGROLEDGER_HTTP_GZIP"
	EnvAnalyticsTimelineLimit = "AGROLEDGER_ANALYTICS_TIMELINE_LIMIT"
	EnvAnalyticsTimezone      = "AGROLEDGER_ANALYTICS_TIMEZONE"
	EnvMetricsEnabled         = "AGROLEDGER_METRICS_ENABLED"
)
