package config

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "PLASMA"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv   = "PLASMA_APP_ENV"
	EnvPort     = "PLASMA_APP_PORT"
	EnvDBDSN    = "PLASMA_DB_DSN"
	EnvDBHost   = "PLASMA_DB_HOST"
	EnvDBUser   = "PLASMA_DB_USER"
	EnvDBName   = "PLASMA_DB_NAME"
	EnvRedisURL = "PLASMA_REDIS_URL"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
