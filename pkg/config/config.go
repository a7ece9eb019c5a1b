package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"PLASMA_APP_ENV" required:"true"`
	Port         string `envconfig:"PLASMA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PLASMA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PLASMA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"PLASMA_DB_DSN"`

	Host     string `envconfig:"PLASMA_DB_HOST"`
	Port     int    `envconfig:"PLASMA_DB_PORT" default:"5432"`
	User     string `envconfig:"PLASMA_DB_USER"`
	Password string `envconfig:"PLASMA_DB_PASSWORD"`
	Name     string `envconfig:"PLASMA_DB_NAME"`
	SSLMode  string `envconfig:"PLASMA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PLASMA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PLASMA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PLASMA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PLASMA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PLASMA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"PLASMA_REDIS_ADDR"`
	Password     string        `envconfig:"PLASMA_REDIS_PASSWORD"`
	DB           int           `envconfig:"PLASMA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PLASMA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PLASMA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PLASMA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PLASMA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PLASMA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// RateLimitConfig throttles interaction writes; zero limits disable the guard.
type RateLimitConfig struct {
	InteractionWindow     time.Duration `envconfig:"PLASMA_RATE_LIMIT_INTERACTION_WINDOW" default:"1m"`
	InteractionActorLimit int           `envconfig:"PLASMA_RATE_LIMIT_INTERACTION_ACTOR_LIMIT" default:"60"`
	InteractionIPLimit    int           `envconfig:"PLASMA_RATE_LIMIT_INTERACTION_IP_LIMIT" default:"120"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"PLASMA_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	parts := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if parts[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
