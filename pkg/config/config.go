package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	API      APIConfig
	State    StateConfig
	Redis    RedisConfig
	Shipping ShippingConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.State.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type APIConfig struct {
	BaseURL     string        `envconfig:"STOREFRONT_API_BASE_URL" required:"true"`
	Timeout     time.Duration `envconfig:"STOREFRONT_API_TIMEOUT" default:"15s"`
	UserAgent   string        `envconfig:"STOREFRONT_API_USER_AGENT" default:"storefront-client/1.0"`
	UploadLimit int64         `envconfig:"STOREFRONT_API_UPLOAD_LIMIT_MB" default:"10"`
}

type StateConfig struct {
	Driver string `envconfig:"STOREFRONT_STATE_DRIVER" default:"file"`
	Dir    string `envconfig:"STOREFRONT_STATE_DIR" default:".storefront"`
	DSN    string `envconfig:"STOREFRONT_STATE_DSN"`
}

func (s StateConfig) validate() error {
	switch s.Driver {
	case StateDriverFile, StateDriverRedis, StateDriverSQLite:
		return nil
	default:
		return fmt.Errorf("unknown state driver %q", s.Driver)
	}
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type ShippingConfig struct {
	// ProtectionFee is the flat add-on charged when shipping protection is enabled,
	// in whole currency units.
	ProtectionFee string `envconfig:"STOREFRONT_SHIPPING_PROTECTION_FEE" default:"200"`
}
