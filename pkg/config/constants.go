package config

// EnvPrefix scopes every environment variable consumed by the toolkit.
const EnvPrefix = "STOREFRONT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// State store drivers selectable via STOREFRONT_STATE_DRIVER.
const (
	StateDriverFile   = "file"
	StateDriverRedis  = "redis"
	StateDriverSQLite = "sqlite"
)
