package config

const (
	EnvPrefix = "STOREFRONT"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	EnvAppEnv      = "STOREFRONT_APP_ENV"
	EnvPort        = "STOREFRONT_APP_PORT"
	EnvLogLevel    = "STOREFRONT_LOG_LEVEL"
	EnvDBDSN       = "STOREFRONT_DB_DSN"
	EnvDBDriver    = "STOREFRONT_DB_DRIVER"
	EnvDBHost      = "STOREFRONT_DB_HOST"
	EnvDBPort      = "STOREFRONT_DB_PORT"
	EnvDBUser      = "STOREFRONT_DB_USER"
	EnvDBPassword  = "STOREFRONT_DB_PASSWORD"
	EnvDBName      = "STOREFRONT_DB_NAME"
	EnvDBSSLMode   = "STOREFRONT_DB_SSLMODE"
	EnvRedisURL    = "STOREFRONT_REDIS_URL"
	EnvRedisAddr   = "STOREFRONT_REDIS_ADDR"
	EnvUseSQLite   = "STOREFRONT_USE_SQLITE"
	EnvAutoMigrate = "STOREFRONT_AUTO_MIGRATE"

	EnvGCPProjectID       = "STOREFRONT_GCP_PROJECT_ID"
	EnvStorageBaseURL     = "STOREFRONT_STORAGE_PUBLIC_BASE_URL"
	EnvStorageProducts    = "STOREFRONT_STORAGE_PRODUCT_BUCKET"
	EnvStorageSellers     = "STOREFRONT_STORAGE_SELLER_BUCKET"
	EnvStoragePlaceholder = "STOREFRONT_STORAGE_PLACEHOLDER_URL"

	EnvCurrencyFallbackRate = "STOREFRONT_CURRENCY_USD_HTG_RATE"
	EnvCurrencyProviderURL  = "STOREFRONT_CURRENCY_PROVIDER_URL"
	EnvCurrencyCacheTTL     = "STOREFRONT_CURRENCY_CACHE_TTL"

	EnvPricingTierMode  = "STOREFRONT_PRICING_TIER_MODE"
	EnvPricingTierTable = "STOREFRONT_PRICING_TIER_TABLE"

	EnvDefaultLanguage    = "STOREFRONT_DEFAULT_LANGUAGE"
	EnvCatalogSnapshotTTL = "STOREFRONT_CATALOG_SNAPSHOT_TTL"
)

var legacyDBEnvVars = []string{
	EnvDBHost,
	EnvDBUser,
	EnvDBName,
}
