package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/lakaymarket/storefront-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
	GCP          GCPConfig
	Storage      StorageConfig
	Currency     CurrencyConfig
	Pricing      PricingConfig
	I18n         I18nConfig
	Catalog      CatalogConfig
	HTTP         HTTPConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = DriverSQLite
	}
	if err := cfg.DB.ensureDSN(cfg.FeatureFlags.UseSQLite); err != nil {
		return nil, err
	}
	if err := cfg.Currency.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Pricing.validate(); err != nil {
		return nil, err
	}
	if _, err := enums.ParseLanguage(cfg.I18n.DefaultLanguage); err != nil {
		return nil, fmt.Errorf("%s: %w", EnvDefaultLanguage, err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" required:"true"`
	Port         string `envconfig:"STOREFRONT_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"STOREFRONT_DB_DSN"`
	Driver string `envconfig:"STOREFRONT_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"STOREFRONT_DB_HOST"`
	LegacyPort     int    `envconfig:"STOREFRONT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"STOREFRONT_DB_USER"`
	LegacyPassword string `envconfig:"STOREFRONT_DB_PASSWORD"`
	LegacyName     string `envconfig:"STOREFRONT_DB_NAME"`
	LegacySSLMode  string `envconfig:"STOREFRONT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"STOREFRONT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"STOREFRONT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
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

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"STOREFRONT_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"STOREFRONT_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"STOREFRONT_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"STOREFRONT_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"STOREFRONT_GOOGLE_APPLICATION_CREDENTIALS"`
}

// StorageConfig describes where public catalog images live.
type StorageConfig struct {
	PublicBaseURL  string `envconfig:"STOREFRONT_STORAGE_PUBLIC_BASE_URL" default:"https://storage.googleapis.com"`
	ProductBucket  string `envconfig:"STOREFRONT_STORAGE_PRODUCT_BUCKET" default:"product-images"`
	SellerBucket   string `envconfig:"STOREFRONT_STORAGE_SELLER_BUCKET" default:"seller-logos"`
	PlaceholderURL string `envconfig:"STOREFRONT_STORAGE_PLACEHOLDER_URL" default:"/static/placeholder.svg"`
	ProbeBuckets   bool   `envconfig:"STOREFRONT_STORAGE_PROBE_BUCKETS" default:"false"`
}

type CurrencyConfig struct {
	FallbackRate  string        `envconfig:"STOREFRONT_CURRENCY_USD_HTG_RATE" default:"132"`
	ProviderURL   string        `envconfig:"STOREFRONT_CURRENCY_PROVIDER_URL"`
	CacheTTL      time.Duration `envconfig:"STOREFRONT_CURRENCY_CACHE_TTL" default:"1h"`
	FetchTimeout  time.Duration `envconfig:"STOREFRONT_CURRENCY_FETCH_TIMEOUT" default:"3s"`
	RetryAttempts uint64        `envconfig:"STOREFRONT_CURRENCY_RETRY_ATTEMPTS" default:"3"`
}

// USDToHTG returns the configured fallback rate.
func (c CurrencyConfig) USDToHTG() decimal.Decimal {
	rate, err := decimal.NewFromString(strings.TrimSpace(c.FallbackRate))
	if err != nil {
		return decimal.Zero
	}
	return rate
}

func (c CurrencyConfig) validate() error {
	if !c.USDToHTG().IsPositive() {
		return fmt.Errorf("%s must be a positive decimal, got %q", EnvCurrencyFallbackRate, c.FallbackRate)
	}
	return nil
}

// PricingConfig selects how bundle tiers are matched. TierTable optionally
// overrides the built-in default table with a JSON array of tiers.
type PricingConfig struct {
	TierMode  string `envconfig:"STOREFRONT_PRICING_TIER_MODE" default:"range"`
	TierTable string `envconfig:"STOREFRONT_PRICING_TIER_TABLE"`
}

func (p PricingConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(p.TierMode)) {
	case "range", "exact":
		return nil
	}
	return fmt.Errorf("%s must be range or exact, got %q", EnvPricingTierMode, p.TierMode)
}

// CatalogConfig controls the cached product/seller snapshots.
type CatalogConfig struct {
	SnapshotTTL time.Duration `envconfig:"STOREFRONT_CATALOG_SNAPSHOT_TTL" default:"30s"`
	TopVendors  int           `envconfig:"STOREFRONT_CATALOG_TOP_VENDORS" default:"10"`
}

type I18nConfig struct {
	DefaultLanguage string `envconfig:"STOREFRONT_DEFAULT_LANGUAGE" default:"en"`
}

type HTTPConfig struct {
	AllowedOrigins  []string      `envconfig:"STOREFRONT_HTTP_ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
	RateLimitWindow time.Duration `envconfig:"STOREFRONT_HTTP_RATE_LIMIT_WINDOW" default:"1m"`
	RateLimitMax    int           `envconfig:"STOREFRONT_HTTP_RATE_LIMIT_MAX" default:"300"`
	ShutdownTimeout time.Duration `envconfig:"STOREFRONT_HTTP_SHUTDOWN_TIMEOUT" default:"15s"`
	// TrustedProxyHops counts the proxies that append to X-Forwarded-For.
	TrustedProxyHops int `envconfig:"STOREFRONT_HTTP_TRUSTED_PROXY_HOPS" default:"0"`
}

func (db *DBConfig) ensureDSN(useSQLite bool) error {
	if db.DSN != "" {
		return nil
	}
	if useSQLite {
		db.DSN = "file:storefront.db?cache=shared"
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
