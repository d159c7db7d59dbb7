package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	CORS      CORSConfig
	Log       LogConfig
	Remote    RemoteConfig
	Checkout  CheckoutConfig
	Assistant AssistantConfig
	Session   SessionConfig
	Payments  PaymentsConfig
	Summary   SummaryConfig
	Locale    LocaleConfig
	Exports   ExportsConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// RemoteConfig locates the authoritative record-keeping service.
type RemoteConfig struct {
	AccountsBaseURL string
	PaymentsBaseURL string
	Timeout         time.Duration
}

// CheckoutConfig holds third-party checkout provider credentials.
type CheckoutConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Currency     string
	ReturnURL    string
	CancelURL    string
	Timeout      time.Duration
}

// AssistantConfig configures the question-answering collaborator. An empty
// APIKey is the defined unavailable state.
type AssistantConfig struct {
	BaseURL      string
	APIKey       string
	Model        string
	SystemPrompt string
	Timeout      time.Duration
}

// SessionConfig tunes the session store.
type SessionConfig struct {
	LoginLatency time.Duration
	SeedEnabled  bool
}

// PaymentsConfig tunes the payment store reconciliation behaviour.
type PaymentsConfig struct {
	ClearOnFailedRefresh bool
	ReconcileBuffer      int
}

// SummaryConfig governs the summary projector.
type SummaryConfig struct {
	UseRemote bool
	CacheTTL  time.Duration
}

// LocaleConfig sets the default display language.
type LocaleConfig struct {
	Default string
}

// ExportsConfig controls receipt/ledger artifact generation.
type ExportsConfig struct {
	StorageDir      string
	SignedURLSecret string
	SignedURLTTL    time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Remote = RemoteConfig{
		AccountsBaseURL: v.GetString("REMOTE_ACCOUNTS_BASE_URL"),
		PaymentsBaseURL: v.GetString("REMOTE_PAYMENTS_BASE_URL"),
		Timeout:         parseDuration(v.GetString("REMOTE_TIMEOUT"), 10*time.Second),
	}

	cfg.Checkout = CheckoutConfig{
		BaseURL:      v.GetString("CHECKOUT_BASE_URL"),
		ClientID:     v.GetString("CHECKOUT_CLIENT_ID"),
		ClientSecret: v.GetString("CHECKOUT_CLIENT_SECRET"),
		Currency:     v.GetString("CHECKOUT_CURRENCY"),
		ReturnURL:    v.GetString("CHECKOUT_RETURN_URL"),
		CancelURL:    v.GetString("CHECKOUT_CANCEL_URL"),
		Timeout:      parseDuration(v.GetString("CHECKOUT_TIMEOUT"), 15*time.Second),
	}

	cfg.Assistant = AssistantConfig{
		BaseURL:      v.GetString("ASSISTANT_BASE_URL"),
		APIKey:       v.GetString("ASSISTANT_API_KEY"),
		Model:        v.GetString("ASSISTANT_MODEL"),
		SystemPrompt: v.GetString("ASSISTANT_SYSTEM_PROMPT"),
		Timeout:      parseDuration(v.GetString("ASSISTANT_TIMEOUT"), 20*time.Second),
	}

	cfg.Session = SessionConfig{
		LoginLatency: parseDuration(v.GetString("SESSION_LOGIN_LATENCY"), 500*time.Millisecond),
		SeedEnabled:  v.GetBool("SESSION_SEED_ENABLED"),
	}

	cfg.Payments = PaymentsConfig{
		ClearOnFailedRefresh: v.GetBool("PAYMENTS_CLEAR_ON_FAILED_REFRESH"),
		ReconcileBuffer:      v.GetInt("PAYMENTS_RECONCILE_BUFFER"),
	}

	cfg.Summary = SummaryConfig{
		UseRemote: v.GetBool("SUMMARY_USE_REMOTE"),
		CacheTTL:  parseDuration(v.GetString("SUMMARY_CACHE_TTL"), time.Minute),
	}

	cfg.Locale = LocaleConfig{Default: v.GetString("LOCALE_DEFAULT")}

	cfg.Exports = ExportsConfig{
		StorageDir:      v.GetString("EXPORTS_STORAGE_DIR"),
		SignedURLSecret: v.GetString("EXPORTS_SIGNED_URL_SECRET"),
		SignedURLTTL:    parseDuration(v.GetString("EXPORTS_SIGNED_URL_TTL"), 24*time.Hour),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "school_pay_portal")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("JWT_ISSUER", "school-pay-api")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("REMOTE_ACCOUNTS_BASE_URL", "http://localhost:8081/api/users")
	v.SetDefault("REMOTE_PAYMENTS_BASE_URL", "http://localhost:8081/api/payments")
	v.SetDefault("REMOTE_TIMEOUT", "10s")

	v.SetDefault("CHECKOUT_BASE_URL", "https://api-m.sandbox.paypal.com")
	v.SetDefault("CHECKOUT_CLIENT_ID", "")
	v.SetDefault("CHECKOUT_CLIENT_SECRET", "")
	v.SetDefault("CHECKOUT_CURRENCY", "USD")
	v.SetDefault("CHECKOUT_RETURN_URL", "http://localhost:5173/success")
	v.SetDefault("CHECKOUT_CANCEL_URL", "http://localhost:5173/payments")
	v.SetDefault("CHECKOUT_TIMEOUT", "15s")

	v.SetDefault("ASSISTANT_BASE_URL", "https://generativelanguage.googleapis.com")
	v.SetDefault("ASSISTANT_API_KEY", "")
	v.SetDefault("ASSISTANT_MODEL", "gemini-2.5-flash")
	v.SetDefault("ASSISTANT_SYSTEM_PROMPT", "You are a helpful assistant for a school tuition payment portal. Answer questions about fees, due dates and payment methods.")
	v.SetDefault("ASSISTANT_TIMEOUT", "20s")

	v.SetDefault("SESSION_LOGIN_LATENCY", "500ms")
	v.SetDefault("SESSION_SEED_ENABLED", true)

	v.SetDefault("PAYMENTS_CLEAR_ON_FAILED_REFRESH", false)
	v.SetDefault("PAYMENTS_RECONCILE_BUFFER", 16)

	v.SetDefault("SUMMARY_USE_REMOTE", true)
	v.SetDefault("SUMMARY_CACHE_TTL", "1m")

	v.SetDefault("LOCALE_DEFAULT", "en")

	v.SetDefault("EXPORTS_STORAGE_DIR", "./exports")
	v.SetDefault("EXPORTS_SIGNED_URL_SECRET", "dev_exports_secret")
	v.SetDefault("EXPORTS_SIGNED_URL_TTL", "24h")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
