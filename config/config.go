package config

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

// AppConfig is everything the server needs, read once at startup.
type AppConfig struct {
	Port        string
	GinMode     string
	CORSOrigins []string
	FrontendURL string

	HoldTTL           time.Duration
	HoldSweepInterval time.Duration

	DB          DBConfig
	MercadoPago MercadoPagoConfig
}

type DBConfig struct {
	DSN      string
	Name     string
	PoolSize int
	LogLevel string
}

type MercadoPagoConfig struct {
	AccessToken     string
	Timeout         time.Duration
	CurrencyID      string
	SuccessURL      string
	FailureURL      string
	PendingURL      string
	NotificationURL string
	WebhookSecret   string
}

// RequiredKeys must be present in the environment; the server refuses to
// start without them.
var RequiredKeys = []string{
	"MP_ACCESS_TOKEN",
	"MP_SUCCESS_URL",
	"MP_FAILURE_URL",
	"MP_PENDING_URL",
	"MP_NOTIFICATION_URL",
	"FRONTEND_URL",
}

// LoadDotEnv loads .env when present. A missing file is not an error.
func LoadDotEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}
}

// FromEnv builds the configuration from the process environment.
func FromEnv() (AppConfig, error) {
	var missing []string
	for _, k := range RequiredKeys {
		if strings.TrimSpace(os.Getenv(k)) == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return AppConfig{}, fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	cfg := AppConfig{
		Port:        envOrDefault("PORT", "3000"),
		GinMode:     envOrDefault("GIN_MODE", "release"),
		CORSOrigins: parseCorsOrigins(os.Getenv("CORS_ORIGINS")),
		FrontendURL: strings.TrimSpace(os.Getenv("FRONTEND_URL")),
		MercadoPago: MercadoPagoConfig{
			AccessToken:     strings.TrimSpace(os.Getenv("MP_ACCESS_TOKEN")),
			CurrencyID:      strings.TrimSpace(os.Getenv("MP_CURRENCY_ID")),
			SuccessURL:      strings.TrimSpace(os.Getenv("MP_SUCCESS_URL")),
			FailureURL:      strings.TrimSpace(os.Getenv("MP_FAILURE_URL")),
			PendingURL:      strings.TrimSpace(os.Getenv("MP_PENDING_URL")),
			NotificationURL: strings.TrimSpace(os.Getenv("MP_NOTIFICATION_URL")),
			WebhookSecret:   strings.TrimSpace(os.Getenv("MP_WEBHOOK_SECRET")),
		},
	}

	timeoutMs, err := strconv.Atoi(envOrDefault("MP_TIMEOUT_MS", "5000"))
	if err != nil || timeoutMs <= 0 {
		return AppConfig{}, fmt.Errorf("invalid MP_TIMEOUT_MS")
	}
	cfg.MercadoPago.Timeout = time.Duration(timeoutMs) * time.Millisecond

	if cfg.HoldTTL, err = time.ParseDuration(envOrDefault("HOLD_TTL", "15m")); err != nil || cfg.HoldTTL <= 0 {
		return AppConfig{}, fmt.Errorf("invalid HOLD_TTL")
	}
	if cfg.HoldSweepInterval, err = time.ParseDuration(envOrDefault("HOLD_SWEEP_INTERVAL", "1m")); err != nil || cfg.HoldSweepInterval <= 0 {
		return AppConfig{}, fmt.Errorf("invalid HOLD_SWEEP_INTERVAL")
	}

	if cfg.DB, err = DBFromEnv(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// DBFromEnv reads only the database settings. The migrate command uses it
// so schema work does not need payment credentials.
func DBFromEnv() (DBConfig, error) {
	dsn, dbName, err := resolveMySQLDSN()
	if err != nil {
		return DBConfig{}, err
	}
	pool, err := strconv.Atoi(envOrDefault("DB_POOL_SIZE", "10"))
	if err != nil || pool <= 0 {
		return DBConfig{}, fmt.Errorf("invalid DB_POOL_SIZE")
	}
	return DBConfig{
		DSN:      dsn,
		Name:     dbName,
		PoolSize: pool,
		LogLevel: strings.ToLower(envOrDefault("DB_LOG_LEVEL", "warn")),
	}, nil
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func parseCorsOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func baseMySQLConfig() *mysql.Config {
	mc := mysql.NewConfig()
	mc.Net = "tcp"
	mc.ParseTime = true
	mc.Loc = time.Local
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc
}

func mysqlDSNFromURL(raw string) (string, string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", err
	}

	port := u.Port()
	if port == "" {
		port = "3306"
	}
	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", "", fmt.Errorf("mysql url missing database name")
	}

	mc := baseMySQLConfig()
	mc.User = u.User.Username()
	mc.Passwd, _ = u.User.Password()
	mc.Addr = net.JoinHostPort(u.Hostname(), port)
	mc.DBName = dbName
	for k, v := range u.Query() {
		if len(v) > 0 {
			mc.Params[k] = v[0]
		}
	}
	return mc.FormatDSN(), dbName, nil
}

func resolveMySQLDSN() (string, string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		mc, err := mysql.ParseDSN(raw)
		if err != nil {
			return "", "", fmt.Errorf("invalid DATABASE_URL: %w", err)
		}
		return raw, mc.DBName, nil
	}

	mc := baseMySQLConfig()
	mc.User = envOrDefault("DB_USER", "root")
	mc.Passwd = strings.TrimSpace(os.Getenv("DB_PASS"))
	mc.Addr = net.JoinHostPort(envOrDefault("DB_HOST", "127.0.0.1"), envOrDefault("DB_PORT", "3306"))
	mc.DBName = envOrDefault("DB_NAME", "hotel_reservas_db")
	return mc.FormatDSN(), mc.DBName, nil
}
