package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	DB      DBConfig
	SQLite  SQLiteConfig
	Mongo   MongoConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
	Session SessionConfig
	Breaker BreakerConfig
}

type ServerConfig struct {
	Port            string        `envconfig:"PORT" required:"true"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// StoreDriver selects the repository adapter and the event channel paired with it.
type StoreDriver string

const (
	StorePostgres StoreDriver = "postgres"
	StoreSQLite   StoreDriver = "sqlite"
	StoreMongo    StoreDriver = "mongo"
)

type StoreConfig struct {
	Driver StoreDriver `envconfig:"STORE_DRIVER" default:"postgres"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type SQLiteConfig struct {
	Path string `envconfig:"SQLITE_PATH" default:"gigboard-notify.db"`
}

type MongoConfig struct {
	URI      string        `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	Database string        `envconfig:"MONGO_DATABASE" default:"gigboard"`
	Timeout  time.Duration `envconfig:"MONGO_TIMEOUT" default:"10s"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

type SessionConfig struct {
	// PendingUpdateLimit bounds the read-state updates kept for notifications
	// that have not arrived yet.
	PendingUpdateLimit int           `envconfig:"SESSION_PENDING_UPDATE_LIMIT" default:"256"`
	ReconnectAttempts  int           `envconfig:"SESSION_RECONNECT_ATTEMPTS" default:"5"`
	ReconnectBackoff   time.Duration `envconfig:"SESSION_RECONNECT_BACKOFF" default:"500ms"`
	ReconnectCooldown  time.Duration `envconfig:"SESSION_RECONNECT_COOLDOWN" default:"30s"`
	ActivateTimeout    time.Duration `envconfig:"SESSION_ACTIVATE_TIMEOUT" default:"10s"`
	PermissionTimeout  time.Duration `envconfig:"SESSION_PERMISSION_TIMEOUT" default:"30s"`
}

type BreakerConfig struct {
	Enabled          bool          `envconfig:"BREAKER_ENABLED" default:"true"`
	FailureThreshold uint32        `envconfig:"BREAKER_FAILURE_THRESHOLD" default:"5"`
	OpenTimeout      time.Duration `envconfig:"BREAKER_OPEN_TIMEOUT" default:"10s"`
	HalfOpenRequests uint32        `envconfig:"BREAKER_HALF_OPEN_REQUESTS" default:"1"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c Config) Validate() error {
	switch c.Store.Driver {
	case StorePostgres:
		if c.DB.User == "" || c.DB.DBName == "" {
			return fmt.Errorf("DB_USER and DB_NAME are required for store driver %q", c.Store.Driver)
		}
	case StoreSQLite:
		if c.SQLite.Path == "" {
			return fmt.Errorf("SQLITE_PATH is required for store driver %q", c.Store.Driver)
		}
	case StoreMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("MONGO_URI is required for store driver %q", c.Store.Driver)
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.Session.PendingUpdateLimit <= 0 {
		return fmt.Errorf("SESSION_PENDING_UPDATE_LIMIT must be positive")
	}
	return nil
}

// LoadConfig reads an optional .env file (ENV_FILE, default ".env") and then
// the process environment. Variables already set in the environment win.
func LoadConfig() (Config, error) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:            "8889", // Test port
			ShutdownTimeout: 5 * time.Second,
		},
		Store: StoreConfig{Driver: StorePostgres},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 10,
		},
		SQLite: SQLiteConfig{Path: ":memory:"},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
		Session: SessionConfig{
			PendingUpdateLimit: 256,
			ReconnectAttempts:  3,
			ReconnectBackoff:   10 * time.Millisecond,
			ReconnectCooldown:  50 * time.Millisecond,
			ActivateTimeout:    5 * time.Second,
			PermissionTimeout:  time.Second,
		},
		Breaker: BreakerConfig{
			Enabled:          true,
			FailureThreshold: 3,
			OpenTimeout:      time.Second,
			HalfOpenRequests: 1,
		},
	}
}
