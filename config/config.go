package config

import (
	"errors"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Config struct {
	AppEnv         string `mapstructure:"APP_ENV"`
	AppPort        string `mapstructure:"APP_PORT"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`

	DBDriver       string `mapstructure:"DB_DRIVER"`
	DBHost         string `mapstructure:"DB_HOST"`
	DBPort         string `mapstructure:"DB_PORT"`
	DBUser         string `mapstructure:"DB_USER"`
	DBPassword     string `mapstructure:"DB_PASSWORD"`
	DBName         string `mapstructure:"DB_NAME"`
	DBSSLMode      string `mapstructure:"DB_SSLMODE"`
	DBPath         string `mapstructure:"DB_PATH"`
	DBMaxIdleConns int    `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBMaxOpenConns int    `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBLogLevel     string `mapstructure:"DB_LOG_LEVEL"`

	NATSURL             string `mapstructure:"NATS_URL"`
	NATSSubjectPrefix   string `mapstructure:"NATS_SUBJECT_PREFIX"`
	EventsEnabled       bool   `mapstructure:"EVENTS_ENABLED"`
	EventPollIntervalMs int    `mapstructure:"EVENT_POLL_INTERVAL_MS"`
	EventBatchSize      int    `mapstructure:"EVENT_BATCH_SIZE"`

	JWTSecret          string `mapstructure:"JWT_SECRET"`
	JWTExpirationHours int    `mapstructure:"JWT_EXPIRATION_HOURS"`
}

var defaults = map[string]interface{}{
	"APP_ENV":         "development",
	"APP_PORT":        "8080",
	"ALLOWED_ORIGINS": "*",

	"DB_DRIVER":         "postgres",
	"DB_HOST":           "localhost",
	"DB_PORT":           "5432",
	"DB_USER":           "taskboard",
	"DB_PASSWORD":       "taskboard",
	"DB_NAME":           "taskboard",
	"DB_SSLMODE":        "disable",
	"DB_PATH":           "taskboard.db",
	"DB_MAX_IDLE_CONNS": 10,
	"DB_MAX_OPEN_CONNS": 100,
	"DB_LOG_LEVEL":      "warn",

	"NATS_URL":               "nats://localhost:4222",
	"NATS_SUBJECT_PREFIX":    "taskboard",
	"EVENTS_ENABLED":         true,
	"EVENT_POLL_INTERVAL_MS": 1000,
	"EVENT_BATCH_SIZE":       100,

	"JWT_SECRET":           "your-super-secret-key-change-this-in-production",
	"JWT_EXPIRATION_HOURS": 24,
}

// Load reads configuration from, in increasing precedence: built-in
// defaults, an optional config.yaml, a .env file and the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		zap.L().Debug(".env file not found, using environment variables")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			zap.L().Warn("failed to read config file, continuing with defaults", zap.Error(err))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		zap.L().Warn("failed to decode configuration, using defaults", zap.Error(err))
		return fromDefaults()
	}

	zap.L().Info("configuration loaded",
		zap.String("env", cfg.AppEnv),
		zap.String("db_driver", cfg.DBDriver),
		zap.Bool("events_enabled", cfg.EventsEnabled),
	)
	return cfg
}

func fromDefaults() Config {
	return Config{
		AppEnv:              defaults["APP_ENV"].(string),
		AppPort:             defaults["APP_PORT"].(string),
		AllowedOrigins:      defaults["ALLOWED_ORIGINS"].(string),
		DBDriver:            defaults["DB_DRIVER"].(string),
		DBHost:              defaults["DB_HOST"].(string),
		DBPort:              defaults["DB_PORT"].(string),
		DBUser:              defaults["DB_USER"].(string),
		DBPassword:          defaults["DB_PASSWORD"].(string),
		DBName:              defaults["DB_NAME"].(string),
		DBSSLMode:           defaults["DB_SSLMODE"].(string),
		DBPath:              defaults["DB_PATH"].(string),
		DBMaxIdleConns:      defaults["DB_MAX_IDLE_CONNS"].(int),
		DBMaxOpenConns:      defaults["DB_MAX_OPEN_CONNS"].(int),
		DBLogLevel:          defaults["DB_LOG_LEVEL"].(string),
		NATSURL:             defaults["NATS_URL"].(string),
		NATSSubjectPrefix:   defaults["NATS_SUBJECT_PREFIX"].(string),
		EventsEnabled:       defaults["EVENTS_ENABLED"].(bool),
		EventPollIntervalMs: defaults["EVENT_POLL_INTERVAL_MS"].(int),
		EventBatchSize:      defaults["EVENT_BATCH_SIZE"].(int),
		JWTSecret:           defaults["JWT_SECRET"].(string),
		JWTExpirationHours:  defaults["JWT_EXPIRATION_HOURS"].(int),
	}
}
