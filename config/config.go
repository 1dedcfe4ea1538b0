package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App        AppConfig
	Logger     LoggerConfig
	API        APIConfig
	Session    SessionConfig
	Redis      RedisConfig
	Cloudinary CloudinaryConfig
}

type AppConfig struct {
	AppEnv string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type APIConfig struct {
	BaseURL         string
	RequestTimeout  time.Duration
	ProductPageSize int
}

type SessionConfig struct {
	DBPath string
}

type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	Prefix   string
}

type CloudinaryConfig struct {
	URL    string
	Folder string
}

func LoadEnv() *Config {
	return &Config{
		App: AppConfig{
			AppEnv: getEnv("APP_ENV", "dev"),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "warn"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", true),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		API: APIConfig{
			BaseURL:         strings.TrimRight(getEnv("STOREFRONT_API_URL", "http://localhost:8000"), "/"),
			RequestTimeout:  getEnvDuration("STOREFRONT_REQUEST_TIMEOUT", 15*time.Second),
			ProductPageSize: getEnvInt("STOREFRONT_PRODUCT_PAGE_SIZE", 100),
		},
		Session: SessionConfig{
			DBPath: getEnv("STOREFRONT_SESSION_DB", defaultSessionPath()),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			Prefix:   getEnv("REDIS_PREFIX", "storefront"),
		},
		Cloudinary: CloudinaryConfig{
			URL:    getEnv("CLOUDINARY_URL", ""),
			Folder: getEnv("CLOUDINARY_FOLDER", "products"),
		},
	}
}

// defaultSessionPath keeps the session file next to the user's other config so a
// new shell picks up the same login.
func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "storefront-session.db"
	}
	return dir + string(os.PathSeparator) + "storefront" + string(os.PathSeparator) + "session.db"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

// getEnvDuration accepts Go duration strings ("20s") or a bare number of seconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return fallback
}
