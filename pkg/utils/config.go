package utils

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Database DatabaseConfig
	Store    StoreConfig
	Auth     AuthConfig
	TMDB     TMDBConfig
	Cache    CacheConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type HTTPConfig struct {
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	ShutdownTimeout    time.Duration
	CORSAllowedOrigins []string
	RateLimitPerMinute int
}

type DatabaseConfig struct {
	Host        string
	Port        string
	Name        string
	User        string
	Password    string
	SSLMode     string
	MaxConns    int32
	AutoMigrate bool
}

// StoreConfig picks the favorites/history/user backend.
type StoreConfig struct {
	Driver     string // memory, postgres or badger
	BadgerPath string
}

type AuthConfig struct {
	JWTSecret    string
	SessionTTL   time.Duration
	Required     bool
	CookieSecure bool
}

type TMDBConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

type CacheConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TTL           time.Duration
	MaxBytes      int64
}

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreBadger   = "badger"
)

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "moodflix")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("HTTP_READ_TIMEOUT_SECONDS", 15)
	viper.SetDefault("HTTP_WRITE_TIMEOUT_SECONDS", 30)
	viper.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 10)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 60)
	viper.SetDefault("STORE_DRIVER", StoreMemory)
	viper.SetDefault("BADGER_PATH", "data/badger")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_AUTO_MIGRATE", true)
	viper.SetDefault("SESSION_TTL_HOURS", 168)
	viper.SetDefault("AUTH_REQUIRED", true)
	viper.SetDefault("COOKIE_SECURE", false)
	viper.SetDefault("TMDB_BASE_URL", "https://api.themoviedb.org/3")
	viper.SetDefault("TMDB_TIMEOUT_SECONDS", 10)
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CACHE_TTL_SECONDS", 300)
	viper.SetDefault("CACHE_MAX_MB", 64)

	// .env is optional, plain environment variables work too
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:        seconds("HTTP_READ_TIMEOUT_SECONDS"),
			WriteTimeout:       seconds("HTTP_WRITE_TIMEOUT_SECONDS"),
			ShutdownTimeout:    seconds("SHUTDOWN_TIMEOUT_SECONDS"),
			CORSAllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
			RateLimitPerMinute: viper.GetInt("RATE_LIMIT_PER_MINUTE"),
		},
		Database: DatabaseConfig{
			Host:        viper.GetString("DB_HOST"),
			Port:        viper.GetString("DB_PORT"),
			Name:        viper.GetString("DB_NAME"),
			User:        viper.GetString("DB_USER"),
			Password:    viper.GetString("DB_PASS"),
			SSLMode:     viper.GetString("DB_SSLMODE"),
			MaxConns:    viper.GetInt32("DB_MAX_CONNS"),
			AutoMigrate: viper.GetBool("DB_AUTO_MIGRATE"),
		},
		Store: StoreConfig{
			Driver:     strings.ToLower(viper.GetString("STORE_DRIVER")),
			BadgerPath: viper.GetString("BADGER_PATH"),
		},
		Auth: AuthConfig{
			JWTSecret:    viper.GetString("JWT_SECRET"),
			SessionTTL:   time.Duration(viper.GetInt("SESSION_TTL_HOURS")) * time.Hour,
			Required:     viper.GetBool("AUTH_REQUIRED"),
			CookieSecure: viper.GetBool("COOKIE_SECURE"),
		},
		TMDB: TMDBConfig{
			APIKey:  viper.GetString("TMDB_API_KEY"),
			BaseURL: strings.TrimRight(viper.GetString("TMDB_BASE_URL"), "/"),
			Timeout: seconds("TMDB_TIMEOUT_SECONDS"),
		},
		Cache: CacheConfig{
			RedisAddr:     viper.GetString("REDIS_ADDR"),
			RedisPassword: viper.GetString("REDIS_PASSWORD"),
			RedisDB:       viper.GetInt("REDIS_DB"),
			TTL:           seconds("CACHE_TTL_SECONDS"),
			MaxBytes:      viper.GetInt64("CACHE_MAX_MB") << 20,
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreMemory, StorePostgres, StoreBadger:
	default:
		return errors.New("STORE_DRIVER must be one of memory, postgres, badger")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.Store.Driver == StorePostgres && c.Database.Name == "" {
		return errors.New("DB_NAME is required for the postgres store")
	}
	return nil
}

func seconds(key string) time.Duration {
	return time.Duration(viper.GetInt(key)) * time.Second
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
