package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	Log      LogConfig
	HTTP     HTTPClientConfig
	Search   SearchConfig
	NASA     NASAConfig
	Geocoder GeocoderConfig
	SMTP     SMTPConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

// DatabaseConfig configures the optional report delivery log.
type DatabaseConfig struct {
	Enabled         bool
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type SessionConfig struct {
	TTL time.Duration
}

type LogConfig struct {
	Level string
}

// HTTPClientConfig applies to every upstream client. A zero Timeout means
// calls block until the remote side answers or the transport fails.
type HTTPClientConfig struct {
	Timeout time.Duration
}

// SearchConfig holds the STAC search parameters. Limit is a hard cap:
// items past it are not fetched.
type SearchConfig struct {
	URL           string
	Limit         int
	Collections   []string
	Platforms     []string
	CloudCoverMin float64
	CloudCoverMax float64
	BBoxOffset    float64
}

type NASAConfig struct {
	AssetsURL   string
	APIKey      string
	Dim         float64
	TimeLayouts []string
}

type GeocoderConfig struct {
	NominatimURL string
	UserAgent    string
	IPAPIURL     string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func setDefaults() {
	viper.SetDefault("API_HOST", "0.0.0.0")
	viper.SetDefault("API_PORT", 8080)
	viper.SetDefault("API_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")

	viper.SetDefault("DB_ENABLED", false)
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_CONNS", 5)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 2)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", 300)
	viper.SetDefault("DB_CONN_MAX_IDLE_TIME", 60)

	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", 6379)
	viper.SetDefault("SESSION_TTL", 3600)

	viper.SetDefault("HTTP_CLIENT_TIMEOUT", 0)

	viper.SetDefault("STAC_SEARCH_URL", "https://landsatlook.usgs.gov/stac-server/search")
	viper.SetDefault("STAC_LIMIT", 100)
	viper.SetDefault("STAC_COLLECTIONS", "landsat-c2l2-sr,landsat-c2l2-st")
	viper.SetDefault("STAC_PLATFORMS", "LANDSAT_8,LANDSAT_9")
	viper.SetDefault("STAC_CLOUD_COVER_MIN", 0)
	viper.SetDefault("STAC_CLOUD_COVER_MAX", 60)
	viper.SetDefault("BBOX_OFFSET", 0.2)

	viper.SetDefault("NASA_ASSETS_URL", "https://api.nasa.gov/planetary/earth/assets")
	viper.SetDefault("NASA_API_KEY", "DEMO_KEY")
	viper.SetDefault("NASA_DIM", 0.1)
	viper.SetDefault("NASA_TIME_LAYOUTS", "2006-01-02T15:04:05.999999999;2006-01-02T15:04:05;"+time.RFC3339Nano)

	viper.SetDefault("NOMINATIM_URL", "https://nominatim.openstreetmap.org")
	viper.SetDefault("NOMINATIM_USER_AGENT", "landsat-viewer")
	viper.SetDefault("IPAPI_URL", "http://ip-api.com")

	viper.SetDefault("SMTP_HOST", "smtp.gmail.com")
	viper.SetDefault("SMTP_PORT", 587)
}

func Load() (*Config, error) {
	setDefaults()
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// .env is optional; the process environment alone is enough.
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Enabled:         viper.GetBool("DB_ENABLED"),
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Session: SessionConfig{
			TTL: time.Duration(viper.GetInt("SESSION_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		HTTP: HTTPClientConfig{
			Timeout: time.Duration(viper.GetInt("HTTP_CLIENT_TIMEOUT")) * time.Second,
		},
		Search: SearchConfig{
			URL:           viper.GetString("STAC_SEARCH_URL"),
			Limit:         viper.GetInt("STAC_LIMIT"),
			Collections:   parseList(viper.GetString("STAC_COLLECTIONS"), ","),
			Platforms:     parseList(viper.GetString("STAC_PLATFORMS"), ","),
			CloudCoverMin: viper.GetFloat64("STAC_CLOUD_COVER_MIN"),
			CloudCoverMax: viper.GetFloat64("STAC_CLOUD_COVER_MAX"),
			BBoxOffset:    viper.GetFloat64("BBOX_OFFSET"),
		},
		NASA: NASAConfig{
			AssetsURL:   viper.GetString("NASA_ASSETS_URL"),
			APIKey:      viper.GetString("NASA_API_KEY"),
			Dim:         viper.GetFloat64("NASA_DIM"),
			TimeLayouts: parseList(viper.GetString("NASA_TIME_LAYOUTS"), ";"),
		},
		Geocoder: GeocoderConfig{
			NominatimURL: viper.GetString("NOMINATIM_URL"),
			UserAgent:    viper.GetString("NOMINATIM_USER_AGENT"),
			IPAPIURL:     viper.GetString("IPAPI_URL"),
		},
		SMTP: SMTPConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			Username: viper.GetString("SMTP_USERNAME"),
			Password: viper.GetString("SMTP_PASSWORD"),
			From:     viper.GetString("SMTP_FROM"),
		},
	}

	if cfg.SMTP.From == "" {
		cfg.SMTP.From = cfg.SMTP.Username
	}
	if cfg.Session.TTL <= 0 {
		cfg.Session.TTL = time.Hour
	}

	return cfg, nil
}

func parseList(s, sep string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, sep)
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
