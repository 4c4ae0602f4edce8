package config

import (
	"flag"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server-side settings
	DatabaseDSN    string `env:"DATABASE_URI"`
	AuthSecret     string `env:"AUTH_SECRET"`
	PublicURL      string `env:"PUBLIC_URL"`
	ImageMaxSizeMB int    `env:"IMAGE_MAX_MB"`

	// Image storage in an S3-compatible bucket; DB storage when S3Bucket is empty
	S3Bucket    string `env:"S3_BUCKET"`
	S3Region    string `env:"S3_REGION"`
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`

	// Shared settings
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`
	Debug       bool   `env:"DEBUG"`

	// Client-side settings
	ServerURL     string        `env:"-"`
	ClientDir     string        `env:"CLIENT_DIR"`
	HTTPTimeout   time.Duration `env:"HTTP_TIMEOUT"`
	SearchTimeout time.Duration `env:"SEARCH_TIMEOUT"`
	Version       bool          `env:"-"` // show client version and exit (flag only)
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// флаги работают ТОЛЬКО если переменные из env не заданы
	// Server flags
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД (postgres://... или sqlite://path)")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT")
	flag.StringVar(&cfg.PublicURL, "public-url", cfg.PublicURL, "внешний адрес сервера для ссылок на картинки")
	flag.IntVar(&cfg.ImageMaxSizeMB, "image-max-mb", cfg.ImageMaxSizeMB, "максимальный размер картинки, МБ")
	flag.StringVar(&cfg.S3Bucket, "s3-bucket", cfg.S3Bucket, "S3 bucket for images (empty: store in DB)")
	flag.StringVar(&cfg.S3Region, "s3-region", cfg.S3Region, "S3 region")
	flag.StringVar(&cfg.S3Endpoint, "s3-endpoint", cfg.S3Endpoint, "S3 endpoint, e.g. http://127.0.0.1:9000")
	// Shared/client flags
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "address of the ListKeeper server (host:port)")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "enable HTTPS (client: prefer https scheme for BaseURL)")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "verbose logging")
	// Client flags
	flag.StringVar(&cfg.ClientDir, "client-dir", cfg.ClientDir, "directory for the client auth token and profile")
	flag.DurationVar(&cfg.HTTPTimeout, "http-timeout", cfg.HTTPTimeout, "client request timeout")
	flag.DurationVar(&cfg.SearchTimeout, "search-timeout", cfg.SearchTimeout, "timeout of a single search query")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")

	flag.Parse()

	cfg.applyDefaults()
	return cfg
}

var hostPortRe = regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)

func (cfg *Config) applyDefaults() {
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = "dev-secret-key"
	}
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = "sqlite://listkeeper.db"
	}
	if cfg.ImageMaxSizeMB <= 0 {
		cfg.ImageMaxSizeMB = 10
	}
	if cfg.S3Region == "" {
		cfg.S3Region = "us-east-1"
	}
	// BaseURL: только "address:port" (без схемы и пути), иначе значение по умолчанию.
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = "localhost:8081"
	}

	if cfg.EnableHTTPS {
		cfg.ServerURL = "https://" + cfg.BaseURL
	} else {
		cfg.ServerURL = "http://" + cfg.BaseURL
	}
	if cfg.PublicURL == "" {
		cfg.PublicURL = cfg.ServerURL
	}

	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 15 * time.Second
	}
	if cfg.SearchTimeout <= 0 {
		cfg.SearchTimeout = 10 * time.Second
	}
	if cfg.ClientDir == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			cfg.ClientDir = filepath.Join(dir, "ListKeeper")
		} else {
			home, _ := os.UserHomeDir()
			cfg.ClientDir = filepath.Join(home, ".listkeeper")
		}
	}
}
