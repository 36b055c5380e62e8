package config

import (
	"flag"
	"os"
	"path/filepath"
	"regexp"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	DefaultAuthSecret   = "dev-secret-key"
	DefaultBaseURL      = "localhost:8081"
	DefaultUploadDir    = "storage"
	DefaultUploadMaxMB  = 2
	DefaultRateLimitRPS = 100
)

type Config struct {
	// Server-side settings
	DatabaseDSN  string  `env:"DATABASE_URI"`
	AuthSecret   string  `env:"AUTH_SECRET"`
	UploadDir    string  `env:"UPLOAD_DIR"`
	UploadMaxMB  int64   `env:"UPLOAD_MAX_MB"`
	RateLimitRPS float64 `env:"RATE_LIMIT_RPS"` // < 0 выключает ограничение
	LogJSON      bool    `env:"LOG_JSON"`

	// Shared settings
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`

	// Client-side settings
	ServerURL string `env:"-"`
	TokenFile string `env:"TOKEN_FILE"`
	Version   bool   `env:"-"` // show client version and exit (flag only)
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags работают ТОЛЬКО если переменные из env не заданы
	// Server flags
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД (postgres DSN или путь к SQLite)")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT")
	flag.StringVar(&cfg.UploadDir, "upload-dir", cfg.UploadDir, "каталог для загруженных фото")
	flag.Int64Var(&cfg.UploadMaxMB, "upload-max-mb", cfg.UploadMaxMB, "максимальный размер фото, МБ")
	flag.Float64Var(&cfg.RateLimitRPS, "rps", cfg.RateLimitRPS, "лимит запросов к API в секунду (<0 — без лимита)")
	flag.BoolVar(&cfg.LogJSON, "log-json", cfg.LogJSON, "логи в JSON (production)")
	// Shared/client flags
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "address of the FriendKeeper server (host:port)")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "enable HTTPS (client: prefer https scheme for BaseURL)")
	// Client flags
	flag.StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "path to auth token file (client)")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")

	flag.Parse()

	applyDefaults(cfg)
	return cfg
}

var hostPortRe = regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)

func applyDefaults(cfg *Config) {
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = DefaultAuthSecret
	}
	// BaseURL должен быть вида "address:port" (без схемы и пути), иначе берём значение по умолчанию
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.EnableHTTPS {
		cfg.ServerURL = "https://" + cfg.BaseURL
	} else {
		cfg.ServerURL = "http://" + cfg.BaseURL
	}

	if cfg.UploadDir == "" {
		cfg.UploadDir = DefaultUploadDir
	}
	if cfg.UploadMaxMB <= 0 {
		cfg.UploadMaxMB = DefaultUploadMaxMB
	}
	if cfg.RateLimitRPS == 0 {
		cfg.RateLimitRPS = DefaultRateLimitRPS
	}

	if cfg.TokenFile == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			cfg.TokenFile = filepath.Join(dir, "FriendKeeper", "auth_token")
		} else {
			home, _ := os.UserHomeDir()
			cfg.TokenFile = filepath.Join(home, ".friendkeeper_token")
		}
	}
}

// UploadMaxBytes — предел размера загружаемого файла в байтах.
func (c *Config) UploadMaxBytes() int64 {
	return c.UploadMaxMB << 20
}
