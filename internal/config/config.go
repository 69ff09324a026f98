// Package config resolves process configuration from the environment once
// at start-up. The resulting Config is read-only.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
	EnvMock        = "mock"
)

const (
	devContentAPI  = "http://localhost:8080/api"
	prodContentAPI = "https://api.asomap.com/api"
)

type Config struct {
	Env  string `validate:"oneof=development staging production mock"`
	Addr string `validate:"required"`

	ContentAPIURL  string        `validate:"required,abs_http"`
	MediaBaseURL   string        `validate:"omitempty,abs_http"`
	ContentTimeout time.Duration `validate:"gt=0"`
	ContentMock    bool
	ContentRPS     float64 `validate:"gte=0"`

	PaginationMaxPages  int `validate:"min=1,max=10000"`
	EmptyStringAsAbsent bool

	DBDSN          string
	InternalSecret string
	CORSOrigins    []string
	EnableHSTS     bool
	RateLimitRPS   float64 `validate:"gte=0"`
	LogLevel       string  `validate:"oneof=debug info warn error"`
	DriftFlush     time.Duration `validate:"gte=0"`
}

var validate = func() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("abs_http", func(fl validator.FieldLevel) bool {
		u, err := url.Parse(fl.Field().String())
		return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
	})
	return v
}()

// LoadEnvFiles loads .env then .env.local. Variables already present in the
// process environment win.
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load reads Config from the environment and validates it.
func Load() (Config, error) {
	var errs []error

	env := strings.ToLower(getEnv("APP_ENV", EnvDevelopment))
	apiDefault := prodContentAPI
	if env == EnvDevelopment || env == EnvMock {
		apiDefault = devContentAPI
	}
	logDefault := "info"
	if env == EnvDevelopment {
		logDefault = "debug"
	}

	cfg := Config{
		Env:            env,
		Addr:           getEnv("APP_ADDR", ":8080"),
		ContentAPIURL:  strings.TrimRight(getEnv("CONTENT_API_URL", apiDefault), "/"),
		MediaBaseURL:   getEnv("MEDIA_BASE_URL", ""),
		InternalSecret: getEnv("INTERNAL_SECRET", ""),
		DBDSN:          getEnv("DB_DSN", ""),
		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "")),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", logDefault)),
	}
	cfg.ContentTimeout = getDuration("CONTENT_TIMEOUT", 10*time.Second, &errs)
	cfg.ContentMock = getBool("CONTENT_MOCK", env == EnvMock, &errs)
	cfg.ContentRPS = getFloat("CONTENT_RPS", 0, &errs)
	cfg.PaginationMaxPages = getInt("PAGINATION_MAX_PAGES", 100, &errs)
	cfg.EmptyStringAsAbsent = getBool("EMPTY_STRING_AS_ABSENT", true, &errs)
	cfg.EnableHSTS = getBool("ENABLE_HSTS", false, &errs)
	cfg.RateLimitRPS = getFloat("RATE_LIMIT_RPS", 20, &errs)
	cfg.DriftFlush = getDuration("DRIFT_FLUSH_INTERVAL", time.Minute, &errs)

	if cfg.MediaBaseURL == "" {
		cfg.MediaBaseURL = origin(cfg.ContentAPIURL)
	}

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Field(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// Mock reports whether content is served from static defaults only.
func (c Config) Mock() bool { return c.ContentMock }

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBool(key string, def bool, errs *[]error) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return b
}

func getInt(key string, def int, errs *[]error) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return n
}

func getFloat(key string, def float64, errs *[]error) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return f
}

func getDuration(key string, def time.Duration, errs *[]error) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return d
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func origin(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// RedactDSN hides credentials in a Postgres DSN for logging.
func RedactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
