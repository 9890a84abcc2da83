package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aussiebroadwan/iic/pkg/jwtx"
	"github.com/ilyakaznacheev/cleanenv"
)

// Store drivers.
const (
	DriverSQLite  = "sqlite"
	DriverMongoDB = "mongodb"
)

type Config struct {
	// Google OAuth2 client
	GoogleClientID     string        `yaml:"client_id" env:"CLIENT_ID"`
	GoogleClientSecret string        `yaml:"client_secret" env:"CLIENT_SECRET"`
	GoogleRedirectURI  string        `yaml:"redirect_uri" env:"REDIRECT_URI"`
	GoogleHTTPTimeout  time.Duration `yaml:"google_http_timeout" env:"GOOGLE_HTTP_TIMEOUT" env-default:"10s"`

	// Token signing. Each secret must be at least jwtx.MinSecretLength bytes.
	ProviderSecret     string        `yaml:"jwt_secret" env:"JWT_SECRET"`
	AccessSecret       string        `yaml:"access_token_secret" env:"ACCESS_TOKEN_SECRET"`
	RefreshSecret      string        `yaml:"refresh_token_secret" env:"REFRESH_TOKEN_SECRET"`
	AccessTokenExpiry  time.Duration `yaml:"access_token_expiry" env:"ACCESS_TOKEN_EXPIRY" env-default:"15m"`
	RefreshTokenExpiry time.Duration `yaml:"refresh_token_expiry" env:"REFRESH_TOKEN_EXPIRY" env-default:"168h"`
	Issuer             string        `yaml:"issuer" env:"AUTH_ISSUER" env-default:"iic-auth"`

	// Storage
	StoreDriver   string `yaml:"store_driver" env:"STORE_DRIVER" env-default:"sqlite"`
	DatabaseFile  string `yaml:"database_file" env:"AUTH_DATABASE_FILE" env-default:"auth.db"`
	MongoURI      string `yaml:"mongo_uri" env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
	MongoDatabase string `yaml:"mongo_database" env:"MONGO_DATABASE" env-default:"iic"`
	PepperFile    string `yaml:"pepper_file" env:"AUTH_PEPPER_FILE" env-default:"pepper"`

	CookieSecure bool `yaml:"cookie_secure" env:"COOKIE_SECURE" env-default:"true"`

	Env                  string        `yaml:"env" env:"ENV" env-default:"dev"`
	LogLevel             string        `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat            string        `yaml:"log_format" env:"LOG_FORMAT" env-default:"json"`
	Port                 int           `yaml:"port" env:"PORT" env-default:"8080"`
	ShutdownGracePeriod  time.Duration `yaml:"shutdown_grace_period" env:"SHUTDOWN_GRACE_PERIOD" env-default:"10s"`
	HousekeepingInterval time.Duration `yaml:"housekeeping_interval" env:"HOUSEKEEPING_INTERVAL" env-default:"1h"`
}

// LoadConfig reads the configuration from the environment. When CONFIG_PATH
// names a YAML file it is read first and the environment overrides it.
func LoadConfig() (Config, error) {
	var cfg Config

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if _, err := os.Stat(path); err != nil {
			return Config{}, fmt.Errorf("config file %q: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("read config %q: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}

	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	return cfg, cfg.Validate()
}

// Validate rejects configurations the service cannot start with.
func (c Config) Validate() error {
	var errs []error

	// JWT_SECRET only signs Google login tokens.
	secrets := []struct {
		env, value string
		required   bool
	}{
		{"JWT_SECRET", c.ProviderSecret, c.GoogleEnabled()},
		{"ACCESS_TOKEN_SECRET", c.AccessSecret, true},
		{"REFRESH_TOKEN_SECRET", c.RefreshSecret, true},
	}
	for _, s := range secrets {
		switch {
		case s.value == "" && !s.required:
		case s.value == "":
			errs = append(errs, fmt.Errorf("%s is required", s.env))
		case len(s.value) < jwtx.MinSecretLength:
			errs = append(errs, fmt.Errorf("%s must be at least %d bytes", s.env, jwtx.MinSecretLength))
		}
	}
	if c.AccessSecret != "" && c.AccessSecret == c.RefreshSecret {
		errs = append(errs, errors.New("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must differ"))
	}

	if c.AccessTokenExpiry <= 0 {
		errs = append(errs, errors.New("ACCESS_TOKEN_EXPIRY must be positive"))
	}
	if c.RefreshTokenExpiry <= 0 {
		errs = append(errs, errors.New("REFRESH_TOKEN_EXPIRY must be positive"))
	}

	switch c.StoreDriver {
	case DriverSQLite, DriverMongoDB:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}

	return errors.Join(errs...)
}

// GoogleEnabled reports whether Google credentials were configured.
func (c Config) GoogleEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != "" && c.GoogleRedirectURI != ""
}
