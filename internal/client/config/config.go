package config

import (
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/samber/oops"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "LOSTFOUND_"

// Config holds runtime settings of the terminal client.
type Config struct {
	StorePath string `env:"STORE_PATH"`
	LogFormat string `env:"LOG_FORMAT"`
	LogLevel  string `env:"LOG_LEVEL"`

	AuthDelay             time.Duration `env:"AUTH_DELAY"`
	LoginRedirectDelay    time.Duration `env:"LOGIN_REDIRECT_DELAY"`
	RegisterRedirectDelay time.Duration `env:"REGISTER_REDIRECT_DELAY"`
	SocialConnectDelay    time.Duration `env:"SOCIAL_CONNECT_DELAY"`
	SocialRedirectDelay   time.Duration `env:"SOCIAL_REDIRECT_DELAY"`

	NotificationDuration time.Duration `env:"NOTIFICATION_DURATION"`
	NotificationFade     time.Duration `env:"NOTIFICATION_FADE"`
	NotificationAppear   time.Duration `env:"NOTIFICATION_APPEAR"`

	CatalogFile  string        `env:"CATALOG_FILE"`
	DemoUserName string        `env:"DEMO_USER_NAME"`
	DemoAvatar   string        `env:"DEMO_AVATAR"`
	TokenTTL     time.Duration `env:"TOKEN_TTL"`
}

// LoadDefaults populates c with the stock settings.
func (c *Config) LoadDefaults() {
	c.StorePath = "lostfound.db"
	c.LogFormat = "text"
	c.LogLevel = "warn"

	c.AuthDelay = 1500 * time.Millisecond
	c.LoginRedirectDelay = 1500 * time.Millisecond
	c.RegisterRedirectDelay = 2000 * time.Millisecond
	c.SocialConnectDelay = 1500 * time.Millisecond
	c.SocialRedirectDelay = 1000 * time.Millisecond

	c.NotificationDuration = 3000 * time.Millisecond
	c.NotificationFade = 300 * time.Millisecond
	c.NotificationAppear = 10 * time.Millisecond

	c.CatalogFile = ""
	c.DemoUserName = "John Doe"
	c.DemoAvatar = "https://randomuser.me/api/portraits/men/32.jpg"
	c.TokenTTL = 24 * time.Hour
}

// Load builds a Config from defaults, the JSON file named in args, the
// environment and the flags in args, in that order.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig loads the configuration from os.Args.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

func parseEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return oops.Code("CONFIG_ENV").Wrapf(err, "parse environment")
	}
	return nil
}
