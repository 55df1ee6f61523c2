package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/samber/oops"

	"github.com/dmitrijs2005/lostfound/internal/flagx"
	"github.com/dmitrijs2005/lostfound/internal/timex"
)

// JsonConfig is the on-disk form of Config. Absent keys leave the current
// value untouched.
type JsonConfig struct {
	StorePath *string `json:"store_path"`
	LogFormat *string `json:"log_format"`
	LogLevel  *string `json:"log_level"`

	AuthDelay             *timex.Duration `json:"auth_delay"`
	LoginRedirectDelay    *timex.Duration `json:"login_redirect_delay"`
	RegisterRedirectDelay *timex.Duration `json:"register_redirect_delay"`
	SocialConnectDelay    *timex.Duration `json:"social_connect_delay"`
	SocialRedirectDelay   *timex.Duration `json:"social_redirect_delay"`

	NotificationDuration *timex.Duration `json:"notification_duration"`
	NotificationFade     *timex.Duration `json:"notification_fade"`
	NotificationAppear   *timex.Duration `json:"notification_appear"`

	CatalogFile  *string         `json:"catalog_file"`
	DemoUserName *string         `json:"demo_user_name"`
	DemoAvatar   *string         `json:"demo_avatar"`
	TokenTTL     *timex.Duration `json:"token_ttl"`
}

func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return oops.Code("CONFIG_READ").With("path", path).Wrapf(err, "read config file")
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return oops.Code("CONFIG_DECODE").With("path", path).Wrapf(err, "decode config file")
	}

	setString(&cfg.StorePath, jc.StorePath)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.LogLevel, jc.LogLevel)
	setDuration(&cfg.AuthDelay, jc.AuthDelay)
	setDuration(&cfg.LoginRedirectDelay, jc.LoginRedirectDelay)
	setDuration(&cfg.RegisterRedirectDelay, jc.RegisterRedirectDelay)
	setDuration(&cfg.SocialConnectDelay, jc.SocialConnectDelay)
	setDuration(&cfg.SocialRedirectDelay, jc.SocialRedirectDelay)
	setDuration(&cfg.NotificationDuration, jc.NotificationDuration)
	setDuration(&cfg.NotificationFade, jc.NotificationFade)
	setDuration(&cfg.NotificationAppear, jc.NotificationAppear)
	setString(&cfg.CatalogFile, jc.CatalogFile)
	setString(&cfg.DemoUserName, jc.DemoUserName)
	setString(&cfg.DemoAvatar, jc.DemoAvatar)
	setDuration(&cfg.TokenTTL, jc.TokenTTL)
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *timex.Duration) {
	if v != nil {
		*dst = v.Duration
	}
}
