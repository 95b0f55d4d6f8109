package conf

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/cache"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/database"
	httpx "github.com/justinloveless/hub-page-builder-sub002/pkg/http"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/log"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/storage"
	"github.com/spf13/viper"
)

type AppConfig struct {
	Log      log.Conf
	Http     httpx.Http
	Database database.Database
	Redis    cache.Redis
	Storage  storage.Storage
	GitHub   GitHubConfig `mapstructure:"github"`
	Calendar CalendarConfig
	Limits   LimitConfig
}

// GitHubConfig carries the GitHub App credential.
type GitHubConfig struct {
	AppId      string `mapstructure:"appId"`
	PrivateKey string `mapstructure:"privateKey"` // PEM, possibly escaped/quoted
	BaseURL    string `mapstructure:"baseURL"`    // override for tests, defaults to api.github.com
}

// CalendarConfig configures the read-only calendar mirrors. Outlook uses
// Graph client-credentials auth when a client id is set, otherwise the
// static token.
type CalendarConfig struct {
	GoogleAPIKey        string `mapstructure:"googleAPIKey"`
	OutlookToken        string `mapstructure:"outlookToken"`
	OutlookTenantId     string `mapstructure:"outlookTenantId"`
	OutlookClientId     string `mapstructure:"outlookClientId"`
	OutlookClientSecret string `mapstructure:"outlookClientSecret"`
	SyncSchedule        string `mapstructure:"syncSchedule"` // cron spec, empty disables background sync
}

// LimitConfig sizes admission control and the upload ceiling.
type LimitConfig struct {
	Store         string `mapstructure:"store"`         // memory or redis
	WindowSeconds int    `mapstructure:"windowSeconds"` // rate window, default 60
	Default       int    `mapstructure:"default"`       // requests per window, default 100
	Mutating      int    `mapstructure:"mutating"`      // ceiling for commit/PR actions, default 10
	MaxFileBytes  int64  `mapstructure:"maxFileBytes"`  // decoded upload ceiling, default 10 MiB
}

var (
	cfg  AppConfig
	once sync.Once
)

func NewConf(confFile string) AppConfig {
	once.Do(func() {
		var err error
		cfg, err = LoadConfigFile(confFile)
		if err != nil {
			panic(fmt.Sprintf("load conf file error: %s", err))
		}
	})
	return cfg
}

// LoadConfigFile reads and watches the config file.
func LoadConfigFile(confFile string) (AppConfig, error) {

	config := viper.New()
	config.SetConfigFile(confFile)
	if err := config.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("failed to read configuration file: %w", err)
	}

	config.WatchConfig()
	config.OnConfigChange(func(e fsnotify.Event) {
		log.Infof("configuration changed, re-reading: %s", e.Name)
		if err := config.Unmarshal(&cfg); err != nil {
			log.Errorf("failed to unmarshal configuration file: %v", err)
		}
	})
	if err := config.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal configuration file: %w", err)
	}

	applyDefaults(&cfg)

	return cfg, nil
}

func applyDefaults(c *AppConfig) {
	if c.Limits.WindowSeconds <= 0 {
		c.Limits.WindowSeconds = 60
	}
	if c.Limits.Default <= 0 {
		c.Limits.Default = 100
	}
	if c.Limits.Mutating <= 0 {
		c.Limits.Mutating = 10
	}
	if c.Limits.MaxFileBytes <= 0 {
		c.Limits.MaxFileBytes = 10 << 20
	}
	if c.Limits.Store == "" {
		c.Limits.Store = "memory"
	}
}
