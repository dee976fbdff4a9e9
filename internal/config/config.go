package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvPrefix = "smarthome"

type Config struct {
	HomeAssistant    HomeAssistantConfig `mapstructure:"home_assistant"`
	UseHomeAssistant bool                `mapstructure:"use_home_assistant"`
	DataPath         string              `mapstructure:"data_path"`
	LogLevel         string              `mapstructure:"log_level"`
	LogFormat        string              `mapstructure:"log_format"`
	HTTP             HTTPConfig          `mapstructure:"http"`
}

type HomeAssistantConfig struct {
	URL     string        `mapstructure:"url"`
	Token   string        `mapstructure:"token"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type HTTPConfig struct {
	Port uint `mapstructure:"port"`
	Log  bool `mapstructure:"log"`
}

// legacy env names still honoured after the prefixed ones
var aliases = map[string]string{
	"home_assistant.url":   "HOME_ASSISTANT_URL",
	"home_assistant.token": "HOME_ASSISTANT_TOKEN",
	"use_home_assistant":   "USE_HOME_ASSISTANT",
	"http.port":            "PORT",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("home_assistant.url", "")
	v.SetDefault("home_assistant.token", "")
	v.SetDefault("home_assistant.timeout", 10*time.Second)
	v.SetDefault("use_home_assistant", false)
	v.SetDefault("data_path", "data/smarthome.json")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("http.port", 3000)
	v.SetDefault("http.log", false)
}

// Load reads .env (if present), the optional YAML file and the environment,
// in increasing order of precedence. An empty file falls back to CONFIG_FILE.
func Load(file string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, legacy := range aliases {
		prefixed := strings.ToUpper(EnvPrefix + "_" + strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, legacy); err != nil {
			return nil, err
		}
	}

	if file == "" {
		file = os.Getenv("CONFIG_FILE")
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.HomeAssistant.URL = strings.TrimRight(cfg.HomeAssistant.URL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.HTTP.Port == 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("config param http.port must be in 1..65535, got %d", c.HTTP.Port)
	}
	if c.HomeAssistant.Timeout <= 0 {
		return errors.New("config param home_assistant.timeout must be > 0")
	}
	if c.DataPath == "" {
		return errors.New("config param data_path must not be empty")
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("config param log_format must be json or console, got %q", c.LogFormat)
	}
	if c.HomeAssistant.URL != "" {
		u, err := url.Parse(c.HomeAssistant.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config param home_assistant.url is not an absolute URL: %q", c.HomeAssistant.URL)
		}
	}
	return nil
}

// HomeAssistantConfigured reports whether both URL and token are set.
func (c *Config) HomeAssistantConfigured() bool {
	return c.HomeAssistant.URL != "" && c.HomeAssistant.Token != ""
}

// Redacted returns a copy safe to log.
func (c Config) Redacted() Config {
	if c.HomeAssistant.Token != "" {
		c.HomeAssistant.Token = "*redacted*"
	}
	return c
}
