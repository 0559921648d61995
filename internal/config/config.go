package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// persist_failure values.
const (
	PersistDrop      = "drop"
	PersistBroadcast = "broadcast"
)

type StoreConfig struct {
	Driver    string `mapstructure:"driver"`
	Path      string `mapstructure:"path"`
	RedisAddr string `mapstructure:"redis_addr"`
}

type Config struct {
	Mode            string        `mapstructure:"mode"`
	Port            int           `mapstructure:"port"`
	StaticPath      string        `mapstructure:"static_path"`
	ReadLimit       int64         `mapstructure:"read_limit"`
	PingPeriod      time.Duration `mapstructure:"ping_period"`
	SendBuffer      int           `mapstructure:"send_buffer"`
	Secret          string        `mapstructure:"secret"`
	LogLevel        string        `mapstructure:"log_level"`
	BotName         string        `mapstructure:"bot_name"`
	WelcomeText     string        `mapstructure:"welcome_text"`
	TimestampLayout string        `mapstructure:"timestamp_layout"`
	MaxMessageLen   int           `mapstructure:"max_message_len"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	PersistFailure  string        `mapstructure:"persist_failure"`
	PersistTimeout  time.Duration `mapstructure:"persist_timeout"`
	Store           StoreConfig   `mapstructure:"store"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("static_path", "./web")
	v.SetDefault("read_limit", 32768)
	v.SetDefault("ping_period", "54s")
	v.SetDefault("send_buffer", 64)
	v.SetDefault("secret", "relay-dev-secret")
	v.SetDefault("log_level", "info")
	v.SetDefault("bot_name", "Relay Bot")
	v.SetDefault("welcome_text", "Welcome to Relay!")
	v.SetDefault("timestamp_layout", "15:04")
	v.SetDefault("max_message_len", 2000)
	v.SetDefault("allowed_origins", []string{"*"})
	v.SetDefault("persist_failure", PersistDrop)
	v.SetDefault("persist_timeout", "5s")
	v.SetDefault("store.driver", "badger")
	v.SetDefault("store.path", "")
	v.SetDefault("store.redis_addr", "localhost:6379")
}

// Load reads config/config.<CONFIG_ENV>.yaml on top of the defaults.
// RELAY_* environment variables override both.
func Load() (*Config, error) {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	return LoadFile(fmt.Sprintf("config/config.%s.yaml", env))
}

func LoadFile(fileName string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(fileName)
	v.SetEnvPrefix("relay")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.PersistFailure != PersistDrop && cfg.PersistFailure != PersistBroadcast {
		return nil, fmt.Errorf("persist_failure must be drop or broadcast, got %q", cfg.PersistFailure)
	}
	log.Info().Str("module", "config").Str("mode", cfg.Mode).Int("port", cfg.Port).Str("store", cfg.Store.Driver).Msg("config ready")
	return &cfg, nil
}

// Default is the configuration used when nothing else is available.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}
