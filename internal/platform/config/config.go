package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "BARKDAY"

// DefaultGiftFeedURL es el feed público de regalos.
const DefaultGiftFeedURL = "https://barkday.app/data/gift_feed.json"

type Config struct {
	HTTP  HTTPConfig  `mapstructure:"http"`
	Log   LogConfig   `mapstructure:"log"`
	App   AppConfig   `mapstructure:"app"`
	Data  DataConfig  `mapstructure:"data"`
	Gifts GiftsConfig `mapstructure:"gifts"`
	Redis RedisConfig `mapstructure:"redis"`
	DB    DBConfig    `mapstructure:"db"`
	Auth  AuthConfig  `mapstructure:"auth"`
}

type HTTPConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
}

// DataConfig: de dónde salen las tablas de referencia.
// Si BaseURL está seteado se bajan por HTTP; si no, se leen de Dir.
type DataConfig struct {
	Dir     string        `mapstructure:"dir"`
	BaseURL string        `mapstructure:"base_url"`
	Watch   bool          `mapstructure:"watch"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// GiftsConfig: File tiene prioridad sobre FeedURL.
type GiftsConfig struct {
	FeedURL  string        `mapstructure:"feed_url"`
	File     string        `mapstructure:"file"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// RedisConfig: Addr vacío = sin cache.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// DBConfig: DSN vacío = repos in-memory.
type DBConfig struct {
	DSN string `mapstructure:"dsn"`
}

// AuthConfig: VerifyURL vacío = modo dev (header X-Debug-User-ID).
type AuthConfig struct {
	VerifyURL string        `mapstructure:"verify_url"`
	APIKey    string        `mapstructure:"api_key"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// Unmarshal solo ve las claves que viper conoce, por eso todas tienen default.
func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.read_timeout", 5*time.Second)
	v.SetDefault("http.write_timeout", 10*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("app.name", "barkday")

	v.SetDefault("data.dir", "data")
	v.SetDefault("data.base_url", "")
	v.SetDefault("data.watch", false)
	v.SetDefault("data.timeout", 10*time.Second)

	v.SetDefault("gifts.feed_url", DefaultGiftFeedURL)
	v.SetDefault("gifts.file", "")
	v.SetDefault("gifts.cache_ttl", 10*time.Minute)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("db.dsn", "")

	v.SetDefault("auth.verify_url", "")
	v.SetDefault("auth.api_key", "")
	v.SetDefault("auth.timeout", 5*time.Second)
}

// Load arma la config: defaults, archivo YAML opcional (path vacío = sin archivo)
// y variables BARKDAY_*. También respeta PORT y DB_DSN como en despliegues viejos.
func Load(path string) (Config, error) {
	v := newViper()

	if p := strings.TrimSpace(path); p != "" {
		v.SetConfigFile(p)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %q: %w", p, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}

	explicitAddr := v.InConfig("http.addr") || os.Getenv(envPrefix+"_HTTP_ADDR") != ""
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" && !explicitAddr {
		cfg.HTTP.Addr = ":" + port
	}
	if dsn := strings.TrimSpace(os.Getenv("DB_DSN")); dsn != "" && cfg.DB.DSN == "" {
		cfg.DB.DSN = dsn
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromEnv usa BARKDAY_CONFIG como path del archivo, si está.
func FromEnv() (Config, error) {
	return Load(os.Getenv(envPrefix + "_CONFIG"))
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.HTTP.Addr) == "" {
		return fmt.Errorf("config: http.addr is required")
	}
	if strings.TrimSpace(c.Data.Dir) == "" && strings.TrimSpace(c.Data.BaseURL) == "" {
		return fmt.Errorf("config: data.dir or data.base_url is required")
	}
	if c.Gifts.CacheTTL < 0 {
		return fmt.Errorf("config: gifts.cache_ttl must not be negative")
	}
	return nil
}
