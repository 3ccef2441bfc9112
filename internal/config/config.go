package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	LocalStoreSQLite = "sqlite"
	LocalStoreRedis  = "redis"
)

type Config struct {
	ProjectID   string
	Region      string
	LogLevel    string
	Port        string
	KMSKeyName  string
	VertexModel string

	LocalStore    string
	DataDir       string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	ContentCollection   string
	ContentDoc          string
	ContentFetchTimeout time.Duration

	GatewayTimeout     time.Duration
	GatewayFailureRate float64
	TimeZone           string

	ToastCapacity   int
	ChimeURL        string
	DefaultLanguage string

	AssistantRate  float64
	AssistantBurst int
}

// New reads configuration from the environment, with an optional
// config.yaml in the working directory for local runs. A missing file is
// fine; a malformed one is an error.
func New() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("REGION", "asia-south1")
	v.SetDefault("LOGLEVEL", "info")
	v.SetDefault("PORT", "8080")
	v.SetDefault("VERTEXMODEL", "gemini-2.5-pro")
	v.SetDefault("LOCALSTORE", LocalStoreSQLite)
	v.SetDefault("DATADIR", "./data")
	v.SetDefault("REDISADDR", "localhost:6379")
	v.SetDefault("REDISDB", 0)
	v.SetDefault("CONTENTCOLLECTION", "appData")
	v.SetDefault("CONTENTDOC", "v1")
	v.SetDefault("CONTENTFETCHTIMEOUT", "8s")
	v.SetDefault("GATEWAYTIMEOUT", "10s")
	v.SetDefault("GATEWAYFAILURERATE", 0.1)
	v.SetDefault("TIMEZONE", "Asia/Dhaka")
	v.SetDefault("TOASTCAPACITY", 50)
	v.SetDefault("CHIMEURL", "https://assets.mixkit.co/active_storage/sfx/2869/2869-preview.mp3")
	v.SetDefault("DEFAULTLANGUAGE", "bn")
	v.SetDefault("ASSISTANTRATE", 1.0)
	v.SetDefault("ASSISTANTBURST", 5)
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		ProjectID:           v.GetString("PROJECTID"),
		Region:              v.GetString("REGION"),
		LogLevel:            v.GetString("LOGLEVEL"),
		Port:                v.GetString("PORT"),
		KMSKeyName:          v.GetString("KMSKEYNAME"),
		VertexModel:         v.GetString("VERTEXMODEL"),
		LocalStore:          strings.ToLower(v.GetString("LOCALSTORE")),
		DataDir:             v.GetString("DATADIR"),
		RedisAddr:           v.GetString("REDISADDR"),
		RedisPassword:       v.GetString("REDISPASSWORD"),
		RedisDB:             v.GetInt("REDISDB"),
		ContentCollection:   v.GetString("CONTENTCOLLECTION"),
		ContentDoc:          v.GetString("CONTENTDOC"),
		ContentFetchTimeout: v.GetDuration("CONTENTFETCHTIMEOUT"),
		GatewayTimeout:      v.GetDuration("GATEWAYTIMEOUT"),
		GatewayFailureRate:  v.GetFloat64("GATEWAYFAILURERATE"),
		TimeZone:            v.GetString("TIMEZONE"),
		ToastCapacity:       v.GetInt("TOASTCAPACITY"),
		ChimeURL:            v.GetString("CHIMEURL"),
		DefaultLanguage:     strings.ToLower(v.GetString("DEFAULTLANGUAGE")),
		AssistantRate:       v.GetFloat64("ASSISTANTRATE"),
		AssistantBurst:      v.GetInt("ASSISTANTBURST"),
	}
}

// Location resolves TimeZone, falling back to UTC+6 when the zone database
// is unavailable in the container.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.FixedZone("BDT", 6*60*60)
	}
	return loc
}
