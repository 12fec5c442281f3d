package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode     string `mapstructure:"mode"`
	Handlers struct {
		Prometheus struct {
			Port string `mapstructure:"port"`
		} `mapstructure:"prometheus"`
	} `mapstructure:"handlers"`
	Server struct {
		HTTPPort        string        `mapstructure:"HTTPPort"`
		ReadTimeout     time.Duration `mapstructure:"readTimeout"`
		WriteTimeout    time.Duration `mapstructure:"writeTimeout"`
		IdleTimeout     time.Duration `mapstructure:"idleTimeout"`
		RequestTimeout  time.Duration `mapstructure:"requestTimeout"`
		ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"`
		RateLimit       struct {
			Requests int           `mapstructure:"requests"`
			Window   time.Duration `mapstructure:"window"`
		} `mapstructure:"rateLimit"`
	} `mapstructure:"server"`
	Cors struct {
		AllowedOrigins []string `mapstructure:"allowedOrigins"`
		MaxAge         int      `mapstructure:"maxAge"`
	} `mapstructure:"cors"`
	Itinerary Itinerary `mapstructure:"itinerary"`
	Places    Places    `mapstructure:"places"`
	Cache     Cache     `mapstructure:"cache"`
	AI        AI        `mapstructure:"ai"`
}

type Itinerary struct {
	MaxDays      int `mapstructure:"maxDays"`
	MaxTravelers int `mapstructure:"maxTravelers"`
	Currency     struct {
		Code           string  `mapstructure:"code"`
		Symbol         string  `mapstructure:"symbol"`
		Locale         string  `mapstructure:"locale"`
		ConversionRate float64 `mapstructure:"conversionRate"`
	} `mapstructure:"currency"`
}

type Places struct {
	Provider       string         `mapstructure:"provider"`
	BaseURL        string         `mapstructure:"baseURL"`
	Radius         uint           `mapstructure:"radius"`
	MinRating      float64        `mapstructure:"minRating"`
	GeocodeTimeout time.Duration  `mapstructure:"geocodeTimeout"`
	LookupDeadline time.Duration  `mapstructure:"lookupDeadline"`
	Concurrency    int            `mapstructure:"concurrency"`
	Limits         map[string]int `mapstructure:"limits"`
}

type Cache struct {
	Backend         string        `mapstructure:"backend"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanupInterval"`
	Redis           struct {
		Addr string `mapstructure:"addr"`
		DB   int    `mapstructure:"db"`
	} `mapstructure:"redis"`
}

type AI struct {
	Provider    string        `mapstructure:"provider"`
	Model       string        `mapstructure:"model"`
	BaseURL     string        `mapstructure:"baseURL"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Temperature float32       `mapstructure:"temperature"`
}

// Secrets are read from the environment only and never from config files.
type Secrets struct {
	GoogleMapsAPIKey string `env:"GOOGLE_MAPS_API_KEY"`
	GeminiAPIKey     string `env:"GOOGLE_GEMINI_API_KEY"`
	PerplexityAPIKey string `env:"PERPLEXITY_API_KEY"`
	RedisPassword    string `env:"REDIS_PASSWORD"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	v.SetEnvPrefix("ITINERARY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		log.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.applyDefaults()
	log.Println("Successfully loaded app configs...")
	return config, nil
}

// Default returns the embedded configuration. Used by tests and the CLI.
func Default() Config {
	var config Config
	v := viper.New()
	v.SetConfigType("yml")
	if err := v.ReadConfig(bytes.NewReader(embeddedConfig)); err == nil {
		_ = v.Unmarshal(&config)
	}
	config.applyDefaults()
	return config
}

func LoadSecrets() (Secrets, error) {
	var s Secrets
	if err := env.Parse(&s); err != nil {
		return Secrets{}, fmt.Errorf("failed to parse secrets from environment: %w", err)
	}
	return s, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == "" {
		c.Server.HTTPPort = "8000"
	}
	if c.Server.RateLimit.Window <= 0 {
		c.Server.RateLimit.Window = time.Minute
	}
	if c.Itinerary.MaxDays <= 0 {
		c.Itinerary.MaxDays = 30
	}
	if c.Itinerary.MaxTravelers <= 0 {
		c.Itinerary.MaxTravelers = 10
	}
	if c.Itinerary.Currency.Code == "" {
		c.Itinerary.Currency.Code = "INR"
		c.Itinerary.Currency.Symbol = "₹"
	}
	if c.Itinerary.Currency.Locale == "" {
		c.Itinerary.Currency.Locale = "en-IN"
	}
	if c.Itinerary.Currency.ConversionRate <= 0 {
		c.Itinerary.Currency.ConversionRate = 1
	}
	if c.Places.MinRating <= 0 {
		c.Places.MinRating = 3.5
	}
	if c.Places.Radius == 0 {
		c.Places.Radius = 5000
	}
	if c.Places.LookupDeadline <= 0 {
		c.Places.LookupDeadline = 6 * time.Second
	}
	if c.Places.GeocodeTimeout <= 0 {
		c.Places.GeocodeTimeout = 3 * time.Second
	}
	if c.Places.Concurrency <= 0 {
		c.Places.Concurrency = 4
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = 24 * time.Hour
	}
	if c.Cache.CleanupInterval <= 0 {
		c.Cache.CleanupInterval = time.Hour
	}
	if c.AI.Timeout <= 0 {
		c.AI.Timeout = 8 * time.Second
	}
}
