package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// FeedSource is one RSS source the ingestor pulls archived supply from.
type FeedSource struct {
	Name       string `mapstructure:"name"`
	URL        string `mapstructure:"url"`
	Category   string `mapstructure:"category"`
	SourceType string `mapstructure:"source_type"`
}

type Config struct {
	HTTP struct {
		Port string
	}
	Data struct {
		Dir string
	}
	Rotation struct {
		MinDelayMS int
		MaxDelayMS int
	}
	Poll struct {
		MinIntervalMS int
		MaxIntervalMS int
		Limit         int
	}
	Ingest struct {
		Enabled      bool
		IntervalSecs int
		Sources      []FeedSource
	}
}

func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("globeview")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvPrefix("GLOBEVIEW")
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; defaults and env vars cover everything.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	cfg.HTTP.Port = v.GetString("http.port")
	cfg.Data.Dir = v.GetString("data.dir")

	cfg.Rotation.MinDelayMS = v.GetInt("rotation.min_delay_ms")
	cfg.Rotation.MaxDelayMS = v.GetInt("rotation.max_delay_ms")

	cfg.Poll.MinIntervalMS = v.GetInt("poll.min_interval_ms")
	cfg.Poll.MaxIntervalMS = v.GetInt("poll.max_interval_ms")
	cfg.Poll.Limit = v.GetInt("poll.limit")

	cfg.Ingest.Enabled = v.GetBool("ingest.enabled")
	cfg.Ingest.IntervalSecs = v.GetInt("ingest.interval_secs")
	if err := v.UnmarshalKey("ingest.sources", &cfg.Ingest.Sources); err != nil {
		return nil, fmt.Errorf("error parsing ingest.sources: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.port", "8080")
	v.SetDefault("data.dir", "data")

	// Rotation waits a random 5-20s between iterations.
	v.SetDefault("rotation.min_delay_ms", 5000)
	v.SetDefault("rotation.max_delay_ms", 20000)

	// The simulated client polls every 5-17s.
	v.SetDefault("poll.min_interval_ms", 5000)
	v.SetDefault("poll.max_interval_ms", 17000)
	v.SetDefault("poll.limit", 50)

	v.SetDefault("ingest.enabled", false)
	v.SetDefault("ingest.interval_secs", 300)
}

func validate(cfg *Config) error {
	if cfg.Data.Dir == "" {
		return fmt.Errorf("data.dir is required")
	}
	if cfg.Rotation.MinDelayMS <= 0 || cfg.Rotation.MaxDelayMS < cfg.Rotation.MinDelayMS {
		return fmt.Errorf("rotation delay bounds are invalid: [%d, %d]",
			cfg.Rotation.MinDelayMS, cfg.Rotation.MaxDelayMS)
	}
	if cfg.Poll.MinIntervalMS <= 0 || cfg.Poll.MaxIntervalMS < cfg.Poll.MinIntervalMS {
		return fmt.Errorf("poll interval bounds are invalid: [%d, %d]",
			cfg.Poll.MinIntervalMS, cfg.Poll.MaxIntervalMS)
	}
	if cfg.Poll.Limit <= 0 {
		return fmt.Errorf("poll.limit must be positive")
	}
	for i, src := range cfg.Ingest.Sources {
		if src.URL == "" {
			return fmt.Errorf("ingest.sources[%d].url is required", i)
		}
	}
	return nil
}
