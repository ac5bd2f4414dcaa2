package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv      = "BLOOMCORE_CONFIG"
	serpAPIKeyEnv      = "SERPAPI_API_KEY"
	newsAPIKeyEnv      = "NEWSAPI_API_KEY"
	synthesisAPIKeyEnv = "OPENAI_API_KEY"
	synthesisModelEnv  = "SYNTHESIS_MODEL"
	geocodeEndpointEnv = "GEOCODE_ENDPOINT"
	orchestrationTOEnv = "ORCHESTRATION_TIMEOUT"
	logLevelEnv        = "LOG_LEVEL"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig       `yaml:"logging"`
	Search        SearchConfig        `yaml:"search"`
	Synthesis     SynthesisConfig     `yaml:"synthesis"`
	Geocoding     GeocodingConfig     `yaml:"geocoding"`
	Orchestration OrchestrationConfig `yaml:"orchestration"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// SearchConfig wires the external search providers.
type SearchConfig struct {
	// Providers lists the strategies to fan out over, by registry name.
	Providers []string `yaml:"providers"`
	// MaxResults bounds results requested per provider.
	MaxResults int `yaml:"maxResults"`

	SerpAPIKey       string `yaml:"serpApiKey"`
	SerpEndpoint     string `yaml:"serpEndpoint"`
	NewsAPIKey       string `yaml:"newsApiKey"`
	NewsEndpoint     string `yaml:"newsEndpoint"`
	NewsFeedEndpoint string `yaml:"newsFeedEndpoint"`
}

// SynthesisConfig defines how to contact the text-synthesis service.
type SynthesisConfig struct {
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"apiKey"`
}

// GeocodingConfig wires the optional remote geocoding API and local cache.
type GeocodingConfig struct {
	Endpoint  string `yaml:"endpoint"`
	CacheSize int    `yaml:"cacheSize"`
}

// OrchestrationConfig bounds a single orchestration call.
type OrchestrationConfig struct {
	Timeout           time.Duration `yaml:"timeout"`
	DefaultVegetation float64       `yaml:"defaultVegetation"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

// LiveProvidersConfigured reports whether at least one configured provider
// can run without substitution. The googlenews strategy is keyless.
func (c Config) LiveProvidersConfigured() bool {
	for _, name := range c.Search.Providers {
		switch name {
		case "serpapi":
			if c.Search.SerpAPIKey != "" {
				return true
			}
		case "newsapi":
			if c.Search.NewsAPIKey != "" {
				return true
			}
		case "googlenews":
			return true
		}
	}
	return false
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(serpAPIKeyEnv); v != "" {
		c.Search.SerpAPIKey = v
	}

	if v := os.Getenv(newsAPIKeyEnv); v != "" {
		c.Search.NewsAPIKey = v
	}

	if v := os.Getenv(synthesisAPIKeyEnv); v != "" {
		c.Synthesis.APIKey = v
	}

	if v := os.Getenv(synthesisModelEnv); v != "" {
		c.Synthesis.Model = v
	}

	if v := os.Getenv(geocodeEndpointEnv); v != "" {
		c.Geocoding.Endpoint = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(orchestrationTOEnv); v != "" {
		if d, err := time.ParseDuration(v); err != nil {
			log.Printf("config: invalid %s %q: %v (keeping %s)", orchestrationTOEnv, v, err, c.Orchestration.Timeout)
		} else {
			c.Orchestration.Timeout = d
		}
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if len(override.Search.Providers) > 0 {
		base.Search.Providers = override.Search.Providers
	}
	if override.Search.MaxResults > 0 {
		base.Search.MaxResults = override.Search.MaxResults
	}
	if override.Search.SerpAPIKey != "" {
		base.Search.SerpAPIKey = override.Search.SerpAPIKey
	}
	if override.Search.SerpEndpoint != "" {
		base.Search.SerpEndpoint = override.Search.SerpEndpoint
	}
	if override.Search.NewsAPIKey != "" {
		base.Search.NewsAPIKey = override.Search.NewsAPIKey
	}
	if override.Search.NewsEndpoint != "" {
		base.Search.NewsEndpoint = override.Search.NewsEndpoint
	}
	if override.Search.NewsFeedEndpoint != "" {
		base.Search.NewsFeedEndpoint = override.Search.NewsFeedEndpoint
	}

	if override.Synthesis.Endpoint != "" {
		base.Synthesis.Endpoint = override.Synthesis.Endpoint
	}
	if override.Synthesis.Model != "" {
		base.Synthesis.Model = override.Synthesis.Model
	}
	if override.Synthesis.APIKey != "" {
		base.Synthesis.APIKey = override.Synthesis.APIKey
	}

	if override.Geocoding.Endpoint != "" {
		base.Geocoding.Endpoint = override.Geocoding.Endpoint
	}
	if override.Geocoding.CacheSize > 0 {
		base.Geocoding.CacheSize = override.Geocoding.CacheSize
	}

	if override.Orchestration.Timeout > 0 {
		base.Orchestration.Timeout = override.Orchestration.Timeout
	}
	if override.Orchestration.DefaultVegetation > 0 {
		base.Orchestration.DefaultVegetation = override.Orchestration.DefaultVegetation
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Search: SearchConfig{
			Providers:        []string{"serpapi", "newsapi"},
			MaxResults:       5,
			SerpEndpoint:     "https://serpapi.com/search.json",
			NewsEndpoint:     "https://newsapi.org/v2/everything",
			NewsFeedEndpoint: "https://news.google.com/rss/search",
		},
		Synthesis: SynthesisConfig{
			Endpoint: "https://api.openai.com/v1/chat/completions",
			Model:    "gpt-4o-mini",
		},
		Geocoding: GeocodingConfig{
			CacheSize: 512,
		},
		Orchestration: OrchestrationConfig{
			Timeout:           30 * time.Second,
			DefaultVegetation: 0.7,
		},
	}
}
