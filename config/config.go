package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode     string `mapstructure:"mode"`
	Dotenv   string `mapstructure:"dotenv"`
	Handlers struct {
		Prometheus struct {
			Port      string `mapstructure:"port"`
			CertFile  string `mapstructure:"certFile"`
			KeyFile   string `mapstructure:"keyFile"`
			EnableTLS bool   `mapstructure:"enableTLS"`
		} `mapstructure:"prometheus"`
	} `mapstructure:"handlers"`
	Server struct {
		HTTPPort string        `mapstructure:"HTTPPort"`
		Timeout  time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
	AI         AIConfig         `mapstructure:"ai"`
	Enrichment EnrichmentConfig `mapstructure:"enrichment"`
}

// AIConfig selects and tunes the chat-completion provider. API keys are
// never stored here; they come from the environment at client construction.
type AIConfig struct {
	Provider          string  `mapstructure:"provider"` // "gemini" or "openrouter"
	Model             string  `mapstructure:"model"`
	OpenRouterBaseURL string  `mapstructure:"openRouterBaseURL"`
	OpenRouterModel   string  `mapstructure:"openRouterModel"`
	MaxTokens         int     `mapstructure:"maxTokens"`
	Temperature       float64 `mapstructure:"temperature"`
}

// EnrichmentConfig carries every tunable of the enrichment pipeline so the
// orchestrator can be constructed without reading ambient globals.
type EnrichmentConfig struct {
	ConfidenceThreshold       float64       `mapstructure:"confidenceThreshold"`
	CoordinateToleranceMeters float64       `mapstructure:"coordinateToleranceMeters"`
	ProbeTimeout              time.Duration `mapstructure:"probeTimeout"`
	MaxCandidates             int           `mapstructure:"maxCandidates"`
	WorkerCap                 int           `mapstructure:"workerCap"`
	MaxRadiusMeters           int           `mapstructure:"maxRadiusMeters"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	// Add file-based config paths
	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// Try to load file-based config
	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %s", err)
		}
	}

	// Unmarshal the config into the Config struct
	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %s", err)
	}
	fmt.Println("Successfully loaded app configs...")
	return config, nil
}
