package podds

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// PoddsConfig contains every tunable of a run: the model window, how the
// driver treats bad fixtures, where data comes from and how it is cached
type PoddsConfig struct {
	// === MODEL ===
	PoissonRange int `yaml:"poisson_range"` // goals 0..N-1 per side (default: 7)

	// === DRIVER ===
	FailFast        bool `yaml:"fail_fast"`        // abort the batch on the first bad fixture
	Workers         int  `yaml:"workers"`          // >1 forecasts fixtures concurrently
	AllowIncomplete bool `yaml:"allow_incomplete"` // don't abort when a team lacks home or away matches

	// === DATA SOURCES ===
	ResultsURL     string            `yaml:"results_url"`
	ResultsTableID string            `yaml:"results_table_header"` // first header cell of the crosstable
	FixturesURL    string            `yaml:"fixtures_url"`
	CartolaTag     string            `yaml:"cartola_tag"`
	CartolaAuth    string            `yaml:"cartola_auth"`
	Aliases        map[string]string `yaml:"aliases"` // fixtures-source name -> results-table name
	HTTPTimeout    time.Duration     `yaml:"http_timeout"`

	// === CACHE ===
	CachePath string        `yaml:"cache_path"` // sqlite file for fetched pages, empty disables
	CacheTTL  time.Duration `yaml:"cache_ttl"`

	// === OUTPUT ===
	OutputFormat string `yaml:"output_format"` // text, json or markdown
	LogLevel     string `yaml:"log_level"`
}

// DefaultAliases maps Cartola FC club names onto the names used by the
// Wikipedia results table
func DefaultAliases() map[string]string {
	return map[string]string{
		"Atlético-MG":  "Atlético Mineiro",
		"Vasco":        "Vasco da Gama",
		"Athlético-PR": "Athletico Paranaense",
		"Atlético-GO":  "Atlético Goianiense",
		"Bragantino":   "Red Bull Bragantino",
	}
}

// DefaultPoddsConfig returns the default configuration with all standard values
func DefaultPoddsConfig() *PoddsConfig {
	return &PoddsConfig{
		PoissonRange: DefaultMaxGoals,

		FailFast:        false,
		Workers:         1,
		AllowIncomplete: false,

		ResultsURL:     "https://pt.wikipedia.org/wiki/Campeonato_Brasileiro_de_Futebol_de_2024_-_S%C3%A9rie_A",
		ResultsTableID: `Casa \ Fora`,
		FixturesURL:    "https://api.cartola.globo.com/partidas",
		Aliases:        DefaultAliases(),
		HTTPTimeout:    30 * time.Second,

		CachePath: "",
		CacheTTL:  6 * time.Hour,

		OutputFormat: "text",
		LogLevel:     "info",
	}
}

// LoadConfig builds the configuration from defaults, then the optional YAML
// file at path, then a .env file and the PODDS_* environment variables
func LoadConfig(path string) (*PoddsConfig, error) {
	config := DefaultPoddsConfig()
	defaults := config.Aliases

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}
	if config.Aliases == nil {
		config.Aliases = make(map[string]string)
	}
	for k, v := range defaults {
		if _, ok := config.Aliases[k]; !ok {
			config.Aliases[k] = v
		}
	}

	_ = godotenv.Load()
	applyEnv(config)

	if err := ValidateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func applyEnv(c *PoddsConfig) {
	c.ResultsURL = envStr("PODDS_RESULTS_URL", c.ResultsURL)
	c.FixturesURL = envStr("PODDS_FIXTURES_URL", c.FixturesURL)
	c.CartolaTag = envStr("PODDS_CARTOLA_TAG", c.CartolaTag)
	c.CartolaAuth = envStr("PODDS_CARTOLA_AUTH", c.CartolaAuth)
	c.CachePath = envStr("PODDS_CACHE_PATH", c.CachePath)
	c.LogLevel = envStr("PODDS_LOG_LEVEL", c.LogLevel)
	c.Workers = envInt("PODDS_WORKERS", c.Workers)
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// === CONFIGURATION VALIDATION ===

// ValidateConfig ensures all configuration values are within reasonable ranges
func ValidateConfig(config *PoddsConfig) error {
	if config.PoissonRange < 3 || config.PoissonRange > 30 {
		return fmt.Errorf("PoissonRange should be between 3 and 30, got: %d", config.PoissonRange)
	}
	if config.Workers < 0 {
		return fmt.Errorf("Workers must not be negative, got: %d", config.Workers)
	}
	if config.CacheTTL < 0 {
		return fmt.Errorf("CacheTTL must not be negative, got: %s", config.CacheTTL)
	}
	switch config.OutputFormat {
	case "text", "json", "markdown":
	default:
		return fmt.Errorf("OutputFormat must be text, json or markdown, got: %q", config.OutputFormat)
	}
	return nil
}

// DriverOptions extracts the settings the fixture driver needs
func (c *PoddsConfig) DriverOptions() DriverOptions {
	return DriverOptions{
		FailFast: c.FailFast,
		Workers:  c.Workers,
		MaxGoals: c.PoissonRange,
	}
}
