package model

import "time"

// Config is the complete runtime configuration
type Config struct {
	Geocode GeocodeConfig `yaml:"geocode" json:"geocode"`
	Search  SearchConfig  `yaml:"search" json:"search"`
	LLM     LLMConfig     `yaml:"llm" json:"llm"`
	Output  OutputConfig  `yaml:"output" json:"output"`
}

// GeocodeConfig controls both geocoding providers and their shared limits
type GeocodeConfig struct {
	PrimaryBaseURL   string        `yaml:"primary_base_url" json:"primary_base_url"`     // OpenStreetMap-derived provider
	SecondaryBaseURL string        `yaml:"secondary_base_url" json:"secondary_base_url"` // POI/street-index provider
	Country          string        `yaml:"country" json:"country"`                       // ISO country restriction for all queries
	Province         string        `yaml:"province" json:"province"`                     // Appended to address queries
	UserAgent        string        `yaml:"user_agent" json:"user_agent"`
	Timeout          time.Duration `yaml:"timeout" json:"timeout"`
	RequestsPerSec   float64       `yaml:"requests_per_sec" json:"requests_per_sec"` // Shared gate for the primary provider
	MaxRetries       int           `yaml:"max_retries" json:"max_retries"`           // Timeout retries before demoting to not-found
	CacheSize        int           `yaml:"cache_size" json:"cache_size"`             // Primary cache bound, evict-oldest
	CacheTTL         time.Duration `yaml:"cache_ttl" json:"cache_ttl"`               // Secondary cache TTL
	MinConfidence    float64       `yaml:"min_confidence" json:"min_confidence"`     // Secondary results under this are discarded
}

// SearchConfig controls the property index client and fallback tiers
type SearchConfig struct {
	BaseURL       string        `yaml:"base_url" json:"base_url"`
	APIKey        string        `yaml:"api_key" json:"api_key,omitempty"`
	Timeout       time.Duration `yaml:"timeout" json:"timeout"`
	PageSizeExact int           `yaml:"page_size_exact" json:"page_size_exact"`
	PageSizeWide  int           `yaml:"page_size_wide" json:"page_size_wide"`
	MaxFSAPages   int           `yaml:"max_fsa_pages" json:"max_fsa_pages"` // Hard cap on FSA pagination
}

// LLMConfig controls the optional location-phrase extractor
type LLMConfig struct {
	Provider  string `yaml:"provider" json:"provider"` // "openai" or "" (disabled)
	Model     string `yaml:"model" json:"model"`
	APIKey    string `yaml:"-" json:"-"` // From env, never persisted
	BaseURL   string `yaml:"base_url" json:"base_url,omitempty"`
	Timeout   int    `yaml:"timeout" json:"timeout"` // Seconds
	MaxTokens int    `yaml:"max_tokens" json:"max_tokens"`
}

// OutputConfig controls CLI output behavior
type OutputConfig struct {
	Verbose bool   `yaml:"verbose" json:"verbose"`
	Format  string `yaml:"format" json:"format"` // "json" or "yaml"
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Geocode: GeocodeConfig{
			PrimaryBaseURL:   "https://nominatim.openstreetmap.org",
			SecondaryBaseURL: "https://photon.komoot.io",
			Country:          "ca",
			Province:         "Ontario",
			UserAgent:        "realocate/0.1 (+https://github.com/akarpov/realocate)",
			Timeout:          10 * time.Second,
			RequestsPerSec:   1,
			MaxRetries:       3,
			CacheSize:        500,
			CacheTTL:         24 * time.Hour,
			MinConfidence:    0.6,
		},
		Search: SearchConfig{
			BaseURL:       "http://localhost:8080",
			Timeout:       15 * time.Second,
			PageSizeExact: 20,
			PageSizeWide:  100,
			MaxFSAPages:   20,
		},
		LLM: LLMConfig{
			Provider:  "", // Disabled by default
			Model:     "",
			Timeout:   30,
			MaxTokens: 200,
		},
		Output: OutputConfig{
			Verbose: false,
			Format:  "json",
		},
	}
}
