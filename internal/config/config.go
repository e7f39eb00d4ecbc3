package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// Board is one job board entry under sources.<kind>.
type Board struct {
	Name     string `yaml:"name" json:"name"`
	Board    string `yaml:"board" json:"board"`
	Label    string `yaml:"label,omitempty" json:"label,omitempty"`
	Location string `yaml:"location,omitempty" json:"location,omitempty"`
}

// ManualEntry is a hand-curated posting.
type ManualEntry struct {
	Company   string   `yaml:"company" json:"company"`
	TitleHint string   `yaml:"title_hint,omitempty" json:"title_hint,omitempty"`
	Role      string   `yaml:"role,omitempty" json:"role,omitempty"`
	URL       string   `yaml:"url" json:"url"`
	Location  string   `yaml:"location,omitempty" json:"location,omitempty"`
	Deadline  string   `yaml:"deadline,omitempty" json:"deadline,omitempty"`
	Tags      []string `yaml:"tags,omitempty" json:"tags,omitempty"`
	Notes     string   `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// Opportunity is a passthrough link rendered under the README's extra sections.
type Opportunity struct {
	Name  string `yaml:"name" json:"name"`
	URL   string `yaml:"url" json:"url"`
	Notes string `yaml:"notes,omitempty" json:"notes,omitempty"`
}

type Filters struct {
	Country         string              `yaml:"country" json:"country"`
	LocationHints   []string            `yaml:"location_hints" json:"location_hints"`
	InternMarkers   []string            `yaml:"intern_markers" json:"intern_markers"`
	GraduateMarkers []string            `yaml:"graduate_markers" json:"graduate_markers"`
	Categories      map[string][]string `yaml:"categories" json:"categories"`
	CompanyHints    map[string][]string `yaml:"company_hints" json:"company_hints"`
}

type Sources struct {
	Greenhouse      []Board `yaml:"greenhouse" json:"greenhouse"`
	Lever           []Board `yaml:"lever" json:"lever"`
	Ashby           []Board `yaml:"ashby" json:"ashby"`
	Workday         []Board `yaml:"workday" json:"workday"`
	SmartRecruiters []Board `yaml:"smartrecruiters" json:"smartrecruiters"`
	HTML            []Board `yaml:"html" json:"html"`
}

type Config struct {
	App struct {
		Listen  string `yaml:"listen" json:"listen"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Fetch struct {
		TimeoutSeconds int     `yaml:"timeout_seconds" json:"timeout_seconds"`
		Concurrency    int     `yaml:"concurrency" json:"concurrency"`
		UserAgent      string  `yaml:"user_agent" json:"user_agent"`
		ReqPerSec      float64 `yaml:"req_per_sec" json:"req_per_sec"`
		Burst          int     `yaml:"burst" json:"burst"`
	} `yaml:"fetch" json:"fetch"`

	Schedule struct {
		IntervalMinutes int `yaml:"interval_minutes" json:"interval_minutes"`
	} `yaml:"schedule" json:"schedule"`

	Registry struct {
		Driver string `yaml:"driver" json:"driver"` // json | sqlite
		Path   string `yaml:"path" json:"path"`
	} `yaml:"registry" json:"registry"`

	Output struct {
		README   string `yaml:"readme" json:"readme"`
		Template string `yaml:"template" json:"template"`
	} `yaml:"output" json:"output"`

	Filters       Filters       `yaml:"filters" json:"filters"`
	Sources       Sources       `yaml:"sources" json:"sources"`
	Manual        []ManualEntry `yaml:"manual" json:"manual"`
	Opportunities []Opportunity `yaml:"opportunities" json:"opportunities"`
}

// Load reads, defaults and validates the config at path. Any error here is
// fatal to a run: nothing can be classified without filters.
func Load(path string) (Config, error) {
	return LoadWithCompanies(path, "")
}

// LoadWithCompanies is Load with the optional companies.yml overlay applied
// before validation. An empty or missing companiesPath is ignored.
func LoadWithCompanies(path, companiesPath string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if companiesPath != "" {
		if err := OverlayCompanies(&cfg, companiesPath); err != nil {
			return cfg, err
		}
	}
	applyDefaults(&cfg)

	normalized, vr := NormalizeAndValidate(cfg)
	for _, w := range vr.Warnings {
		log.Printf("[config] WARN %s", w)
	}
	if !vr.OK() {
		return cfg, vr.Err()
	}
	return normalized, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Listen == "" {
		cfg.App.Listen = "127.0.0.1:38471"
	}
	if cfg.Fetch.TimeoutSeconds == 0 {
		cfg.Fetch.TimeoutSeconds = 30
	}
	if cfg.Fetch.Concurrency == 0 {
		cfg.Fetch.Concurrency = 1
	}
	if cfg.Fetch.UserAgent == "" {
		cfg.Fetch.UserAgent = "Canadian-Internships-Auto/1.3"
	}
	if cfg.Fetch.ReqPerSec == 0 {
		cfg.Fetch.ReqPerSec = 2
	}
	if cfg.Fetch.Burst == 0 {
		cfg.Fetch.Burst = 2
	}
	if cfg.Registry.Driver == "" {
		cfg.Registry.Driver = "json"
	}
	if cfg.Registry.Path == "" {
		if cfg.Registry.Driver == "sqlite" {
			cfg.Registry.Path = "jobs.db"
		} else {
			cfg.Registry.Path = "jobs.json"
		}
	}
	if cfg.Filters.Country == "" {
		cfg.Filters.Country = "Canada"
	}
}
