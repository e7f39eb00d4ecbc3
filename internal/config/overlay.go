package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CompaniesFile is the optional companies.yml next to config.yml. Boards
// listed there replace the matching lists from the main config.
type CompaniesFile struct {
	Sources Sources       `yaml:"sources"`
	Manual  []ManualEntry `yaml:"manual"`
}

func OverlayCompanies(cfg *Config, companiesPath string) error {
	b, err := os.ReadFile(companiesPath)
	if err != nil {
		// Missing companies file should not kill startup
		return nil
	}

	var cf CompaniesFile
	if err := yaml.Unmarshal(b, &cf); err != nil {
		return fmt.Errorf("parse %s: %w", companiesPath, err)
	}

	replace := func(dst *[]Board, src []Board) {
		if len(src) > 0 {
			*dst = src
		}
	}
	replace(&cfg.Sources.Greenhouse, cf.Sources.Greenhouse)
	replace(&cfg.Sources.Lever, cf.Sources.Lever)
	replace(&cfg.Sources.Ashby, cf.Sources.Ashby)
	replace(&cfg.Sources.Workday, cf.Sources.Workday)
	replace(&cfg.Sources.SmartRecruiters, cf.Sources.SmartRecruiters)
	replace(&cfg.Sources.HTML, cf.Sources.HTML)

	if len(cf.Manual) > 0 {
		cfg.Manual = append(cfg.Manual, cf.Manual...)
	}
	return nil
}
