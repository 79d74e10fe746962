package config

import (
	"fmt"

	"github.com/nao1215/contraband/internal/model"
)

// BriefingFile is the briefing section of the configuration file.
type BriefingFile struct {
	// Title replaces the first line of the report.
	Title *string `yaml:"title,omitempty"`

	// Boilerplate replaces the standard notes text.
	Boilerplate *string `yaml:"boilerplate,omitempty"`
}

// ArchiveFile is the archive section of the configuration file.
type ArchiveFile struct {
	// Enabled records copied texts in the archive.
	Enabled *bool `yaml:"enabled,omitempty"`

	// Dir overrides the database directory.
	Dir string `yaml:"dir,omitempty"`
}

// File represents the structure of the .contraband configuration file.
// Every field is optional; only fields present in the file override defaults.
type File struct {
	Separator *string `yaml:"separator,omitempty"`
	Sort      string  `yaml:"sort,omitempty"`
	Policy    string  `yaml:"policy,omitempty"`
	Timezone  string  `yaml:"timezone,omitempty"`
	Currency  string  `yaml:"currency,omitempty"`
	BatchSize int     `yaml:"batchSize,omitempty"`
	Copy      *bool   `yaml:"copy,omitempty"`

	// Labels maps category codes (A, B, C, D, W, N) to display labels.
	Labels map[string]string `yaml:"labels,omitempty"`

	// Catalog maps item names to category codes.
	Catalog map[string]string `yaml:"catalog,omitempty"`

	Briefing BriefingFile `yaml:"briefing,omitempty"`
	Archive  ArchiveFile  `yaml:"archive,omitempty"`
}

// Apply copies every value set in the file onto cfg.
// Label keys must be known category codes.
func (f *File) Apply(cfg *Config) error {
	if f.Separator != nil {
		cfg.Separator = *f.Separator
	}
	if f.Sort != "" {
		cfg.Sort = f.Sort
	}
	if f.Policy != "" {
		cfg.Policy = f.Policy
	}
	if f.Timezone != "" {
		cfg.Timezone = f.Timezone
	}
	if f.Currency != "" {
		cfg.Currency = f.Currency
	}
	if f.BatchSize != 0 {
		cfg.BatchSize = f.BatchSize
	}
	if f.Copy != nil {
		cfg.Copy = *f.Copy
	}

	if len(f.Labels) > 0 {
		if cfg.Labels == nil {
			cfg.Labels = model.Labels{}
		}
		for code, label := range f.Labels {
			c, ok := model.ParseCategory(code)
			if !ok {
				return fmt.Errorf("%w: label key %q", ErrUnknownCategory, code)
			}
			cfg.Labels[c] = label
		}
	}

	if len(f.Catalog) > 0 {
		if cfg.Catalog == nil {
			cfg.Catalog = make(map[string]string, len(f.Catalog))
		}
		for name, code := range f.Catalog {
			cfg.Catalog[name] = code
		}
	}

	if f.Briefing.Title != nil {
		cfg.BriefingTitle = *f.Briefing.Title
	}
	if f.Briefing.Boilerplate != nil {
		cfg.Boilerplate = *f.Briefing.Boilerplate
	}
	if f.Archive.Enabled != nil {
		cfg.Archive = *f.Archive.Enabled
	}
	if f.Archive.Dir != "" {
		cfg.DBDir = f.Archive.Dir
	}
	return nil
}
