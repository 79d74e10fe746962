package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"github.com/nao1215/contraband/internal/model"
	"github.com/nao1215/contraband/internal/report"
)

// Default configuration values.
const (
	// DefaultSeparator joins items in the one-line summary.
	DefaultSeparator = report.DefaultSeparator

	// DefaultSort orders the summary by fine rate, highest first.
	DefaultSort = "fine-desc"

	// DefaultPolicy stacks repeated activations into a higher quantity.
	DefaultPolicy = "stack"

	// DefaultTimezone is the reference zone for briefing date and time.
	DefaultTimezone = "UTC"

	// DefaultCurrency is printed before fine amounts in terminal output.
	DefaultCurrency = "$"

	// DefaultBatchSize bounds how many manifests are rendered at once.
	DefaultBatchSize = 4

	// AppName is the application name used for XDG directory paths.
	AppName = "contraband"
)

// Config holds all configuration options for contraband.
// It is populated from the config file and CLI flags and passed to commands
// explicitly rather than kept in globals.
type Config struct {
	// Separator joins items in the one-line summary.
	Separator string

	// Sort is the summary order: "fine-desc" or "insertion".
	Sort string

	// Policy decides what a repeated activation does: "stack" or "toggle".
	Policy string

	// Timezone is the reference location for briefing timestamps.
	// An IANA name ("Europe/Berlin"), "Local", or a fixed offset ("+02:00").
	Timezone string

	// Currency is the symbol printed before fine amounts.
	Currency string

	// Labels overrides category display labels.
	Labels model.Labels

	// Catalog maps known item names to category codes so items can be
	// activated by name alone.
	Catalog map[string]string

	// BriefingTitle is the first line of a briefing report.
	BriefingTitle string

	// Boilerplate is appended to briefing notes when standard notes are requested.
	Boilerplate string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// Copy sends rendered text to the system clipboard.
	Copy bool

	// Archive records every copied text in the export archive.
	Archive bool

	// DBDir is the directory holding the export archive database.
	// Defaults to the XDG data directory.
	DBDir string

	// BatchSize is the number of manifests rendered concurrently.
	BatchSize int

	// ConfigFilePath is the path to the configuration file.
	// If empty, the standard locations are searched.
	ConfigFilePath string

	// JSONReport writes the render model as JSON.
	JSONReport bool

	// MarkdownReport writes the render model as Markdown.
	MarkdownReport bool

	// ReportFile is the output file path. Stdout is used when empty.
	ReportFile string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Separator:     DefaultSeparator,
		Sort:          DefaultSort,
		Policy:        DefaultPolicy,
		Timezone:      DefaultTimezone,
		Currency:      DefaultCurrency,
		Labels:        model.Labels{},
		Catalog:       make(map[string]string),
		BriefingTitle: report.DefaultBriefingTitle,
		Boilerplate:   report.DefaultBoilerplate,
		BatchSize:     DefaultBatchSize,
		DBDir:         XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for contraband.
// On Linux: ~/.local/share/contraband
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for contraband.
// On Linux: ~/.config/contraband
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if c.Separator == "" {
		return ErrInvalidSeparator
	}
	if _, err := c.SortKey(); err != nil {
		return err
	}
	if _, err := c.TogglePolicy(); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	for name, code := range c.Catalog {
		if _, ok := model.ParseCategory(code); !ok {
			return fmt.Errorf("%w: catalog item %q has code %q", ErrUnknownCategory, name, code)
		}
	}
	return nil
}

// SortKey parses Sort.
func (c *Config) SortKey() (report.SortKey, error) {
	key, err := report.ParseSortKey(c.Sort)
	if err != nil {
		return key, fmt.Errorf("%w: %q", ErrUnknownSortKey, c.Sort)
	}
	return key, nil
}

// TogglePolicy parses Policy.
func (c *Config) TogglePolicy() (model.TogglePolicy, error) {
	policy, err := model.ParseTogglePolicy(c.Policy)
	if err != nil {
		return policy, fmt.Errorf("%w: %q", ErrUnknownPolicy, c.Policy)
	}
	return policy, nil
}

// Location resolves Timezone. An empty value means UTC.
func (c *Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.Timezone)
	if tz == "" {
		return time.UTC, nil
	}

	if tz[0] == '+' || tz[0] == '-' {
		t, err := time.Parse("-07:00", tz)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, c.Timezone)
		}
		_, offset := t.Zone()
		return time.FixedZone("UTC"+tz, offset), nil
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, c.Timezone)
	}
	return loc, nil
}

// SelectionOptions returns the summary formatting options described by c.
// Call Validate first; an invalid sort key falls back to the default.
func (c *Config) SelectionOptions() report.SelectionOptions {
	opts := report.DefaultSelectionOptions()
	opts.Separator = c.Separator
	if key, err := c.SortKey(); err == nil {
		opts.Sort = key
	}
	opts.Labels = model.DefaultLabels().Merge(c.Labels)
	return opts
}

// BriefingOptions returns the briefing formatting options described by c.
// Call Validate first; an invalid timezone falls back to UTC.
func (c *Config) BriefingOptions() report.BriefingOptions {
	opts := report.DefaultBriefingOptions()
	opts.Title = c.BriefingTitle
	opts.Boilerplate = c.Boilerplate
	if loc, err := c.Location(); err == nil {
		opts.Location = loc
	}
	return opts
}
