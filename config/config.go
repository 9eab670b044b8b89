// Package config loads and persists the application configuration: templates,
// folder structures, rules and preferences. The file lives next to the
// history store in the platform config directory.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidyfile/tidy/models"
	"github.com/tidyfile/tidy/template"
)

const configFilename = "config.json"

// ConfigVersion is the current schema version of the config file.
const ConfigVersion = "1.0"

// Preferences are user-tunable knobs that apply to every run.
type Preferences struct {
	DateFormat             string             `json:"dateFormat"`
	CaseStyle              template.CaseStyle `json:"caseStyle"`
	PriorityMode           models.PriorityMode `json:"priorityMode"`
	LLMConfidenceThreshold float64            `json:"llmConfidenceThreshold"`
	MaxHistoryEntries      int                `json:"maxHistoryEntries"`
	CheckFileSystem        bool               `json:"checkFileSystem"`
	IncludeHidden          bool               `json:"includeHidden"`
}

// AppConfig is the persisted configuration document.
type AppConfig struct {
	Version          string                       `json:"version"`
	Templates        []models.Template            `json:"templates"`
	FolderStructures []models.FolderStructure     `json:"folderStructures"`
	MetadataRules    []models.MetadataPatternRule `json:"metadataRules"`
	FilenameRules    []models.FilenamePatternRule `json:"filenameRules"`
	Preferences      Preferences                  `json:"preferences"`
}

// Default returns a usable configuration with a single default template.
func Default() *AppConfig {
	return &AppConfig{
		Version: ConfigVersion,
		Templates: []models.Template{
			{
				ID:        "default",
				Name:      "Date prefix",
				Pattern:   "{date}-{name}",
				IsDefault: true,
			},
		},
		Preferences: Preferences{
			DateFormat:             template.DefaultDateFormat,
			CaseStyle:              template.CaseNone,
			PriorityMode:           models.PriorityCombined,
			LLMConfidenceThreshold: 0.7,
			MaxHistoryEntries:      500,
			CheckFileSystem:        true,
		},
	}
}

// DefaultPath returns the config file location in the platform config
// directory.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not find config directory: %v", err)
	}
	return filepath.Join(configDir, "tidy", configFilename), nil
}

// Load reads the config from path. A missing file yields the defaults; a
// malformed or invalid file is an error, never silently replaced.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %v", err)
	}

	var cfg AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %v", path, err)
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %v", path, err)
	}
	return &cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	def := Default()
	if cfg.Version == "" {
		cfg.Version = ConfigVersion
	}
	if cfg.Preferences.DateFormat == "" {
		cfg.Preferences.DateFormat = def.Preferences.DateFormat
	}
	if cfg.Preferences.PriorityMode == "" {
		cfg.Preferences.PriorityMode = def.Preferences.PriorityMode
	}
	if cfg.Preferences.LLMConfidenceThreshold == 0 {
		cfg.Preferences.LLMConfidenceThreshold = def.Preferences.LLMConfidenceThreshold
	}
	if cfg.Preferences.MaxHistoryEntries == 0 {
		cfg.Preferences.MaxHistoryEntries = def.Preferences.MaxHistoryEntries
	}
}

// Save writes the config atomically.
func Save(path string, cfg *AppConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %v", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %v", err)
	}
	tmp, err := os.CreateTemp(dir, ".config-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %v", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write config: %v", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write config: %v", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace config file: %v", err)
	}
	return nil
}

// Validate checks the structural invariants: exactly one default template and
// unique ids within each collection.
func (c *AppConfig) Validate() error {
	defaults := 0
	ids := map[string]bool{}
	for _, t := range c.Templates {
		if t.ID == "" {
			return fmt.Errorf("template %q has no id", t.Name)
		}
		if ids[t.ID] {
			return fmt.Errorf("duplicate template id %q", t.ID)
		}
		ids[t.ID] = true
		if t.IsDefault {
			defaults++
		}
	}
	if defaults != 1 {
		return fmt.Errorf("exactly one default template required, found %d", defaults)
	}

	ids = map[string]bool{}
	for _, fs := range c.FolderStructures {
		if fs.ID == "" {
			return fmt.Errorf("folder structure %q has no id", fs.Name)
		}
		if ids[fs.ID] {
			return fmt.Errorf("duplicate folder structure id %q", fs.ID)
		}
		ids[fs.ID] = true
	}

	ids = map[string]bool{}
	for _, r := range c.MetadataRules {
		if ids[r.ID] {
			return fmt.Errorf("duplicate metadata rule id %q", r.ID)
		}
		ids[r.ID] = true
	}
	ids = map[string]bool{}
	for _, r := range c.FilenameRules {
		if ids[r.ID] {
			return fmt.Errorf("duplicate filename rule id %q", r.ID)
		}
		ids[r.ID] = true
	}
	return nil
}

// RuleSet converts the config into the rule set the resolver consumes.
func (c *AppConfig) RuleSet() *template.RuleSet {
	return &template.RuleSet{
		MetadataRules:    c.MetadataRules,
		FilenameRules:    c.FilenameRules,
		Templates:        c.Templates,
		FolderStructures: c.FolderStructures,
		PriorityMode:     c.Preferences.PriorityMode,
	}
}
