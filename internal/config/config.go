// Package config loads aimlmend configuration: defaults, an optional yaml
// file, then environment overrides, in that order.
package config

import (
	"fmt"
	"os"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all aimlmend settings.
type Config struct {
	// RootTag is the document root element downstream consumers expect.
	RootTag string `yaml:"root_tag"`

	// RecordTag is the unit-of-knowledge element; an acceptable document
	// holds at least one.
	RecordTag string `yaml:"record_tag"`

	// Extension of corpus files, leading dot included.
	Extension string `yaml:"extension"`

	// Backup toggles the sibling backup written before a heal rewrite.
	Backup bool `yaml:"backup"`

	// BackupSuffix is appended to the original filename. Backups are never
	// pruned automatically.
	BackupSuffix string `yaml:"backup_suffix"`

	// Concurrency bounds parallel file healing in batch runs.
	Concurrency int `yaml:"concurrency"`

	// SpeculativeTagRecovery enables the bare-word wrapping pass. The
	// heuristic can corrupt legitimate text; leave it off unless the
	// corpus is known to be tag-dense.
	SpeculativeTagRecovery bool `yaml:"speculative_tag_recovery"`
}

// Default returns the stock configuration for AIML corpora.
func Default() *Config {
	return &Config{
		RootTag:      "aiml",
		RecordTag:    "category",
		Extension:    ".aiml",
		Backup:       true,
		BackupSuffix: ".bak",
		Concurrency:  runtime.NumCPU(),
	}
}

// Load layers the file at path (when it exists) over the defaults, then
// applies environment overrides and validates. A missing file is not an
// error; an unreadable or unparseable one is.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// fall through to defaults
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var elementNameRe = regexp.MustCompile(`^[A-Za-z_][\w.-]*$`)

// Validate checks the structural settings before any file is touched.
// Concurrency below one is clamped rather than rejected.
func (c *Config) Validate() error {
	if !elementNameRe.MatchString(c.RootTag) {
		return fmt.Errorf("root_tag %q is not a valid element name", c.RootTag)
	}
	if !elementNameRe.MatchString(c.RecordTag) {
		return fmt.Errorf("record_tag %q is not a valid element name", c.RecordTag)
	}
	if !strings.HasPrefix(c.Extension, ".") {
		return fmt.Errorf("extension %q must start with a dot", c.Extension)
	}
	if c.Backup && c.BackupSuffix == "" {
		return fmt.Errorf("backup enabled but backup_suffix is empty")
	}
	if c.Concurrency < 1 {
		c.Concurrency = 1
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("AIMLMEND_ROOT_TAG"); v != "" {
		c.RootTag = v
	}
	if v := os.Getenv("AIMLMEND_RECORD_TAG"); v != "" {
		c.RecordTag = v
	}
	if v := os.Getenv("AIMLMEND_BACKUP"); v != "" {
		c.Backup = v == "1" || strings.EqualFold(v, "true")
	}
}
