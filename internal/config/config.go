// Package config handles loading markitdown.toml configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/amonks/markitdown/internal/paths"
)

// DefaultAPIURL is the backend address used when nothing is configured.
const DefaultAPIURL = "http://localhost:8000"

// DefaultTimeout bounds each backend request when nothing is configured.
const DefaultTimeout = 30 * time.Second

// ProjectFile is the per-directory config file name.
const ProjectFile = "markitdown.toml"

// Environment overrides.
const (
	EnvAPIURL    = "MID_API_URL"
	EnvGistURL   = "MID_GIST_URL"
	EnvExportDir = "MID_EXPORT_DIR"
)

// Config represents the markitdown.toml configuration file.
type Config struct {
	API    API    `toml:"api"`
	Gist   Gist   `toml:"gist"`
	Export Export `toml:"export"`
}

// API contains backend connection settings.
type API struct {
	URL string `toml:"url"`
	// Timeout is a duration string such as "30s".
	Timeout time.Duration `toml:"timeout"`
}

// Gist contains gist host settings.
type Gist struct {
	// URL is the gist API root. Empty means GitHub.
	URL string `toml:"url"`
}

// Export contains Markdown export settings.
type Export struct {
	// Dir is where `mid project export` writes files. Empty means the
	// working directory.
	Dir string `toml:"dir"`
}

// Load loads configuration from the global config file and dir's
// markitdown.toml, then applies environment overrides. Values in dir win
// over global ones. Missing files are not an error.
func Load(dir string) (*Config, error) {
	globalPath, err := paths.DefaultConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	var projectCfg *Config
	var projectMeta toml.MetaData
	if dir != "" {
		projectCfg, projectMeta, err = loadConfigFile(filepath.Join(dir, ProjectFile))
		if err != nil {
			return nil, err
		}
	}

	merged := mergeConfigs(globalCfg, projectCfg, globalMeta, projectMeta)
	applyEnv(merged)
	applyDefaults(merged)
	return merged, nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: unknown key %s", path, undecoded[0])
	}
	if cfg.API.Timeout < 0 {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: api.timeout must not be negative", path)
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, globalMeta, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	merged := Config{}
	merged.API.URL = mergeString(projectMeta.IsDefined("api", "url"), projectCfg.API.URL, globalCfg.API.URL)
	merged.Gist.URL = mergeString(projectMeta.IsDefined("gist", "url"), projectCfg.Gist.URL, globalCfg.Gist.URL)
	merged.Export.Dir = mergeString(projectMeta.IsDefined("export", "dir"), projectCfg.Export.Dir, globalCfg.Export.Dir)
	switch {
	case projectMeta.IsDefined("api", "timeout"):
		merged.API.Timeout = projectCfg.API.Timeout
	case globalMeta.IsDefined("api", "timeout"):
		merged.API.Timeout = globalCfg.API.Timeout
	}

	return &merged
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	value := globalValue
	if projectDefined {
		value = projectValue
	}
	return strings.TrimSpace(value)
}

func applyEnv(cfg *Config) {
	if value := strings.TrimSpace(os.Getenv(EnvAPIURL)); value != "" {
		cfg.API.URL = value
	}
	if value := strings.TrimSpace(os.Getenv(EnvGistURL)); value != "" {
		cfg.Gist.URL = value
	}
	if value := strings.TrimSpace(os.Getenv(EnvExportDir)); value != "" {
		cfg.Export.Dir = value
	}
}

func applyDefaults(cfg *Config) {
	if cfg.API.URL == "" {
		cfg.API.URL = DefaultAPIURL
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = DefaultTimeout
	}
}
