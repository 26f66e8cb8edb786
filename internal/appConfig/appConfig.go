package appConfig

import (
	"fmt"
	"os"
	"path/filepath"

	"axsync/internal/gitremote"

	"gopkg.in/yaml.v2"
)

const DefaultChannelBufferLength = 10
const DefaultSyncRatePerSecond = 4
const DefaultConfigFileName = "deps.yml"
const DefaultHookScript = "scripts/axconfig.sh"

// The tool predates its manifest: the original always synced the arceos tree
// to a fixed revision. With no deps.yml present it still does exactly that.
var builtinDeps = []gitremote.DepConfig{
	{
		Name:   "arceos",
		URL:    "https://github.com/arceos-org/arceos.git",
		Path:   "deps/arceos",
		Commit: "a59b6b8",
	},
}

type AppConfig struct {
	// RatePerSecond throttles git operations per remote host.
	RatePerSecond int `yaml:"ratePerSecond,omitempty"`
	// Hook is the downstream configuration script run with each synced path.
	Hook string `yaml:"hook,omitempty"`
	Deps []gitremote.DepConfig `yaml:"deps"`
}

// Default is the configuration used when no manifest file exists.
func Default() *AppConfig {
	return &AppConfig{
		RatePerSecond: DefaultSyncRatePerSecond,
		Hook:          DefaultHookScript,
		Deps:          builtinDeps,
	}
}

// Load reads the manifest from the working directory, falling back to the
// home directory, falling back to the built-in defaults. The fallback chain
// only applies to the default manifest name; a manifest named explicitly
// must exist.
func Load(configFileName string) (*AppConfig, error) {
	configFilePath := configFileName

	if _, err := os.Stat(configFilePath); os.IsNotExist(err) {
		if configFileName != DefaultConfigFileName {
			return nil, fmt.Errorf("config file %s does not exist", configFileName)
		}
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("could not determine home directory: %v", err)
		}
		configFilePath = filepath.Join(homeDir, configFileName)
		if _, err := os.Stat(configFilePath); os.IsNotExist(err) {
			return Default(), nil
		}
	}

	return LoadFile(configFilePath)
}

// LoadFile reads and validates a manifest at an explicit path.
func LoadFile(configFilePath string) (*AppConfig, error) {
	data, err := os.ReadFile(configFilePath)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %v", err)
	}

	var config AppConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("could not unmarshal config file: %v", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", configFilePath, err)
	}

	if config.RatePerSecond == 0 {
		config.RatePerSecond = DefaultSyncRatePerSecond
	}
	if config.Hook == "" {
		config.Hook = DefaultHookScript
	}
	return &config, nil
}

func (c *AppConfig) Validate() error {
	if len(c.Deps) == 0 {
		return fmt.Errorf("manifest lists no dependencies")
	}
	seenNames := make(map[string]bool, len(c.Deps))
	seenPaths := make(map[string]bool, len(c.Deps))
	for _, dep := range c.Deps {
		if err := dep.Validate(); err != nil {
			return err
		}
		if seenNames[dep.Name] {
			return fmt.Errorf("dependency %s listed twice", dep.Name)
		}
		if seenPaths[dep.Path] {
			return fmt.Errorf("path %s used by more than one dependency", dep.Path)
		}
		seenNames[dep.Name] = true
		seenPaths[dep.Path] = true
	}
	return nil
}

// HookFor resolves the downstream configuration script for a dependency.
func (c *AppConfig) HookFor(dep gitremote.DepConfig) string {
	if dep.Hook != "" {
		return dep.Hook
	}
	return c.Hook
}
