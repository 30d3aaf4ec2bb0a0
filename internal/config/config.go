package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	Root         string            `yaml:"root"`          // Catalog root directory
	RootLabel    string            `yaml:"root_label"`    // First breadcrumb
	DOSBoxConfig string            `yaml:"dosbox_config"` // Fallback when an entry has no abandon.conf
	Terminal     TerminalConfig    `yaml:"terminal"`      // Window used for text adventures
	Programs     map[string]string `yaml:"programs"`      // Runtime -> command override
	LogFile      string            `yaml:"log_file"`      // zap output path
	Watch        bool              `yaml:"watch"`         // Rescan when the browsed directory changes
	FirstRun     bool              `yaml:"-"`             // No config file was found
}

// TerminalConfig describes the terminal emulator that wraps interpreters
type TerminalConfig struct {
	Program  string `yaml:"program"`
	Geometry string `yaml:"geometry"`
}

// configFileName is the name of the config file
const configFileName = "config.yaml"

// RootEnv overrides the catalog root from the environment
const RootEnv = "ABANDON_ROOT"

// Default returns the default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Root:         "/usr/local/games/abandon",
		RootLabel:    "[Abandonware]",
		DOSBoxConfig: filepath.Join(homeDir, ".dosbox", "dosbox.conf"),
		Terminal: TerminalConfig{
			Program:  "uxterm",
			Geometry: "120x50",
		},
		Programs: map[string]string{},
		LogFile:  filepath.Join(ConfigDir(), "abandon.log"),
		Watch:    true,
		FirstRun: true,
	}
}

// ConfigDir returns the directory containing abandon config files
func ConfigDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "abandon")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(ConfigDir(), configFileName)
}

// Load loads the configuration from path, or from ConfigPath when path is
// empty. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else {
		// Unset fields keep their defaults
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
		cfg.FirstRun = false
	}

	if root := strings.TrimSpace(os.Getenv(RootEnv)); root != "" {
		cfg.Root = root
	}
	cfg.normalize()
	return cfg, nil
}

// Save writes the configuration to path, or to ConfigPath when path is empty
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// SetRoot replaces the catalog root, expanding ~ and making it absolute
func (c *Config) SetRoot(root string) {
	c.Root = root
	c.normalize()
}

// Program returns the configured command override for a runtime, if any
func (c *Config) Program(runtime string) (string, bool) {
	cmd, ok := c.Programs[runtime]
	cmd = strings.TrimSpace(cmd)
	return cmd, ok && cmd != ""
}

// RootExists checks if the catalog root is a directory
func (c *Config) RootExists() bool {
	info, err := os.Stat(c.Root)
	return err == nil && info.IsDir()
}

func (c *Config) normalize() {
	c.Root = expandPath(c.Root)
	c.DOSBoxConfig = expandPath(c.DOSBoxConfig)
	c.LogFile = expandPath(c.LogFile)
	if c.Root != "" {
		if abs, err := filepath.Abs(c.Root); err == nil {
			c.Root = abs
		}
	}
	if c.RootLabel == "" {
		c.RootLabel = Default().RootLabel
	}
	if c.Programs == nil {
		c.Programs = map[string]string{}
	}
}

// expandPath expands a leading ~ to the home directory
func expandPath(path string) string {
	path = strings.TrimSpace(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
	}
	return path
}
