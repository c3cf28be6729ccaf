package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DataFile   string `yaml:"data_file" mapstructure:"data_file"`
	BackupDir  string `yaml:"backup_dir" mapstructure:"backup_dir"`
	CSVExport  string `yaml:"csv_export" mapstructure:"csv_export"`
	XLSXExport string `yaml:"xlsx_export" mapstructure:"xlsx_export"`
	LogFile    string `yaml:"log_file" mapstructure:"log_file"`
	Theme      string `yaml:"theme" mapstructure:"theme"`
	Verbose    bool   `yaml:"verbose" mapstructure:"verbose"`
}

func DefaultConfig() *Config {
	return &Config{
		DataFile:   "students.json",
		BackupDir:  "backups",
		CSVExport:  "students_export.csv",
		XLSXExport: "students_export.xlsx",
		LogFile:    "rollbook.log",
		Theme:      "green",
	}
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "rollbook")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "rollbook")
}

func Load() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths: cwd first so per-directory rosters work, then the
	// user config dir.
	viper.AddConfigPath(".")
	viper.AddConfigPath(configDir())

	// Environment variables (ROLLBOOK_DATA_FILE etc.)
	viper.SetEnvPrefix("ROLLBOOK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error produced
			return nil, err
		}
		// Config file not found; ignore and use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors and repairs blanks.
func (c *Config) Validate() error {
	if c.DataFile == "" {
		return fmt.Errorf("config: data_file is required")
	}
	if filepath.Ext(c.DataFile) != ".json" {
		return fmt.Errorf("config: data_file %q must be a .json file", c.DataFile)
	}
	if c.BackupDir == "" {
		c.BackupDir = "backups"
	}
	if c.CSVExport == "" {
		c.CSVExport = "students_export.csv"
	}
	if c.XLSXExport == "" {
		c.XLSXExport = "students_export.xlsx"
	}
	if c.LogFile == "" {
		c.LogFile = "rollbook.log"
	}
	return nil
}

// WriteDefault writes a starter config to the user config dir and returns
// its path. Refuses to clobber an existing file.
func WriteDefault() (string, error) {
	dir := configDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("config already exists at %s", path)
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return "", err
	}
	header := "# rollbook configuration. Every key can also be set via ROLLBOOK_* env vars.\n"
	return path, os.WriteFile(path, append([]byte(header), data...), 0644)
}
