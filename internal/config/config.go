package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/viper"
)

const maxRecentFiles = 10

// Settings is the persisted user configuration: presentation preferences
// and the recent-files list. Nothing here feeds back into the dump model.
type Settings struct {
	Output      string   `mapstructure:"output"`
	ChartTopN   int      `mapstructure:"chart_top_n"`
	RecentFiles []string `mapstructure:"recent_files"`
}

// Dir returns the settings directory, created on demand.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("unable to resolve config dir: %w", err)
	}
	dir := filepath.Join(base, "heapdiff")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("unable to create config dir: %w", err)
	}
	return dir, nil
}

// Load reads settings from the config file, falling back to defaults when
// no file exists yet.
func Load() (*Settings, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}
	return &settings, nil
}

// LoadFromReader loads settings from raw YAML content (useful for testing).
func LoadFromReader(content []byte) (*Settings, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("unable to read config: %w", err)
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}
	return &settings, nil
}

// Save writes the settings back to the config file.
func (s *Settings) Save() error {
	dir, err := Dir()
	if err != nil {
		return err
	}

	v := viper.New()
	v.Set("output", s.Output)
	v.Set("chart_top_n", s.ChartTopN)
	v.Set("recent_files", s.RecentFiles)

	if err := v.WriteConfigAs(filepath.Join(dir, "config.yaml")); err != nil {
		return fmt.Errorf("unable to write config file: %w", err)
	}
	return nil
}

// AddRecentFile moves path to the front of the recent-files list, capped
// at maxRecentFiles.
func (s *Settings) AddRecentFile(path string) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	s.RecentFiles = slices.DeleteFunc(s.RecentFiles, func(p string) bool {
		return p == path
	})
	s.RecentFiles = append([]string{path}, s.RecentFiles...)
	if len(s.RecentFiles) > maxRecentFiles {
		s.RecentFiles = s.RecentFiles[:maxRecentFiles]
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output", "cli")
	v.SetDefault("chart_top_n", 10)
	v.SetDefault("recent_files", []string{})
}
