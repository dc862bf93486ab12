package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/jhrncar/wattdash/pkg/pathing"
)

// Load reads the dashboard config from path, writing a default file first
// when none exists. The loaded value is returned to the caller rather than
// stored in a package variable.
func Load(path string) (*DashboardConfig, error) {
	// Create default if not exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := &DashboardConfig{
			DatabasePath:  pathing.GetDashboardDbPath(),
			ListenAddress: "0.0.0.0",
			ListenPort:    8050,
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, err
			}
		}
		cfgFile, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		defer cfgFile.Close()
		if err := toml.NewEncoder(cfgFile).Encode(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	// Load existing config
	var cfg DashboardConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
