package pathing

import "path/filepath"

// GetDashboardDbPath is the default location of the meter database.
func GetDashboardDbPath() string {
	return filepath.Join(GetDataDir(), "wattdash.db")
}

// GetDefaultConfigPath is where the dashboard config lives unless
// overridden with --config.
func GetDefaultConfigPath() string {
	return filepath.Join(GetConfigDir(), "wattdash.toml")
}

func GetDataDir() string {
	return "/var/lib/wattdash"
}

func GetConfigDir() string {
	return "/etc/wattdash"
}
