package config

type DashboardConfig struct {
	DatabasePath  string `toml:"database_path"`
	ListenAddress string `toml:"listen_address"`
	ListenPort    int    `toml:"listen_port"`
}
