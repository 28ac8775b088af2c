package config

const (
	defaultConfigPath      = "~/.config/prproj/config.toml"
	projectConfigName      = "prproj.toml"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultNamespacePolicy = "per_track"
	defaultMediaWidth      = 1920
	defaultMediaHeight     = 1080
	defaultCatalogPath     = "~/.local/share/prproj/catalog.db"

	// LogLevelEnv overrides logging.level when the file leaves it unset.
	LogLevelEnv = "PRPROJ_LOG_LEVEL"
)

// Default returns a Config populated with defaults.
func Default() Config {
	return Config{
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  "",
		},
		Reader: Reader{
			NamespacePolicy: defaultNamespacePolicy,
			MediaWidth:      defaultMediaWidth,
			MediaHeight:     defaultMediaHeight,
		},
		Catalog: Catalog{
			Enabled: false,
			Path:    defaultCatalogPath,
		},
	}
}
