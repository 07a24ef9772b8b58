package config

const (
	defaultConfigPath   = "~/.config/webify/config.toml"
	projectConfigName   = "webify.toml"
	defaultOutputRoot   = "."
	defaultMediaPrepend = "./"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputRoot: defaultOutputRoot,
		},
		Media: Media{
			URLPrepend: defaultMediaPrepend,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
