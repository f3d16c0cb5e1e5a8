package config

const (
	defaultDataDir      = "~/.local/share/tvkeep"
	defaultLogDir       = "~/.local/share/tvkeep/logs"
	defaultTVDBBaseURL  = "https://api.thetvdb.com"
	defaultTVDBLanguage = "en"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		TVDB: TVDB{
			BaseURL:  defaultTVDBBaseURL,
			Language: defaultTVDBLanguage,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
