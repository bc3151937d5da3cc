package config

const (
	defaultOutputDir      = "~/Downloads/captions"
	defaultLogDir         = "~/.local/share/ccget/logs"
	defaultDataDir        = "~/.local/share/ccget"
	defaultYouTubeBaseURL = "https://www.youtube.com"
	defaultClientName     = "ANDROID"
	defaultClientVersion  = "19.09.37"
	defaultUserAgent      = "com.google.android.youtube/19.09.37 (Linux; U; Android 11) gzip"
	defaultRequestTimeout = 30
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
			DataDir:   defaultDataDir,
		},
		YouTube: YouTube{
			BaseURL:        defaultYouTubeBaseURL,
			ClientName:     defaultClientName,
			ClientVersion:  defaultClientVersion,
			UserAgent:      defaultUserAgent,
			RequestTimeout: defaultRequestTimeout,
		},
		Captions: Captions{
			Languages:    []string{"en"},
			PreferManual: true,
			FallbackAuto: true,
		},
		Output: Output{
			UseTitle:          false,
			OverwriteExisting: false,
		},
		History: History{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
