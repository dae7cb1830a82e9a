package config

const (
	defaultArtworkDir      = "~/.config/nfog/artwork"
	defaultCacheDir        = "~/.cache/nfog"
	defaultLogDir          = "~/.local/share/nfog/logs"
	defaultCatalogProvider = "imdb"
	defaultCacheTTLHours   = 24 * 7
	defaultRequestTimeout  = 15
	defaultUserAgent       = "Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0"
	defaultTMDBLanguage    = "en-US"
	defaultTMDBBaseURL     = "https://api.themoviedb.org/3"
	defaultEncoding        = "utf-8"
	defaultArtwork         = "Classic"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultMediaInfo       = "mediainfo"
	sampleTMDBKey          = "your_tmdb_api_key_here"
)

// Default returns a Config populated with nfog defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ArtworkDir: defaultArtworkDir,
			CacheDir:   defaultCacheDir,
			LogDir:     defaultLogDir,
		},
		Catalog: Catalog{
			Provider:       defaultCatalogProvider,
			CacheEnabled:   true,
			CacheTTLHours:  defaultCacheTTLHours,
			RequestTimeout: defaultRequestTimeout,
			UserAgent:      defaultUserAgent,
		},
		TMDB: TMDB{
			BaseURL:  defaultTMDBBaseURL,
			Language: defaultTMDBLanguage,
		},
		Output: Output{
			Encoding: defaultEncoding,
		},
		Defaults: Defaults{
			Artwork: defaultArtwork,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Tools: Tools{
			MediaInfo: defaultMediaInfo,
		},
	}
}
