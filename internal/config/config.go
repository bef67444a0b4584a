package config

import "strings"

// Config carries the process-wide, read-only settings resolved once at
// startup. The engine never performs ambient environment lookups; whatever
// it needs from the environment is captured here and passed in explicitly.
type Config struct {
	Locale string
}

// Load resolves the configuration from an environment accessor. Injecting
// the accessor keeps startup deterministic under test.
func Load(getenv func(string) string) Config {
	return Config{
		Locale: detectLocale(getenv),
	}
}

// detectLocale follows POSIX precedence: LC_ALL overrides LC_MESSAGES,
// which overrides LANG.
func detectLocale(getenv func(string) string) string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if val := strings.TrimSpace(getenv(key)); val != "" {
			return val
		}
	}
	return ""
}
