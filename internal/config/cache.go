package config

import "time"

// CacheConfig defines settings for the in-process TTL cache that shields the
// database from repeated identical reads (provider search, avatar catalog,
// highlight lists).  MaxSize bounds the number of entries; per-dataset TTLs
// mirror how volatile each dataset is.  Values come from the environment
// with defaults suitable for a single-node deployment.
type CacheConfig struct {
    MaxSize       int           // soft capacity of the cache
    ProviderTTL   time.Duration // provider search results
    AvatarTTL     time.Duration // avatar catalog
    HighlightTTL  time.Duration // provider highlight lists
    SettingsTTL   time.Duration // panel settings
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults are used when variables are not set.
func LoadCacheConfig() CacheConfig {
    return CacheConfig{
        MaxSize:      atoi(getenv("CACHE_MAX_SIZE", "2000")),
        ProviderTTL:  parseDur(getenv("CACHE_PROVIDER_TTL", "5m")),
        AvatarTTL:    parseDur(getenv("CACHE_AVATAR_TTL", "1h")),
        HighlightTTL: parseDur(getenv("CACHE_HIGHLIGHT_TTL", "10m")),
        SettingsTTL:  parseDur(getenv("CACHE_SETTINGS_TTL", "10m")),
    }
}
