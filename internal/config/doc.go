/*
Package config provides configuration management for StrataCache caches
with multi-source support.

# Sources

Configuration merges three sources with increasing precedence:

	┌─────────────────────────────────────────────┐
	│        Environment Variables                │ ← Highest Priority
	│           (STRATACACHE_*)                   │
	└─────────────────────────────────────────────┘
	                      │
	┌─────────────────────────────────────────────┐
	│         Configuration Files                 │
	│            (YAML format)                    │
	└─────────────────────────────────────────────┘
	                      │
	┌─────────────────────────────────────────────┐
	│           Default Values                    │ ← Lowest Priority
	└─────────────────────────────────────────────┘

# Usage

	cfg := config.NewDefault()

	if err := cfg.LoadFromFile("/etc/stratacache/cache.yaml"); err != nil {
		log.Fatal(err)
	}
	if err := cfg.LoadFromEnv(); err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

Configuration file format:

	max_size: 5000
	default_ttl: 15m
	eviction_strategy: adaptive
	enable_metrics: true
	cleanup_interval: 1m
	memory_pressure_threshold: 0.9
	min_healthy_hit_rate: 10.0

Environment variable mapping:

	STRATACACHE_MAX_SIZE="5000"
	STRATACACHE_DEFAULT_TTL="15m"
	STRATACACHE_EVICTION_STRATEGY="adaptive"
	STRATACACHE_ENABLE_METRICS="true"
	STRATACACHE_CLEANUP_INTERVAL="1m"

# Validation

Validate checks numeric ranges and required fields. Eviction strategy
names are deliberately not validated here: the policy registry is the
single source of truth for known strategies, including custom ones
registered at startup, so name resolution happens at cache construction.
*/
package config
