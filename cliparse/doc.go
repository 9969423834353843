// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Commands built with cobra register the same flags and resolve afterwards:

	cliparse.AddFlags(cmd.PersistentFlags(), &cfg)
	cfg, err = cliparse.Resolve(cfg)

# Precedence

CLI flags → environment (a .env file is loaded first) → YAML config file →
defaults.

# CLI Flags and Environment Variables

	-p, --port           PORT              Host server port (default: 3318)
	-u, --upstream       UPSTREAM_URL      Voting server base URL
	--results-path       RESULTS_PATH      default: /results-data
	--vote-path          VOTE_PATH         default: /vote
	--refresh-interval   REFRESH_INTERVAL  default: 5s
	--fade-delay         FADE_DELAY        default: 4s
	--remove-delay       REMOVE_DELAY      default: 500ms
	--fetch-timeout      FETCH_TIMEOUT     default: 10s
	--discard-stale      DISCARD_STALE     default: false
	--static-dir         STATIC_DIR        default: static
	--candidates         CANDIDATES        comma separated
	--metrics-addr       METRICS_ADDR      empty disables metrics
	-d, --db             DATABASE_PATH     default: database.db
	--log-format         LOG_FORMAT        text or json
	--log-level          LOG_LEVEL         debug, info, warn, error
	-c, --config         CHAINVOTE_CONFIG  YAML file

# Validation

Resolve rejects out-of-range ports, negative durations and unknown log
formats. Commands that talk to the voting server call RequireUpstream.
*/
package cliparse
