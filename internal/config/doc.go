// Package config loads ankibridge settings.
//
// # Overview
//
// Settings come from three places, later sources winning:
//
//  1. Built-in defaults
//  2. The TOML config file (default ~/.config/ankibridge/config.toml)
//  3. ANKIBRIDGE_* environment variables, optionally seeded from a .env file
//     in the working directory
//
// A missing config file is not an error. A malformed one is.
//
// # TOML Format
//
//	[log]
//	level = "info"        # debug, info, warn, error
//	format = "console"    # console or json
//	file = "~/.local/share/ankibridge/ankibridge.log"
//
//	[bridge]
//	user_agent = ""             # reported by getOs; empty means platform default
//	mobile_success_url = ""     # x-success callback for the mobile handoff
//
// # Environment
//
//	ANKIBRIDGE_LOG_LEVEL
//	ANKIBRIDGE_LOG_FORMAT
//	ANKIBRIDGE_LOG_FILE
//	ANKIBRIDGE_USER_AGENT
//	ANKIBRIDGE_MOBILE_SUCCESS_URL
//
// Empty values are ignored. Values in .env never overwrite variables that are
// already set in the process environment.
//
// # Path Expansion
//
// Paths starting with ~ are expanded to the home directory and every path is
// made absolute. The AnkiConnect endpoint is fixed and not configurable here.
package config
