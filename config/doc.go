// Package config provides configuration loading and validation for the
// cortex service.
//
// Configuration is layered: a config.yml file provides the base, a .env file
// fills the process environment, and CORTEX_-prefixed environment variables
// override both (e.g. CORTEX_SERVER_PORT, CORTEX_AUTH_SECRET).
package config
