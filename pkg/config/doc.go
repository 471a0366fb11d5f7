// Package config loads wonders settings. Sources are layered, each one
// overriding the previous: the embedded defaults, a user file, WONDERS_*
// environment variables and explicit overrides (usually command line flags).
package config
