// Package config provides environment-driven configuration for the example:
// Book stock in a public library.
//
// Configuration is read from DEMO_* environment variables with sensible
// defaults, so the load generator runs without any setup. Resolver methods
// translate the raw string settings into the codec, mirror mode, and log
// level values the composition root needs.
//
// This package is part of the shell (infrastructure) layer.
package config
