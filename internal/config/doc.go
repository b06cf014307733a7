// Package config loads slippy's configuration.
//
// Configuration is assembled in three steps:
//
//  1. Default values
//  2. A TOML (.toml) or YAML (.yaml, .yml) file, when one is given
//  3. SLIPPY_* environment variables
//
// Command-line flags are applied by the caller on top of the result.
// Validate checks the merged configuration, including the key bindings.
// A Watcher reports changes to the configuration file.
//
// Example file:
//
//	[keyboard]
//	enabled = true
//	pan_distance = 80
//	zoom_delta = 1
//
//	[keyboard.bindings]
//	"pan.north" = ["Up", "k"]
//
//	[map]
//	lat = 51.5
//	lng = -0.12
//	zoom = 10
package config
