// Package config loads, validates, and caches level configurations from
// a directory of JSON files. The Manager satisfies the service layer's
// LevelManager interface and falls back to the built-in level when the
// directory carries no default.
package config
