// Package config holds the typed configuration for the indentation
// engine.
//
// Configuration values are plain snapshot structs: mutating a returned
// struct does not affect any other holder. Defaults come from
// DefaultIndent; functional options adjust individual fields; LoadFile
// merges settings from a JSON file on top of the defaults.
package config
