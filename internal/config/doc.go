// Package config defines the settings of the briefcase unit and its panel
// clients and provides helpers to load, validate and save them in YAML format.
//
// Validate fills defaults for every optional field. Watch follows the file
// on disk so that the log level and the alarm flash period can change while
// the unit runs.
package config
