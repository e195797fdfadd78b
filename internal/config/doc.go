// Package config loads esglens configuration from local and global YAML files
// with precedence rules. It is internal; CLI code maps flags and files into
// engine configuration.
package config
