// Package config provides configuration structures and utilities for ilmt-transform.
// It defines the options of a transformation run, the optional YAML defaults
// file, and the naming rules for generated files.
package config
