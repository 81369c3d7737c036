// Package config loads and validates user settings and sanitizes user input.
package config
