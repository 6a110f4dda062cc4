// Package config defines the application configuration structure and
// loads it from the environment via viper.
package config
