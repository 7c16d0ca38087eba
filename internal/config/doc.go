// Package config turns viper state and the environment into a typed
// voicekit configuration.
package config
