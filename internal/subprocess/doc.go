// Package subprocess runs short-lived helper processes such as the piper
// binary and external capability plugins.
package subprocess
