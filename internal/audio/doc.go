// Package audio inspects and plays the audio buffers that pass through the
// voice commands. Playback uses oto/v3 and is only available in cgo builds.
package audio
