// Package voice implements the "voice" plugin: transcription and speech
// synthesis commands that delegate to STT and TTS providers discovered
// through the host's capability lookup.
//
// Providers come from independently built plugins, so nothing returned by
// the lookup is trusted until it has passed IsSTTProvider or IsTTSProvider.
package voice
