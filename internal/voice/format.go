package voice

import (
	"path/filepath"
	"strings"

	"github.com/dgnsrekt/voicekit/internal/audio"
)

var extensionFormats = map[string]string{
	".wav":  audio.FormatWAV,
	".mp3":  audio.FormatMP3,
	".pcm":  audio.FormatPCM,
	".raw":  audio.FormatPCM,
	".ogg":  audio.FormatOGG,
	".webm": audio.FormatWebM,
	".m4a":  audio.FormatM4A,
}

// FormatForPath maps a file extension to the audio format declared to STT
// providers. Unrecognized extensions are declared as wav.
func FormatForPath(path string) string {
	if f, ok := extensionFormats[strings.ToLower(filepath.Ext(path))]; ok {
		return f
	}
	return audio.FormatWAV
}
