package audio

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/go-audio/wav"
)

// Audio format names as declared to and by providers.
const (
	FormatWAV      = "wav"
	FormatMP3      = "mp3"
	FormatPCM      = "pcm_s16le"
	FormatOGG      = "ogg"
	FormatWebM     = "webm"
	FormatM4A      = "m4a"
	bytesPerSample = 2
)

var (
	// ErrInvalidWAV indicates the buffer does not carry a readable WAV header.
	ErrInvalidWAV = errors.New("invalid WAV data")

	// ErrUnknownDuration indicates the duration cannot be derived for the format.
	ErrUnknownDuration = errors.New("duration unknown for format")

	// ErrPlaybackUnavailable indicates this build cannot play audio.
	ErrPlaybackUnavailable = errors.New("audio playback unavailable in this build")
)

// Duration returns the play time of data. WAV durations come from the
// header; raw pcm_s16le is assumed to be mono at sampleRate.
func Duration(data []byte, format string, sampleRate int) (time.Duration, error) {
	switch format {
	case FormatWAV:
		return WAVDuration(data)
	case FormatPCM:
		return PCMDuration(len(data), sampleRate, 1)
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownDuration, format)
	}
}

// WAVDuration reads the duration from a WAV header.
func WAVDuration(data []byte) (time.Duration, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return 0, ErrInvalidWAV
	}
	if err := dec.FwdToPCM(); err != nil {
		return 0, fmt.Errorf("unable to locate WAV data chunk: %w", err)
	}

	bytesPerSec := int64(dec.AvgBytesPerSec)
	if bytesPerSec == 0 {
		bytesPerSec = int64(dec.SampleRate) * int64(dec.NumChans) * int64(dec.BitDepth) / 8
	}
	if bytesPerSec == 0 {
		return 0, ErrInvalidWAV
	}
	return time.Duration(dec.PCMLen()) * time.Second / time.Duration(bytesPerSec), nil
}

// WAVSampleRate returns the sample rate declared in a WAV header.
func WAVSampleRate(data []byte) (int, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return 0, ErrInvalidWAV
	}
	return int(dec.SampleRate), nil
}

// PCMDuration computes the duration of size bytes of signed 16-bit PCM.
func PCMDuration(size, sampleRate, channels int) (time.Duration, error) {
	if sampleRate <= 0 || channels <= 0 {
		return 0, fmt.Errorf("%w: pcm without sample rate", ErrUnknownDuration)
	}
	samples := size / (channels * bytesPerSample)
	return time.Duration(samples) * time.Second / time.Duration(sampleRate), nil
}
