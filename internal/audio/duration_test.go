package audio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// writeWAV encodes seconds of silence as a mono 16-bit WAV file.
func writeWAV(t *testing.T, sampleRate int, seconds int) []byte {
	t.Helper()
	path := filepath.Join(t.TempDir(), "silence.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           make([]int, sampleRate*seconds),
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close encoder: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestWAVDuration(t *testing.T) {
	data := writeWAV(t, 16000, 2)

	d, err := Duration(data, FormatWAV, 0)
	if err != nil {
		t.Fatalf("Duration() error = %v", err)
	}
	if d != 2*time.Second {
		t.Errorf("Duration() = %v, want 2s", d)
	}

	rate, err := WAVSampleRate(data)
	if err != nil {
		t.Fatalf("WAVSampleRate() error = %v", err)
	}
	if rate != 16000 {
		t.Errorf("WAVSampleRate() = %d, want 16000", rate)
	}
}

func TestWAVDuration_InvalidData(t *testing.T) {
	_, err := WAVDuration([]byte("definitely not a wav file"))
	if !errors.Is(err, ErrInvalidWAV) {
		t.Errorf("WAVDuration() error = %v, want ErrInvalidWAV", err)
	}
}

func TestPCMDuration(t *testing.T) {
	tests := []struct {
		name       string
		size       int
		sampleRate int
		want       time.Duration
		wantErr    bool
	}{
		{name: "one second at 22050", size: 44100, sampleRate: 22050, want: time.Second},
		{name: "half second at 24000", size: 24000, sampleRate: 24000, want: 500 * time.Millisecond},
		{name: "empty", size: 0, sampleRate: 16000, want: 0},
		{name: "no sample rate", size: 100, sampleRate: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Duration(make([]byte, tt.size), FormatPCM, tt.sampleRate)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Duration() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Duration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDuration_UnknownFormat(t *testing.T) {
	if _, err := Duration([]byte{1, 2, 3}, FormatMP3, 0); !errors.Is(err, ErrUnknownDuration) {
		t.Errorf("Duration(mp3) error = %v, want ErrUnknownDuration", err)
	}
}
