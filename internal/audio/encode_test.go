package audio

import (
	"encoding/binary"
	"testing"
	"time"
)

func TestPCMToWAV(t *testing.T) {
	pcm := make([]byte, 16000*bytesPerSample)
	for i := 0; i < 16000; i++ {
		binary.LittleEndian.PutUint16(pcm[i*2:], uint16(int16(i%200-100)))
	}

	data, err := PCMToWAV(pcm, 16000, 1)
	if err != nil {
		t.Fatalf("PCMToWAV() error = %v", err)
	}

	d, err := WAVDuration(data)
	if err != nil {
		t.Fatalf("WAVDuration() error = %v", err)
	}
	if d != time.Second {
		t.Errorf("duration = %v, want 1s", d)
	}
	if rate, _ := WAVSampleRate(data); rate != 16000 {
		t.Errorf("sample rate = %d, want 16000", rate)
	}
	if len(data) != len(pcm)+44 {
		t.Errorf("wav size = %d, want %d", len(data), len(pcm)+44)
	}
}

func TestPCMToWAV_InvalidFormat(t *testing.T) {
	if _, err := PCMToWAV([]byte{0, 0}, 0, 1); err == nil {
		t.Error("expected an error for a zero sample rate")
	}
}

func TestMemFile_SeekAndOverwrite(t *testing.T) {
	var m memFile
	_, _ = m.Write([]byte("hello world"))
	if _, err := m.Seek(0, 0); err != nil {
		t.Fatal(err)
	}
	_, _ = m.Write([]byte("J"))
	if string(m.buf) != "Jello world" {
		t.Errorf("buf = %q", m.buf)
	}
	if _, err := m.Seek(-1, 0); err == nil {
		t.Error("expected an error seeking before the start")
	}
}
