//go:build cgo

package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// oto allows a single context per process; its format is fixed at creation.
var (
	otoMu   sync.Mutex
	otoCtx  *oto.Context
	otoRate int
)

// PlayerConfig contains configuration for the audio player.
type PlayerConfig struct {
	SampleRate int // Hz
	Channels   int // 1 = mono, 2 = stereo
}

// Player plays signed 16-bit little-endian PCM through the default device.
type Player struct {
	context  *oto.Context
	channels int
}

// NewPlayer creates a player for the given format.
func NewPlayer(config PlayerConfig) (*Player, error) {
	if config.SampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", config.SampleRate)
	}
	if config.Channels != 1 && config.Channels != 2 {
		return nil, fmt.Errorf("channels must be 1 (mono) or 2 (stereo), got %d", config.Channels)
	}

	otoMu.Lock()
	defer otoMu.Unlock()

	if otoCtx == nil {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   config.SampleRate,
			ChannelCount: config.Channels,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create oto context: %w", err)
		}
		<-ready
		otoCtx = ctx
		otoRate = config.SampleRate
	} else if otoRate != config.SampleRate {
		return nil, fmt.Errorf("audio device already opened at %d Hz", otoRate)
	}

	return &Player{context: otoCtx, channels: config.Channels}, nil
}

// Play blocks until pcm has been played or ctx is done.
func (p *Player) Play(ctx context.Context, pcm []byte) error {
	if len(pcm) == 0 {
		return errors.New("audio data is empty")
	}

	player := p.context.NewPlayer(bytes.NewReader(pcm))
	defer func() { _ = player.Close() }()
	player.Play()

	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return player.Err()
}

// PlayPCM plays mono pcm_s16le audio at sampleRate.
func PlayPCM(ctx context.Context, pcm []byte, sampleRate int) error {
	p, err := NewPlayer(PlayerConfig{SampleRate: sampleRate, Channels: 1})
	if err != nil {
		return err
	}
	return p.Play(ctx, pcm)
}
