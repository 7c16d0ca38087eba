//go:build !cgo

package audio

import (
	"context"
)

// PlayPCM is unavailable without cgo.
func PlayPCM(_ context.Context, _ []byte, _ int) error {
	return ErrPlaybackUnavailable
}
