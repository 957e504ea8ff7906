//go:build !linux

package audio

import "context"

// CardEvent reports a sound card being added or removed.
type CardEvent struct {
	Action string
	Card   int
}

// WatchCards is unavailable off Linux.
func WatchCards(_ context.Context, _ func(CardEvent)) error {
	return ErrUnsupported
}
