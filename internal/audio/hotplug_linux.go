//go:build linux

package audio

import (
	"context"
	"errors"
	"fmt"

	"github.com/smazurov/audiobridge/pkg/linuxav/hotplug"
)

// CardEvent reports a sound card being added or removed.
type CardEvent struct {
	Action string
	Card   int
}

// WatchCards calls fn for every sound card add or remove until ctx is done.
func WatchCards(ctx context.Context, fn func(CardEvent)) error {
	m, err := hotplug.NewMonitor(hotplug.SubsystemSound)
	if err != nil {
		return fmt.Errorf("failed to open uevent monitor: %w", err)
	}
	defer m.Close()

	events := make(chan hotplug.Event, 16)
	errCh := make(chan error, 1)
	go func() { errCh <- m.Run(ctx, events) }()

	for ev := range events {
		if ev.Action != hotplug.ActionAdd && ev.Action != hotplug.ActionRemove {
			continue
		}
		card, ok := ev.SoundCard()
		if !ok {
			continue
		}
		fn(CardEvent{Action: ev.Action, Card: card})
	}

	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
