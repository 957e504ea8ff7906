//go:build linux

package audio

import (
	"fmt"

	"github.com/smazurov/audiobridge/pkg/linuxav/alsa"
)

// listDrivers reports ALSA sound cards; a card's name or ID is what an
// endpoint's driver name refers to.
func listDrivers() ([]Driver, error) {
	cards, err := alsa.ListCards()
	if err != nil {
		return nil, fmt.Errorf("failed to list sound cards: %w", err)
	}

	drivers := make([]Driver, 0, len(cards))
	for _, c := range cards {
		drivers = append(drivers, Driver{
			Name:        c.Name,
			ID:          c.ID,
			Description: c.LongName,
		})
	}
	return drivers, nil
}
