//go:build linux

// Package alsa lists ALSA sound cards and their PCM devices through the
// kernel control interface, without cgo or libasound.
//
//	cards, err := alsa.ListCards()
//	for _, c := range cards {
//	    fmt.Printf("%d %s (%s)\n", c.Number, c.Name, c.Driver)
//	}
package alsa
