// Package devices merges the audio backends into one device list.
package devices

import (
	"github.com/smazurov/audiobridge/internal/audio"
)

// Backend identifies where a device comes from.
type Backend string

const (
	// BackendAsio is the hardware-driver backend configured in [Asio.*].
	BackendAsio Backend = "asio"
	// BackendWasapi is the operating system's shared mixing backend.
	BackendWasapi Backend = "wasapi"
)

// Direction aliases audio.Direction so callers need only this package.
type Direction = audio.Direction

const (
	Render  = audio.Render
	Capture = audio.Capture
)

// Device is one entry of the aggregated list.
type Device struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Backend   Backend   `json:"backend"`
	Direction Direction `json:"direction"`
	Driver    string    `json:"driver,omitempty"`
	Channel   *uint     `json:"channel,omitempty"`
	Installed bool      `json:"installed"`
	Default   bool      `json:"default"`
}

// Enumerator lists the devices of a single backend.
type Enumerator interface {
	Backend() Backend
	ListDevices() ([]Device, error)
}

// DriverRegistry reports installed hardware drivers.
type DriverRegistry interface {
	Drivers() ([]audio.Driver, error)
}

// SystemHandle is an open OS mixing backend.
type SystemHandle interface {
	Devices(dir audio.Direction) ([]audio.SystemDevice, error)
	Close() error
}
