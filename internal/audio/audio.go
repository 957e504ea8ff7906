// Package audio talks to the native audio stacks: the installed hardware
// driver registry and the operating system's mixing backend.
package audio

import (
	"errors"
	"strings"
)

// Direction is the data flow of a device.
type Direction int

const (
	Render Direction = iota
	Capture
)

func (d Direction) String() string {
	if d == Capture {
		return "capture"
	}
	return "render"
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Driver is an installed hardware driver.
type Driver struct {
	Name        string `json:"name"`
	ID          string `json:"id,omitempty"`
	Description string `json:"description,omitempty"`
}

// ErrUnsupported is returned by native features missing on this platform.
var ErrUnsupported = errors.New("not supported on this platform")

// Registry lists installed hardware drivers.
type Registry struct{}

// NewRegistry returns the platform driver registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Drivers returns the installed drivers.
func (r *Registry) Drivers() ([]Driver, error) {
	return listDrivers()
}

// FindDriver looks name up case-insensitively against driver names and IDs.
func FindDriver(drivers []Driver, name string) (Driver, bool) {
	for _, d := range drivers {
		if strings.EqualFold(d.Name, name) || (d.ID != "" && strings.EqualFold(d.ID, name)) {
			return d, true
		}
	}
	return Driver{}, false
}
