package devices

import (
	"strconv"

	"github.com/smazurov/audiobridge/internal/audio"
	"github.com/smazurov/audiobridge/internal/config"
)

// DriverOutputID is the stable ID of the output endpoint.
const DriverOutputID = "{asio-out}"

// DriverEnumerator lists the endpoints configured for the hardware-driver
// backend. Whether a driver is actually installed only annotates the entry.
type DriverEnumerator struct {
	session  config.DriverSession
	registry DriverRegistry
}

// NewDriverEnumerator snapshots session. registry may be nil.
func NewDriverEnumerator(session config.DriverSession, registry DriverRegistry) *DriverEnumerator {
	return &DriverEnumerator{session: session.Clone(), registry: registry}
}

// Backend implements Enumerator.
func (e *DriverEnumerator) Backend() Backend {
	return BackendAsio
}

// Session returns a copy of the driver session this enumerator was built from.
func (e *DriverEnumerator) Session() config.DriverSession {
	return e.session.Clone()
}

// ListDevices returns the output endpoint then input slots 0 and 1, skipping
// endpoints without a driver name. It never fails.
func (e *DriverEnumerator) ListDevices() ([]Device, error) {
	var installed []audio.Driver
	if e.registry != nil {
		// a registry failure only leaves Installed unset
		installed, _ = e.registry.Drivers()
	}

	var list []Device
	if out := e.session.Output; out.Configured() {
		_, ok := audio.FindDriver(installed, out.DriverName)
		list = append(list, Device{
			ID:        DriverOutputID,
			Name:      "ASIO Out",
			Backend:   BackendAsio,
			Direction: Render,
			Driver:    out.DriverName,
			Installed: ok,
		})
	}

	for slot, in := range e.session.Inputs {
		if !in.Configured() {
			continue
		}
		_, ok := audio.FindDriver(installed, in.DriverName)
		var channel *uint
		if in.Channel != nil {
			c := *in.Channel
			channel = &c
		}
		list = append(list, Device{
			ID:        DriverInputID(slot),
			Name:      "ASIO IN " + strconv.Itoa(slot),
			Backend:   BackendAsio,
			Direction: Capture,
			Driver:    in.DriverName,
			Channel:   channel,
			Installed: ok,
		})
	}
	return list, nil
}

// DriverInputID returns the stable ID of input slot.
func DriverInputID(slot int) string {
	return "{asio-in-" + strconv.Itoa(slot) + "}"
}
