package devices

import (
	"bytes"
	"errors"
	"log/slog"

	"github.com/smazurov/audiobridge/internal/audio"
)

type fakeRegistry struct {
	drivers []audio.Driver
	err     error
}

func (r fakeRegistry) Drivers() ([]audio.Driver, error) {
	return r.drivers, r.err
}

type fakeHandle struct {
	render  []audio.SystemDevice
	capture []audio.SystemDevice
	err     error
	closed  int
}

func (h *fakeHandle) Devices(dir audio.Direction) ([]audio.SystemDevice, error) {
	if h.err != nil {
		return nil, h.err
	}
	if dir == audio.Capture {
		return h.capture, nil
	}
	return h.render, nil
}

func (h *fakeHandle) Close() error {
	h.closed++
	return nil
}

type fakeEnumerator struct {
	backend Backend
	devices []Device
	err     error
}

func (e fakeEnumerator) Backend() Backend { return e.backend }

func (e fakeEnumerator) ListDevices() ([]Device, error) { return e.devices, e.err }

var errOpen = errors.New("no audio service")

func newTestLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func speakers() *fakeHandle {
	return &fakeHandle{
		render:  []audio.SystemDevice{{ID: "spk", Name: "Speakers", Default: true}, {ID: "hdmi", Name: "HDMI"}},
		capture: []audio.SystemDevice{{ID: "mic", Name: "Microphone", Default: true}},
	}
}

func nativesWith(h *fakeHandle, registry DriverRegistry) Natives {
	return Natives{
		Registry: registry,
		OpenSystem: func() (SystemHandle, error) {
			if h == nil {
				return nil, errOpen
			}
			return h, nil
		},
	}
}

func uintPtr(v uint) *uint { return &v }

func ids(list []Device) []string {
	out := make([]string, len(list))
	for i, d := range list {
		out[i] = d.ID
	}
	return out
}
