package devices

import (
	"fmt"
	"sync"

	"github.com/smazurov/audiobridge/internal/audio"
)

// SystemEnumerator lists the OS mixing backend's devices. It takes no
// configuration.
type SystemEnumerator struct {
	mu     sync.Mutex
	handle SystemHandle
}

// NewSystemEnumerator takes ownership of handle.
func NewSystemEnumerator(handle SystemHandle) *SystemEnumerator {
	return &SystemEnumerator{handle: handle}
}

// Backend implements Enumerator.
func (e *SystemEnumerator) Backend() Backend {
	return BackendWasapi
}

// ListDevices returns playback devices followed by capture devices.
func (e *SystemEnumerator) ListDevices() ([]Device, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.handle == nil {
		return nil, fmt.Errorf("system backend closed")
	}

	var list []Device
	for _, dir := range []Direction{Render, Capture} {
		found, err := e.handle.Devices(dir)
		if err != nil {
			return nil, err
		}
		for _, d := range found {
			list = append(list, systemDevice(d, dir))
		}
	}
	return list, nil
}

// Close releases the handle.
func (e *SystemEnumerator) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.handle == nil {
		return nil
	}
	err := e.handle.Close()
	e.handle = nil
	return err
}

func systemDevice(d audio.SystemDevice, dir Direction) Device {
	return Device{
		ID:        d.ID,
		Name:      d.Name,
		Backend:   BackendWasapi,
		Direction: dir,
		Installed: true,
		Default:   d.Default,
	}
}
