package audio

import (
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"sync"

	"github.com/gen2brain/malgo"
)

// SystemDevice is a device reported by the OS mixing backend.
type SystemDevice struct {
	ID      string
	Name    string
	Default bool
}

// System is an open connection to the OS mixing backend.
type System struct {
	ctx    *malgo.AllocatedContext
	logger *slog.Logger
	once   sync.Once
}

// systemBackends lists the mixing backends tried on this platform, in order.
func systemBackends() []malgo.Backend {
	switch runtime.GOOS {
	case "windows":
		return []malgo.Backend{malgo.BackendWasapi}
	case "darwin":
		return []malgo.Backend{malgo.BackendCoreaudio}
	default:
		return []malgo.Backend{malgo.BackendPulseaudio, malgo.BackendAlsa}
	}
}

// OpenSystem initializes the platform mixing backend.
func OpenSystem(logger *slog.Logger) (*System, error) {
	if logger == nil {
		logger = slog.Default()
	}

	ctx, err := malgo.InitContext(systemBackends(), malgo.ContextConfig{}, func(message string) {
		logger.Debug("miniaudio", "message", strings.TrimSpace(message))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize audio context: %w", err)
	}
	return &System{ctx: ctx, logger: logger}, nil
}

// Devices lists the backend's devices for dir.
func (s *System) Devices(dir Direction) ([]SystemDevice, error) {
	kind := malgo.Playback
	if dir == Capture {
		kind = malgo.Capture
	}

	infos, err := s.ctx.Devices(kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s devices: %w", dir, err)
	}

	devices := make([]SystemDevice, 0, len(infos))
	for _, info := range infos {
		devices = append(devices, SystemDevice{
			ID:      info.ID.String(),
			Name:    info.Name(),
			Default: info.IsDefault != 0,
		})
	}
	return devices, nil
}

// Close releases the context. Further calls are no-ops.
func (s *System) Close() error {
	var err error
	s.once.Do(func() {
		err = s.ctx.Uninit()
		s.ctx.Free()
	})
	return err
}
