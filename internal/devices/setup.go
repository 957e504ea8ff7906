package devices

import (
	"log/slog"

	"github.com/smazurov/audiobridge/internal/audio"
	"github.com/smazurov/audiobridge/internal/config"
	"github.com/smazurov/audiobridge/internal/logging"
)

// Natives bundles the native collaborators the enumerators are built on.
type Natives struct {
	Registry   DriverRegistry
	OpenSystem func() (SystemHandle, error)
}

// DefaultNatives returns the platform registry and mixing backend.
func DefaultNatives(logger *slog.Logger) Natives {
	if logger == nil {
		logger = logging.GetLogger("audio")
	}
	return Natives{
		Registry: audio.NewRegistry(),
		OpenSystem: func() (SystemHandle, error) {
			sys, err := audio.OpenSystem(logger)
			if err != nil {
				return nil, err
			}
			return sys, nil
		},
	}
}

// Setup populates agg from cfg: the driver backend first when enabled, then
// the system backend when enabled. A system backend that cannot be opened is
// logged and left out; the returned error reports it, and agg is usable
// either way.
func Setup(agg *Aggregator, cfg config.Settings, natives Natives, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.GetLogger("devices")
	}

	if cfg.EnableAsio {
		agg.Add(NewDriverEnumerator(cfg.Asio, natives.Registry))
	}

	if !cfg.EnableWasapi {
		return nil
	}
	if natives.OpenSystem == nil {
		logger.Warn("No system audio backend available, omitting it", "backend", BackendWasapi)
		return &BackendError{Backend: BackendWasapi, Err: audio.ErrUnsupported}
	}

	handle, err := natives.OpenSystem()
	if err != nil {
		logger.Warn("Failed to open system audio backend, omitting it", "backend", BackendWasapi, "error", err)
		return &BackendError{Backend: BackendWasapi, Err: err}
	}
	agg.Add(NewSystemEnumerator(handle))
	return nil
}
