package devices

import (
	"log/slog"
	"sync"
	"time"

	"github.com/smazurov/audiobridge/internal/config"
	"github.com/smazurov/audiobridge/internal/events"
	"github.com/smazurov/audiobridge/internal/logging"
)

// Service keeps the current aggregator and replaces it when the
// configuration changes.
type Service struct {
	natives Natives
	bus     *events.Bus
	logger  *slog.Logger

	mu       sync.RWMutex
	agg      *Aggregator
	settings config.Settings
}

// NewService creates a service with an empty aggregator. bus may be nil.
func NewService(natives Natives, bus *events.Bus, logger *slog.Logger) *Service {
	if logger == nil {
		logger = logging.GetLogger("devices")
	}
	return &Service{
		natives:  natives,
		bus:      bus,
		logger:   logger,
		agg:      NewAggregator(logger),
		settings: config.Defaults(),
	}
}

// Apply builds a fresh aggregator for cfg, swaps it in, closes the previous
// one and returns the new device list.
func (s *Service) Apply(cfg config.Settings) []Device {
	agg := NewAggregator(s.logger)
	s.reportFailures(Setup(agg, cfg, s.natives, s.logger))

	s.mu.Lock()
	old := s.agg
	s.agg = agg
	s.settings = cfg.Clone()
	s.mu.Unlock()

	if err := old.Close(); err != nil {
		s.logger.Warn("Failed to close previous enumerators", "error", err)
	}

	s.logger.Info("Device backends configured", "backends", agg.Backends())
	return s.Refresh()
}

// Refresh re-lists the current aggregator and publishes the result.
func (s *Service) Refresh() []Device {
	s.mu.RLock()
	agg := s.agg
	list, err := agg.ListDevices()
	backends := agg.Backends()
	s.mu.RUnlock()

	s.reportFailures(err)

	counts := make(map[string]int, len(backends))
	names := make([]string, len(backends))
	for i, b := range backends {
		names[i] = string(b)
		counts[string(b)] = 0
	}
	for _, d := range list {
		counts[string(d.Backend)]++
	}

	s.logger.Debug("Devices enumerated", "total", len(list), "counts", counts)
	s.publish(events.DevicesEnumeratedEvent{
		Backends:  names,
		Counts:    counts,
		Total:     len(list),
		Timestamp: time.Now().Format(time.RFC3339),
	})
	return list
}

// Devices lists the current aggregator without publishing.
func (s *Service) Devices() ([]Device, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.agg.ListDevices()
}

// Find returns the device with id from the current aggregator.
func (s *Service) Find(id string) (Device, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.agg.Find(id)
}

// Backends returns the backends of the current aggregator.
func (s *Service) Backends() []Backend {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.agg.Backends()
}

// Settings returns the settings last applied.
func (s *Service) Settings() config.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.Clone()
}

// Close releases the current aggregator.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.agg.Close()
	s.agg = NewAggregator(s.logger)
	return err
}

func (s *Service) reportFailures(err error) {
	for _, be := range BackendErrors(err) {
		s.publish(events.BackendFailedEvent{
			Backend:   string(be.Backend),
			Error:     be.Err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
	}
}

func (s *Service) publish(ev events.Event) {
	if s.bus != nil {
		s.bus.Publish(ev)
	}
}
