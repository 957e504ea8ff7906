package metrics

import (
	"github.com/smazurov/audiobridge/internal/events"
)

// Subscribe keeps the metrics in step with bus events. The returned function
// removes every subscription.
func (m *Metrics) Subscribe(bus *events.Bus) func() {
	unsubs := []func(){
		bus.Subscribe(func(e events.ConfigLoadedEvent) {
			m.SetBackendEnabled("asio", e.EnableAsio)
			m.SetBackendEnabled("wasapi", e.EnableWasapi)
			for kind, n := range e.Diagnostics {
				m.AddDiagnostics(kind, n)
			}
			if e.Reload {
				m.IncReloads()
			}
		}),
		bus.Subscribe(func(e events.DevicesEnumeratedEvent) {
			counts := make(map[string]int, len(e.Backends))
			for _, b := range e.Backends {
				counts[b] = 0
			}
			for b, n := range e.Counts {
				counts[b] = n
			}
			m.SetDevices(counts)
		}),
		bus.Subscribe(func(e events.BackendFailedEvent) {
			m.IncBackendFailures(e.Backend)
		}),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}
