package events

// Event type constants for kelindar/event.
const (
	TypeConfigLoaded uint32 = iota + 1
	TypeDevicesEnumerated
	TypeBackendFailed
	TypeHotplug
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// ConfigLoadedEvent is published each time RS_ASIO.ini is (re)read.
type ConfigLoadedEvent struct {
	Path         string         `json:"path" example:"/opt/game/RS_ASIO.ini" doc:"Path of the INI file"`
	Found        bool           `json:"found" doc:"Whether the file existed; defaults are used otherwise"`
	Reload       bool           `json:"reload" doc:"True when triggered by a file change"`
	EnableAsio   bool           `json:"enable_asio" doc:"Driver backend enabled"`
	EnableWasapi bool           `json:"enable_wasapi" doc:"System backend enabled"`
	Diagnostics  map[string]int `json:"diagnostics,omitempty" doc:"Logged parse problems by kind"`
	Timestamp    string         `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for ConfigLoadedEvent.
func (e ConfigLoadedEvent) Type() uint32 { return TypeConfigLoaded }

// DevicesEnumeratedEvent is published after the aggregated list is rebuilt.
type DevicesEnumeratedEvent struct {
	Backends  []string       `json:"backends" example:"[\"asio\",\"wasapi\"]" doc:"Registered backends in order"`
	Counts    map[string]int `json:"counts" doc:"Devices per backend"`
	Total     int            `json:"total" example:"5" doc:"Total devices"`
	Timestamp string         `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for DevicesEnumeratedEvent.
func (e DevicesEnumeratedEvent) Type() uint32 { return TypeDevicesEnumerated }

// BackendFailedEvent reports a backend omitted from setup or failing to list.
type BackendFailedEvent struct {
	Backend   string `json:"backend" example:"wasapi" doc:"Backend name"`
	Error     string `json:"error" doc:"Failure description"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for BackendFailedEvent.
func (e BackendFailedEvent) Type() uint32 { return TypeBackendFailed }

// HotplugEvent reports a sound card added or removed.
type HotplugEvent struct {
	Action    string `json:"action" example:"add" doc:"Kernel action: add or remove"`
	Card      int    `json:"card" example:"1" doc:"ALSA card number"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for HotplugEvent.
func (e HotplugEvent) Type() uint32 { return TypeHotplug }
