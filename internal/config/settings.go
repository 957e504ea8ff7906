package config

import (
	"fmt"
	"strings"
)

// FileName is the name of the INI file looked up next to the executable.
const FileName = "RS_ASIO.ini"

// InputSlots is the number of fixed driver input endpoints.
const InputSlots = 2

// BufferSizeMode selects which side dictates the buffer length of the shared driver session.
type BufferSizeMode int

const (
	// BufferSizeModeDriver lets the hardware driver pick the buffer size.
	BufferSizeModeDriver BufferSizeMode = iota
	// BufferSizeModeHost uses the buffer size requested by the host application.
	BufferSizeModeHost
)

// String returns the spelling used in the INI file.
func (m BufferSizeMode) String() string {
	switch m {
	case BufferSizeModeDriver:
		return "driver"
	case BufferSizeModeHost:
		return "host"
	default:
		return fmt.Sprintf("BufferSizeMode(%d)", int(m))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m BufferSizeMode) MarshalText() ([]byte, error) {
	switch m {
	case BufferSizeModeDriver, BufferSizeModeHost:
		return []byte(m.String()), nil
	default:
		return nil, fmt.Errorf("invalid buffer size mode %d", int(m))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler. Matching is case-insensitive.
func (m *BufferSizeMode) UnmarshalText(text []byte) error {
	mode, ok := parseBufferSizeMode(string(text))
	if !ok {
		return fmt.Errorf("invalid buffer size mode %q, valid values are \"driver\", \"host\"", text)
	}
	*m = mode
	return nil
}

func parseBufferSizeMode(s string) (BufferSizeMode, bool) {
	switch strings.ToLower(s) {
	case "driver":
		return BufferSizeModeDriver, true
	case "host":
		return BufferSizeModeHost, true
	default:
		return BufferSizeModeDriver, false
	}
}

// Endpoint is the output side of the driver session.
type Endpoint struct {
	DriverName string `toml:"driver" json:"driver"`
}

// Configured reports whether a driver was named for this endpoint.
func (e Endpoint) Configured() bool {
	return e.DriverName != ""
}

// InputEndpoint is one of the fixed capture slots of the driver session.
// A nil Channel means the backend default channel.
type InputEndpoint struct {
	DriverName string `toml:"driver" json:"driver"`
	Channel    *uint  `toml:"channel,omitempty" json:"channel,omitempty"`
}

// Configured reports whether a driver was named for this slot.
func (e InputEndpoint) Configured() bool {
	return e.DriverName != ""
}

// ChannelOr returns the configured channel or def when none is set.
func (e InputEndpoint) ChannelOr(def uint) uint {
	if e.Channel == nil {
		return def
	}
	return *e.Channel
}

// DriverSession holds the settings for the hardware driver backend.
type DriverSession struct {
	BufferSizeMode BufferSizeMode            `toml:"buffer_size_mode" json:"buffer_size_mode"`
	Output         Endpoint                  `toml:"output" json:"output"`
	Inputs         [InputSlots]InputEndpoint `toml:"inputs" json:"inputs"`
}

// Clone returns a copy that shares no channel pointers with s.
func (s DriverSession) Clone() DriverSession {
	out := s
	for i, in := range s.Inputs {
		if in.Channel != nil {
			c := *in.Channel
			out.Inputs[i].Channel = &c
		}
	}
	return out
}

// Settings is everything a user can set in RS_ASIO.ini.
// It is filled once by the parser and treated as read-only afterwards.
type Settings struct {
	EnableWasapi bool          `toml:"enable_wasapi" json:"enable_wasapi"`
	EnableAsio   bool          `toml:"enable_asio" json:"enable_asio"`
	Asio         DriverSession `toml:"asio" json:"asio"`
}

// Defaults returns the built-in settings used when no file is present.
func Defaults() Settings {
	return Settings{
		EnableWasapi: true,
		EnableAsio:   true,
		Asio: DriverSession{
			BufferSizeMode: BufferSizeModeDriver,
		},
	}
}

// Clone returns a deep copy of s.
func (s Settings) Clone() Settings {
	out := s
	out.Asio = s.Asio.Clone()
	return out
}
