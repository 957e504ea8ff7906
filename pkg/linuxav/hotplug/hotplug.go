//go:build linux

// Package hotplug watches kernel uevents over netlink without cgo.
//
// A Monitor is usually restricted to the sound subsystem so that adding or
// removing an audio interface can trigger device re-enumeration.
package hotplug

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"strings"
	"syscall"
)

// Actions reported by the kernel.
const (
	ActionAdd    = "add"
	ActionRemove = "remove"
	ActionChange = "change"
	ActionBind   = "bind"
	ActionUnbind = "unbind"
)

// Subsystem names.
const (
	SubsystemSound = "sound"
	SubsystemUSB   = "usb"
)

// Event is a parsed kernel uevent.
type Event struct {
	Action    string
	KObj      string
	Subsystem string
	DevType   string
	DevName   string
	DevPath   string
	Env       map[string]string
}

// SoundCard returns N when the event concerns the card object itself
// (".../sound/cardN"), as opposed to one of its control or PCM nodes.
func (e Event) SoundCard() (int, bool) {
	if e.Subsystem != SubsystemSound {
		return 0, false
	}
	path := e.DevPath
	if path == "" {
		path = e.KObj
	}
	i := strings.LastIndex(path, "/card")
	if i < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(path[i+len("/card"):])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// netlinkKobjectUEvent is the netlink protocol for kernel object events.
const netlinkKobjectUEvent = 15

// Monitor receives kernel uevents from the broadcast group.
type Monitor struct {
	fd         int
	subsystems map[string]struct{}
}

// NewMonitor opens a netlink socket. Only events from the given subsystems
// are delivered; with none, every event is.
func NewMonitor(subsystems ...string) (*Monitor, error) {
	fd, err := syscall.Socket(syscall.AF_NETLINK, syscall.SOCK_DGRAM|syscall.SOCK_CLOEXEC, netlinkKobjectUEvent)
	if err != nil {
		return nil, err
	}

	addr := &syscall.SockaddrNetlink{Family: syscall.AF_NETLINK, Groups: 1}
	if err := syscall.Bind(fd, addr); err != nil {
		syscall.Close(fd)
		return nil, err
	}

	// Recvfrom wakes up every second so Run can observe cancellation.
	tv := syscall.Timeval{Sec: 1}
	if err := syscall.SetsockoptTimeval(fd, syscall.SOL_SOCKET, syscall.SO_RCVTIMEO, &tv); err != nil {
		syscall.Close(fd)
		return nil, err
	}

	m := &Monitor{fd: fd, subsystems: make(map[string]struct{}, len(subsystems))}
	for _, s := range subsystems {
		m.subsystems[s] = struct{}{}
	}
	return m, nil
}

// Close releases the socket.
func (m *Monitor) Close() error {
	return syscall.Close(m.fd)
}

// Run delivers events until ctx is cancelled or the socket fails.
// events is closed when Run returns.
func (m *Monitor) Run(ctx context.Context, events chan<- Event) error {
	defer close(events)

	buf := make([]byte, 8192)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, _, err := syscall.Recvfrom(m.fd, buf, 0)
		if err != nil {
			if errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EINTR) {
				continue
			}
			return err
		}

		event, ok := ParseUEvent(buf[:n])
		if !ok || !m.wants(event.Subsystem) {
			continue
		}

		select {
		case events <- event:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (m *Monitor) wants(subsystem string) bool {
	if len(m.subsystems) == 0 {
		return true
	}
	_, ok := m.subsystems[subsystem]
	return ok
}

// ParseUEvent parses "ACTION@KOBJ\0KEY=VALUE\0...". Messages re-broadcast by
// udev carry a binary "libudev" header, which is skipped.
func ParseUEvent(data []byte) (Event, bool) {
	if bytes.HasPrefix(data, []byte("libudev")) {
		data = skipUdevHeader(data)
	}

	fields := bytes.Split(data, []byte{0})
	action, kobj, ok := strings.Cut(string(fields[0]), "@")
	if !ok || action == "" {
		return Event{}, false
	}

	event := Event{Action: action, KObj: kobj, Env: make(map[string]string)}
	for _, f := range fields[1:] {
		key, value, ok := strings.Cut(string(f), "=")
		if !ok || key == "" {
			continue
		}
		event.Env[key] = value
		switch key {
		case "SUBSYSTEM":
			event.Subsystem = value
		case "DEVTYPE":
			event.DevType = value
		case "DEVNAME":
			event.DevName = value
		case "DEVPATH":
			event.DevPath = value
		}
	}
	return event, true
}

// skipUdevHeader returns the data after the first NUL that is followed by a
// lowercase "action@" token.
func skipUdevHeader(data []byte) []byte {
	for i := 0; i < len(data)-1; i++ {
		if data[i] != 0 {
			continue
		}
		rest := data[i+1:]
		if at := bytes.IndexByte(rest, '@'); at > 0 && at < 20 && isAction(rest[:at]) {
			return rest
		}
	}
	return data
}

func isAction(b []byte) bool {
	for _, c := range b {
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}
