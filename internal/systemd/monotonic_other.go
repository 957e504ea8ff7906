//go:build !linux

package systemd

// systemd only runs on Linux.
func monotonicUsec() (uint64, bool) { return 0, false }
