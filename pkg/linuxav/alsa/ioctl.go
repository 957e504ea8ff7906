//go:build linux

package alsa

import (
	"strings"
	"syscall"
	"unsafe"
)

// ioctl issues req on fd with arg pointing at the request struct.
func ioctl(fd uintptr, req uintptr, arg unsafe.Pointer) error {
	if _, _, errno := syscall.Syscall(syscall.SYS_IOCTL, fd, req, uintptr(arg)); errno != 0 {
		return errno
	}
	return nil
}

// cstr converts a NUL-padded kernel char array.
func cstr(b []byte) string {
	s, _, _ := strings.Cut(string(b), "\x00")
	return s
}
