//go:build linux

package alsa

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"syscall"
	"unsafe"
)

// Stream is the direction of a PCM device.
type Stream int32

const (
	StreamPlayback Stream = 0
	StreamCapture  Stream = 1
)

func (s Stream) String() string {
	if s == StreamCapture {
		return "capture"
	}
	return "playback"
}

// PCM is one PCM device of a card in one direction.
type PCM struct {
	Device int
	Name   string
	Stream Stream
}

// Card describes an ALSA sound card.
type Card struct {
	Number   int
	ID       string
	Driver   string
	Name     string
	LongName string
	Mixer    string
	PCMs     []PCM
}

// HWDevice returns the "hw:card,device" string for one of the card's PCMs.
func (c Card) HWDevice(device int) string {
	return FormatHWDevice(c.Number, device)
}

// FormatHWDevice creates an ALSA hw device string from card and device numbers.
func FormatHWDevice(card, device int) string {
	return "hw:" + strconv.Itoa(card) + "," + strconv.Itoa(device)
}

// ControlDir is where the kernel exposes the card control nodes.
var ControlDir = "/dev/snd"

// ListCards returns every card with a readable control node, ordered by card
// number. Cards whose control node cannot be opened or queried are skipped.
func ListCards() ([]Card, error) {
	paths, err := filepath.Glob(filepath.Join(ControlDir, "controlC*"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob control devices: %w", err)
	}

	var cards []Card
	for _, path := range paths {
		if _, ok := cardNumber(path); !ok {
			continue
		}
		card, err := readCard(path)
		if err != nil {
			continue
		}
		cards = append(cards, card)
	}

	slices.SortFunc(cards, func(a, b Card) int { return a.Number - b.Number })
	return cards, nil
}

func readCard(path string) (Card, error) {
	fd, err := syscall.Open(path, syscall.O_RDONLY|syscall.O_CLOEXEC, 0)
	if err != nil {
		return Card{}, &os.PathError{Op: "open", Path: path, Err: err}
	}
	defer syscall.Close(fd)

	var info sndCtlCardInfo
	if err := ioctl(uintptr(fd), sndrvCtlIoctlCardInfo, unsafe.Pointer(&info)); err != nil {
		return Card{}, fmt.Errorf("card info %s: %w", path, err)
	}

	card := Card{
		Number:   int(info.card),
		ID:       cstr(info.id[:]),
		Driver:   cstr(info.driver[:]),
		Name:     cstr(info.name[:]),
		LongName: cstr(info.longname[:]),
		Mixer:    cstr(info.mixername[:]),
	}
	card.PCMs = readPCMs(fd)
	return card, nil
}

// readPCMs walks the card's PCM devices and keeps each stream the device supports.
func readPCMs(fd int) []PCM {
	var pcms []PCM
	device := int32(-1)
	for {
		if err := ioctl(uintptr(fd), sndrvCtlIoctlPCMNextDevice, unsafe.Pointer(&device)); err != nil || device < 0 {
			return pcms
		}
		for _, stream := range []Stream{StreamPlayback, StreamCapture} {
			info := sndPCMInfo{device: uint32(device), stream: int32(stream)}
			if err := ioctl(uintptr(fd), sndrvCtlIoctlPCMInfo, unsafe.Pointer(&info)); err != nil {
				continue
			}
			pcms = append(pcms, PCM{Device: int(device), Name: cstr(info.name[:]), Stream: stream})
		}
	}
}

// cardNumber extracts N from a ".../controlCN" path.
func cardNumber(path string) (int, bool) {
	rest, ok := strings.CutPrefix(filepath.Base(path), "controlC")
	if !ok || rest == "" {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
