package devices

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/smazurov/audiobridge/internal/logging"
)

// BackendError ties an error to the backend that produced it.
type BackendError struct {
	Backend Backend
	Err     error
}

func (e *BackendError) Error() string {
	return string(e.Backend) + ": " + e.Err.Error()
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// BackendErrors flattens err, as returned by ListDevices or Setup, into its
// per-backend parts.
func BackendErrors(err error) []*BackendError {
	if err == nil {
		return nil
	}
	if be, ok := err.(*BackendError); ok {
		return []*BackendError{be}
	}
	var out []*BackendError
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			out = append(out, BackendErrors(e)...)
		}
	}
	return out
}

// Aggregator presents several enumerators as one. It owns them: Close closes
// those that hold native resources.
type Aggregator struct {
	enumerators []Enumerator
	logger      *slog.Logger
}

// NewAggregator returns an empty aggregator.
func NewAggregator(logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = logging.GetLogger("devices")
	}
	return &Aggregator{logger: logger}
}

// Add appends e. Nil is ignored.
func (a *Aggregator) Add(e Enumerator) {
	if e == nil {
		return
	}
	a.enumerators = append(a.enumerators, e)
}

// Len returns the number of registered enumerators.
func (a *Aggregator) Len() int {
	return len(a.enumerators)
}

// Backends returns the backends in registration order.
func (a *Aggregator) Backends() []Backend {
	out := make([]Backend, len(a.enumerators))
	for i, e := range a.enumerators {
		out[i] = e.Backend()
	}
	return out
}

// ListDevices concatenates every enumerator's list in registration order.
// An enumerator that fails is logged and skipped; its error is joined into
// the returned error while the rest of the list is still returned.
func (a *Aggregator) ListDevices() ([]Device, error) {
	list := []Device{}
	var errs []error
	for _, e := range a.enumerators {
		found, err := e.ListDevices()
		if err != nil {
			a.logger.Warn("Device enumeration failed", "backend", e.Backend(), "error", err)
			errs = append(errs, &BackendError{Backend: e.Backend(), Err: err})
			continue
		}
		list = append(list, found...)
	}
	return list, errors.Join(errs...)
}

// Find returns the device with id.
func (a *Aggregator) Find(id string) (Device, bool) {
	list, _ := a.ListDevices()
	for _, d := range list {
		if d.ID == id {
			return d, true
		}
	}
	return Device{}, false
}

// Close closes every enumerator implementing io.Closer.
func (a *Aggregator) Close() error {
	var errs []error
	for _, e := range a.enumerators {
		if c, ok := e.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", e.Backend(), err))
			}
		}
	}
	return errors.Join(errs...)
}
