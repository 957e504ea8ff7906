package devices

import (
	"testing"
	"time"

	"github.com/smazurov/audiobridge/internal/events"
)

func TestServiceApplySwapsAndCloses(t *testing.T) {
	logger, _ := newTestLogger()
	first := speakers()
	handles := []*fakeHandle{first, speakers()}
	opened := 0
	natives := Natives{OpenSystem: func() (SystemHandle, error) {
		h := handles[opened]
		opened++
		return h, nil
	}}

	svc := NewService(natives, nil, logger)
	if got := svc.Apply(settings(true, true)); len(got) != 5 {
		t.Fatalf("first apply listed %d devices, want 5", len(got))
	}

	got := svc.Apply(settings(false, true))
	if len(got) != 3 {
		t.Errorf("second apply listed %d devices, want 3", len(got))
	}
	if first.closed != 1 {
		t.Errorf("previous handle closed %d times, want 1", first.closed)
	}
	if svc.Settings().EnableAsio {
		t.Error("Settings() not updated by Apply")
	}
	if b := svc.Backends(); len(b) != 1 || b[0] != BackendWasapi {
		t.Errorf("Backends() = %v, want [wasapi]", b)
	}
	if _, ok := svc.Find("mic"); !ok {
		t.Error("Find(mic) failed")
	}

	if err := svc.Close(); err != nil {
		t.Fatal(err)
	}
	if handles[1].closed != 1 {
		t.Errorf("current handle closed %d times, want 1", handles[1].closed)
	}
	if list, _ := svc.Devices(); len(list) != 0 {
		t.Errorf("Devices() after Close = %v, want empty", list)
	}
}

func TestServicePublishesEvents(t *testing.T) {
	logger, _ := newTestLogger()
	bus := events.New()
	enumerated := make(chan events.DevicesEnumeratedEvent, 4)
	failed := make(chan events.BackendFailedEvent, 4)
	defer bus.Subscribe(func(e events.DevicesEnumeratedEvent) { enumerated <- e })()
	defer bus.Subscribe(func(e events.BackendFailedEvent) { failed <- e })()

	svc := NewService(nativesWith(nil, nil), bus, logger)
	svc.Apply(settings(true, true))

	select {
	case e := <-failed:
		if e.Backend != "wasapi" {
			t.Errorf("failed backend = %q, want wasapi", e.Backend)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for BackendFailedEvent")
	}

	select {
	case e := <-enumerated:
		if e.Total != 2 || e.Counts["asio"] != 2 {
			t.Errorf("enumerated = %+v, want 2 asio devices", e)
		}
		if len(e.Backends) != 1 || e.Backends[0] != "asio" {
			t.Errorf("backends = %v, want [asio]", e.Backends)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for DevicesEnumeratedEvent")
	}
}
