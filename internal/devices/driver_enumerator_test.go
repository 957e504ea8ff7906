package devices

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/smazurov/audiobridge/internal/audio"
	"github.com/smazurov/audiobridge/internal/config"
)

func TestDriverEnumeratorListsConfiguredEndpoints(t *testing.T) {
	session := config.DriverSession{
		Output: config.Endpoint{DriverName: "Focusrite USB ASIO"},
		Inputs: [config.InputSlots]config.InputEndpoint{
			{DriverName: "Focusrite USB ASIO", Channel: uintPtr(1)},
			{DriverName: "Missing Driver"},
		},
	}
	registry := fakeRegistry{drivers: []audio.Driver{{Name: "Focusrite USB ASIO"}}}

	got, err := NewDriverEnumerator(session, registry).ListDevices()
	if err != nil {
		t.Fatalf("ListDevices failed: %v", err)
	}

	want := []Device{
		{ID: "{asio-out}", Name: "ASIO Out", Backend: BackendAsio, Direction: Render, Driver: "Focusrite USB ASIO", Installed: true},
		{ID: "{asio-in-0}", Name: "ASIO IN 0", Backend: BackendAsio, Direction: Capture, Driver: "Focusrite USB ASIO", Channel: uintPtr(1), Installed: true},
		{ID: "{asio-in-1}", Name: "ASIO IN 1", Backend: BackendAsio, Direction: Capture, Driver: "Missing Driver"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("devices mismatch (-want +got):\n%s", diff)
	}
}

func TestDriverEnumeratorSkipsUnconfigured(t *testing.T) {
	session := config.DriverSession{
		Inputs: [config.InputSlots]config.InputEndpoint{
			{Channel: uintPtr(3)},
			{DriverName: "In"},
		},
	}

	got, _ := NewDriverEnumerator(session, nil).ListDevices()
	if diff := cmp.Diff([]string{"{asio-in-1}"}, ids(got)); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}

	empty, err := NewDriverEnumerator(config.DriverSession{}, nil).ListDevices()
	if err != nil || len(empty) != 0 {
		t.Errorf("empty session = %v, %v; want no devices", empty, err)
	}
}

func TestDriverEnumeratorIgnoresRegistryErrors(t *testing.T) {
	session := config.DriverSession{Output: config.Endpoint{DriverName: "Out"}}
	got, err := NewDriverEnumerator(session, fakeRegistry{err: errors.New("access denied")}).ListDevices()
	if err != nil {
		t.Fatalf("ListDevices failed: %v", err)
	}
	if len(got) != 1 || got[0].Installed {
		t.Errorf("got %+v, want one uninstalled output", got)
	}
}

func TestDriverEnumeratorSnapshotsSession(t *testing.T) {
	session := config.DriverSession{
		Inputs: [config.InputSlots]config.InputEndpoint{{DriverName: "In", Channel: uintPtr(2)}},
	}
	e := NewDriverEnumerator(session, nil)
	*session.Inputs[0].Channel = 7
	session.Inputs[0].DriverName = "Changed"

	got, _ := e.ListDevices()
	if got[0].Driver != "In" || *got[0].Channel != 2 {
		t.Errorf("enumerator observed caller mutation: %+v", got[0])
	}

	// returned channel pointers are not shared with the enumerator either
	*got[0].Channel = 9
	again, _ := e.ListDevices()
	if *again[0].Channel != 2 {
		t.Errorf("channel = %d after mutating a returned device, want 2", *again[0].Channel)
	}
	if e.Session().Inputs[0].DriverName != "In" {
		t.Error("Session() does not reflect the snapshot")
	}
}
