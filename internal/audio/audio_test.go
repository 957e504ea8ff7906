package audio

import "testing"

func TestFindDriver(t *testing.T) {
	drivers := []Driver{
		{Name: "Focusrite USB ASIO", ID: "{5C2D1B8F}"},
		{Name: "ASIO4ALL v2"},
		{Name: "USB Audio", ID: "Device"},
	}

	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"focusrite usb asio", "Focusrite USB ASIO", true},
		{"{5c2d1b8f}", "Focusrite USB ASIO", true},
		{"ASIO4ALL v2", "ASIO4ALL v2", true},
		{"device", "USB Audio", true},
		{"", "", false},
		{"Missing", "", false},
	}
	for _, tt := range tests {
		got, ok := FindDriver(drivers, tt.name)
		if ok != tt.ok || got.Name != tt.want {
			t.Errorf("FindDriver(%q) = %q, %v; want %q, %v", tt.name, got.Name, ok, tt.want, tt.ok)
		}
	}
}

func TestDirectionText(t *testing.T) {
	for dir, want := range map[Direction]string{Render: "render", Capture: "capture"} {
		b, err := dir.MarshalText()
		if err != nil || string(b) != want {
			t.Errorf("MarshalText(%d) = %q, %v; want %q", dir, b, err, want)
		}
	}
}
