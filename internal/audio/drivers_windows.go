//go:build windows

package audio

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

// asioKey holds one sub-key per installed ASIO driver.
const asioKey = `SOFTWARE\ASIO`

func listDrivers() ([]Driver, error) {
	root, err := registry.OpenKey(registry.LOCAL_MACHINE, asioKey, registry.ENUMERATE_SUB_KEYS)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open HKLM\\%s: %w", asioKey, err)
	}
	defer root.Close()

	names, err := root.ReadSubKeyNames(-1)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate ASIO drivers: %w", err)
	}

	drivers := make([]Driver, 0, len(names))
	for _, name := range names {
		d := Driver{Name: name}
		if k, err := registry.OpenKey(root, name, registry.QUERY_VALUE); err == nil {
			d.ID, _, _ = k.GetStringValue("CLSID")
			d.Description, _, _ = k.GetStringValue("Description")
			k.Close()
		}
		drivers = append(drivers, d)
	}
	return drivers, nil
}
