package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/smazurov/audiobridge/internal/api/models"
	"github.com/smazurov/audiobridge/internal/devices"
)

func (s *Server) registerDeviceRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "list-devices",
		Method:      http.MethodGet,
		Path:        "/api/devices",
		Summary:     "List Devices",
		Description: "List the aggregated devices of every enabled backend, driver backend first",
		Tags:        []string{"devices"},
		Security:    withAuth(),
		Errors:      []int{401, 503},
	}, func(_ context.Context, input *models.DeviceListInput) (*models.DeviceResponse, error) {
		if s.opts.Devices == nil {
			return nil, huma.Error503ServiceUnavailable("device enumeration not available")
		}

		list, err := s.opts.Devices.Devices()
		body := models.DeviceData{Devices: []models.DeviceInfo{}, Backends: []string{}}
		for _, d := range list {
			if input.Backend != "" && string(d.Backend) != input.Backend {
				continue
			}
			if input.Direction != "" && d.Direction.String() != input.Direction {
				continue
			}
			body.Devices = append(body.Devices, toDeviceInfo(d))
		}
		for _, b := range s.opts.Devices.Backends() {
			body.Backends = append(body.Backends, string(b))
		}
		for _, be := range devices.BackendErrors(err) {
			body.Errors = append(body.Errors, be.Error())
		}
		body.Count = len(body.Devices)
		return &models.DeviceResponse{Body: body}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-device",
		Method:      http.MethodGet,
		Path:        "/api/devices/{id}",
		Summary:     "Get Device",
		Description: "Get one device of the aggregated list by its identifier",
		Tags:        []string{"devices"},
		Security:    withAuth(),
		Errors:      []int{401, 404, 503},
	}, func(_ context.Context, input *models.DeviceGetInput) (*models.DeviceGetResponse, error) {
		if s.opts.Devices == nil {
			return nil, huma.Error503ServiceUnavailable("device enumeration not available")
		}
		d, ok := s.opts.Devices.Find(input.ID)
		if !ok {
			return nil, huma.Error404NotFound("device not found: " + input.ID)
		}
		return &models.DeviceGetResponse{Body: toDeviceInfo(d)}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "list-drivers",
		Method:      http.MethodGet,
		Path:        "/api/drivers",
		Summary:     "List Drivers",
		Description: "List hardware drivers installed on this machine",
		Tags:        []string{"devices"},
		Security:    withAuth(),
		Errors:      []int{401, 500, 503},
	}, func(_ context.Context, _ *struct{}) (*models.DriverResponse, error) {
		if s.opts.Drivers == nil {
			return nil, huma.Error503ServiceUnavailable("driver registry not available")
		}
		drivers, err := s.opts.Drivers.Drivers()
		if err != nil {
			s.logger.Error("Failed to list drivers", "error", err)
			return nil, huma.Error500InternalServerError("failed to list drivers", err)
		}

		body := models.DriverData{Drivers: make([]models.DriverInfo, 0, len(drivers))}
		for _, d := range drivers {
			body.Drivers = append(body.Drivers, models.DriverInfo{
				Name:        d.Name,
				ID:          d.ID,
				Description: d.Description,
			})
		}
		body.Count = len(body.Drivers)
		return &models.DriverResponse{Body: body}, nil
	})
}

func toDeviceInfo(d devices.Device) models.DeviceInfo {
	return models.DeviceInfo{
		ID:        d.ID,
		Name:      d.Name,
		Backend:   string(d.Backend),
		Direction: d.Direction.String(),
		Driver:    d.Driver,
		Channel:   d.Channel,
		Installed: d.Installed,
		Default:   d.Default,
	}
}
