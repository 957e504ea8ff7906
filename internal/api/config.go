package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/smazurov/audiobridge/internal/api/models"
	"github.com/smazurov/audiobridge/internal/config"
)

func (s *Server) registerConfigRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "get-config",
		Method:      http.MethodGet,
		Path:        "/api/config",
		Summary:     "Get Config",
		Description: "Get the settings parsed from RS_ASIO.ini together with the problems logged while parsing",
		Tags:        []string{"configuration"},
		Security:    withAuth(),
		Errors:      []int{401, 503},
	}, func(_ context.Context, _ *struct{}) (*models.ConfigResponse, error) {
		if s.opts.Config == nil {
			return nil, huma.Error503ServiceUnavailable("configuration not available")
		}
		return &models.ConfigResponse{Body: toConfigData(s.opts.Config())}, nil
	})
}

func toConfigData(r config.LoadResult) models.ConfigData {
	st := r.Settings
	data := models.ConfigData{
		Path:           r.Path,
		Found:          r.Found,
		EnableAsio:     st.EnableAsio,
		EnableWasapi:   st.EnableWasapi,
		BufferSizeMode: st.Asio.BufferSizeMode.String(),
		Output:         models.EndpointData{Driver: st.Asio.Output.DriverName},
		Inputs:         make([]models.EndpointData, 0, len(st.Asio.Inputs)),
		Diagnostics:    make([]models.DiagnosticData, 0, len(r.Diagnostics)),
	}
	for _, in := range st.Asio.Inputs {
		data.Inputs = append(data.Inputs, models.EndpointData{Driver: in.DriverName, Channel: in.Channel})
	}
	for _, d := range r.Diagnostics {
		data.Diagnostics = append(data.Diagnostics, models.DiagnosticData{
			Line:    d.Line,
			Section: d.Section.String(),
			Key:     d.Key,
			Kind:    string(d.Kind),
			Message: d.Message,
		})
	}
	return data
}
