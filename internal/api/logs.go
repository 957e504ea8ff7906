package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/smazurov/audiobridge/internal/api/models"
	"github.com/smazurov/audiobridge/internal/logging"
)

var levelRank = map[string]int{"debug": 0, "info": 1, "warn": 2, "error": 3}

func (s *Server) registerLogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "get-logs",
		Method:      http.MethodGet,
		Path:        "/api/logs",
		Summary:     "Recent Logs",
		Description: "Get the most recent log entries kept in memory, including config parse errors",
		Tags:        []string{"logs"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, func(_ context.Context, input *models.LogsInput) (*models.LogsResponse, error) {
		entries := filterLogs(logging.History().Recent(0), input.Level, input.Limit)
		return &models.LogsResponse{Body: models.LogsData{Entries: entries, Count: len(entries)}}, nil
	})
}

// filterLogs keeps entries at or above minLevel, then the newest limit of them.
func filterLogs(all []logging.LogEntry, minLevel string, limit int) []models.LogEntry {
	floor := levelRank[minLevel]
	out := []models.LogEntry{}
	for _, e := range all {
		if levelRank[e.Level] < floor {
			continue
		}
		out = append(out, models.LogEntry{
			Timestamp:  e.Timestamp.Format(time.RFC3339Nano),
			Level:      e.Level,
			Module:     e.Module,
			Message:    e.Message,
			Attributes: e.Attributes,
		})
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}
