package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"

	"github.com/smazurov/audiobridge/internal/events"
)

func (s *Server) registerEventRoutes() {
	if s.opts.EventBus == nil {
		return
	}

	sse.Register(s.api, huma.Operation{
		OperationID: "events-stream",
		Method:      http.MethodGet,
		Path:        "/api/events",
		Summary:     "Server-Sent Events Stream",
		Description: "Real-time stream of config reloads, device list changes, backend failures and sound card hotplug",
		Tags:        []string{"events"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, map[string]any{
		"config-loaded":      events.ConfigLoadedEvent{},
		"devices-enumerated": events.DevicesEnumeratedEvent{},
		"backend-failed":     events.BackendFailedEvent{},
		"hotplug":            events.HotplugEvent{},
	}, func(ctx context.Context, _ *struct{}, send sse.Sender) {
		ch := make(chan any, 16)
		unsubscribers := []func(){
			events.SubscribeToChannel[events.ConfigLoadedEvent](s.opts.EventBus, ch),
			events.SubscribeToChannel[events.DevicesEnumeratedEvent](s.opts.EventBus, ch),
			events.SubscribeToChannel[events.BackendFailedEvent](s.opts.EventBus, ch),
			events.SubscribeToChannel[events.HotplugEvent](s.opts.EventBus, ch),
		}
		defer func() {
			for _, unsub := range unsubscribers {
				unsub()
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-ch:
				if err := send.Data(ev); err != nil {
					return
				}
			}
		}
	})
}
