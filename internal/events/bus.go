package events

import (
	"github.com/kelindar/event"
)

// Bus wraps a kelindar/event dispatcher.
type Bus struct {
	dispatcher *event.Dispatcher
}

// New creates a new event bus.
func New() *Bus {
	return &Bus{dispatcher: event.NewDispatcher()}
}

// Publish delivers ev to the subscribers of its concrete type.
// Usage: bus.Publish(HotplugEvent{...})
func (b *Bus) Publish(ev Event) {
	switch e := ev.(type) {
	case ConfigLoadedEvent:
		event.Publish(b.dispatcher, e)
	case DevicesEnumeratedEvent:
		event.Publish(b.dispatcher, e)
	case BackendFailedEvent:
		event.Publish(b.dispatcher, e)
	case HotplugEvent:
		event.Publish(b.dispatcher, e)
	}
}

// Subscribe registers handler; the event type is taken from its parameter.
// Unknown handler types get a no-op unsubscribe.
// Usage: unsub := bus.Subscribe(func(e HotplugEvent) { ... })
func (b *Bus) Subscribe(handler any) func() {
	switch h := handler.(type) {
	case func(ConfigLoadedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(DevicesEnumeratedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(BackendFailedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(HotplugEvent):
		return event.Subscribe(b.dispatcher, h)
	default:
		return func() {}
	}
}

// SubscribeToChannel forwards events of type T into ch, dropping them when
// ch is full. It feeds the server-sent event stream.
func SubscribeToChannel[T Event](bus *Bus, ch chan<- any) func() {
	return event.Subscribe(bus.dispatcher, func(e T) {
		select {
		case ch <- e:
		default:
		}
	})
}
