package style

// EventType identifies a manager notification.
type EventType string

const (
	EventStyleChanged      EventType = "style.changed"
	EventThemeChanged      EventType = "theme.changed"
	EventStylesheetChanged EventType = "stylesheet.changed"
)

// Event is delivered to observers after a state change commits.
type Event struct {
	Type EventType
	// Name is the new style or theme; empty for stylesheet events.
	Name string
}

// Observer receives manager events.
type Observer func(Event)

type subscription struct {
	fn     Observer
	active bool
}

// Subscribe registers fn for every event. Observers run synchronously on
// the calling goroutine in registration order. The returned func removes
// the registration.
func (m *Manager) Subscribe(fn Observer) (cancel func()) {
	sub := &subscription{fn: fn, active: true}
	m.observers = append(m.observers, sub)
	return func() {
		if !sub.active {
			return
		}
		sub.active = false
		for i, candidate := range m.observers {
			if candidate == sub {
				m.observers = append(m.observers[:i:i], m.observers[i+1:]...)
				break
			}
		}
	}
}

func (m *Manager) emit(event Event) {
	observers := make([]*subscription, len(m.observers))
	copy(observers, m.observers)
	for _, sub := range observers {
		if sub.active {
			sub.fn(event)
		}
	}
}
