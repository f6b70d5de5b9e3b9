package events

// Event is one entry of the simulation journal. Timestamps are simulated days,
// so a seeded run always produces the same journal.
type Event interface {
	Type() string
	StreamID() string
	Data() interface{}
	Day() int
	Version() int
}

// EventStore appends events to versioned streams and reads them back in append order
type EventStore interface {
	AppendEvent(streamID string, event Event) error
	ReadEvents(streamID string, fromVersion int) ([]Event, error)
	ReadAllEvents(fromPosition int) ([]Event, error)
}

type BaseEvent struct {
	EventType    string      `json:"type"`
	Stream       string      `json:"stream"`
	EventData    interface{} `json:"data"`
	EventDay     int         `json:"day"`
	EventVersion int         `json:"version"`
}

func (e BaseEvent) Type() string {
	return e.EventType
}

func (e BaseEvent) StreamID() string {
	return e.Stream
}

func (e BaseEvent) Data() interface{} {
	return e.EventData
}

func (e BaseEvent) Day() int {
	return e.EventDay
}

func (e BaseEvent) Version() int {
	return e.EventVersion
}

func NewEvent(eventType, streamID string, day int, data interface{}) Event {
	return BaseEvent{
		EventType:    eventType,
		Stream:       streamID,
		EventData:    data,
		EventDay:     day,
		EventVersion: 1,
	}
}
