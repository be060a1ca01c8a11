package entity

import "strconv"

const (
	ActionInstantiate = "instantiate"
	ActionInvite      = "invite"
	ActionAccept      = "accept invitation"
	ActionReject      = "reject invitation"
	ActionPlay        = "play"
)

type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Event - the observable outcome of a successful execute call.
type Event struct {
	Attributes []Attribute `json:"attributes"`
}

func NewEvent(action string) *Event {
	return &Event{Attributes: []Attribute{{Key: "action", Value: action}}}
}

func NewSessionEvent(action string, key SessionKey) *Event {
	return NewEvent(action).
		With("host", key.Host).
		With("guest", key.Guest)
}

func NewPlayEvent(key SessionKey, cell int) *Event {
	return NewSessionEvent(ActionPlay, key).With("cell", strconv.Itoa(cell))
}

func (that *Event) With(key, value string) *Event {
	that.Attributes = append(that.Attributes, Attribute{Key: key, Value: value})
	return that
}

// Action - the value of the leading "action" attribute.
func (that *Event) Action() string {
	return that.Get("action")
}

func (that *Event) Get(key string) string {
	for _, attr := range that.Attributes {
		if attr.Key == key {
			return attr.Value
		}
	}

	return ""
}

// LogArgs - flattens the attributes into slog key/value pairs.
func (that *Event) LogArgs() []any {
	args := make([]any, 0, len(that.Attributes)*2)
	for _, attr := range that.Attributes {
		args = append(args, attr.Key, attr.Value)
	}

	return args
}
