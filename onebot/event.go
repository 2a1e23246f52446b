package onebot

import (
	"github.com/tidwall/gjson"
)

// Event is one raw payload pushed by the event stream. The payload is kept
// unparsed; accessors tolerate absent or mistyped fields and return zero
// values, since event shapes vary by post_type and cannot be trusted.
type Event struct {
	raw gjson.Result
}

// ParseEvent wraps a raw payload, returning nil when it is not valid JSON.
func ParseEvent(data []byte) *Event {
	if !gjson.ValidBytes(data) {
		return nil
	}
	return &Event{raw: gjson.ParseBytes(data)}
}

// Get exposes arbitrary payload fields by gjson path.
func (e *Event) Get(path string) gjson.Result {
	return e.raw.Get(path)
}

func (e *Event) PostType() string {
	return e.raw.Get("post_type").String()
}

func (e *Event) NoticeType() string {
	return e.raw.Get("notice_type").String()
}

func (e *Event) SubType() string {
	return e.raw.Get("sub_type").String()
}

func (e *Event) SelfID() int64 {
	return e.raw.Get("self_id").Int()
}

func (e *Event) UserID() int64 {
	return e.raw.Get("user_id").Int()
}

func (e *Event) GroupID() int64 {
	return e.raw.Get("group_id").Int()
}

func (e *Event) OperatorID() int64 {
	return e.raw.Get("operator_id").Int()
}

// Duration is the mute duration in seconds, 0 when absent.
func (e *Event) Duration() int64 {
	return e.raw.Get("duration").Int()
}

func (e *Event) MessageID() int64 {
	return e.raw.Get("message_id").Int()
}

// RawMessage is the CQ-coded text of a message event, empty otherwise.
func (e *Event) RawMessage() string {
	return e.raw.Get("raw_message").String()
}

func (e *Event) IsMessage() bool {
	return e.PostType() == "message"
}

func (e *Event) IsGroup() bool {
	return e.raw.Get("group_id").Exists()
}
