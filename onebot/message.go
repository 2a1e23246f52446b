package onebot

import "encoding/json"

// ForwardNode is one node of a combined forward message.
type ForwardNode struct {
	Type string          `json:"type"`
	Data ForwardNodeData `json:"data"`
}

type ForwardNodeData struct {
	Name    string          `json:"name"`
	Uin     int64           `json:"uin"`
	Content json.RawMessage `json:"content"`
}

// NewForwardNode wraps a message body as a forward node. Content is carried
// verbatim; nested segments (including forward segments) are not re-parsed.
func NewForwardNode(name string, uin int64, content json.RawMessage) ForwardNode {
	return ForwardNode{
		Type: "node",
		Data: ForwardNodeData{
			Name:    name,
			Uin:     uin,
			Content: content,
		},
	}
}
