package live

import "encoding/json"

const (
	TypeChange       = "change"
	TypeChatMessages = "chat.messages"
	TypeSubscribed   = "subscribed"
	TypeError        = "error"

	// inbound
	TypeWatchChat   = "watch_chat"
	TypeUnwatchChat = "unwatch_chat"
)

// Message is the frame pushed to dashboards.
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// Command is a frame sent by a dashboard.
type Command struct {
	Type    string `json:"type"`
	ChatID  int    `json:"chat_id"`
	AfterID int    `json:"after_id,omitempty"`
}

func encode(msgType string, payload any) ([]byte, error) {
	return json.Marshal(Message{Type: msgType, Payload: payload})
}
