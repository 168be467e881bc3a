package chat

import "encoding/json"

// MessageEnvelope mirrors the gateway's messages.upsert payload. Only
// the two text-bearing fields matter here; envelopes for media, replies
// and reactions arrive with both empty and are ignored upstream.
type MessageEnvelope struct {
	ChatID       string `json:"chat_id"`
	FromMe       bool   `json:"from_me"`
	Conversation string `json:"conversation,omitempty"`
	ExtendedText string `json:"extended_text,omitempty"`
}

// Text returns the plain text body, preferring the simple field over the
// extended one.
func (m MessageEnvelope) Text() string {
	if m.Conversation != "" {
		return m.Conversation
	}
	return m.ExtendedText
}

// EnvelopeFromJSON decodes one inbound delivery.
func EnvelopeFromJSON(data []byte) (MessageEnvelope, error) {
	var msg MessageEnvelope
	if err := json.Unmarshal(data, &msg); err != nil {
		return MessageEnvelope{}, err
	}
	return msg, nil
}

// Reply is the outbound payload published for the gateway to deliver.
type Reply struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

func (r Reply) ToJSON() ([]byte, error) {
	return json.Marshal(r)
}
