package chat

import (
	"encoding/json"
	"testing"
)

func TestEnvelopeTextPrefersConversation(t *testing.T) {
	cases := []struct {
		name string
		msg  MessageEnvelope
		want string
	}{
		{"simple text", MessageEnvelope{Conversation: "mercado 50"}, "mercado 50"},
		{"extended text", MessageEnvelope{ExtendedText: "uber 23,50"}, "uber 23,50"},
		{"both set", MessageEnvelope{Conversation: "a", ExtendedText: "b"}, "a"},
		{"neither set (media)", MessageEnvelope{}, ""},
	}
	for _, tc := range cases {
		if got := tc.msg.Text(); got != tc.want {
			t.Errorf("%s: Text() = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestEnvelopeFromJSON(t *testing.T) {
	raw := []byte(`{"chat_id":"5511999@s.whatsapp.net","from_me":false,"conversation":"mercado 50"}`)
	msg, err := EnvelopeFromJSON(raw)
	if err != nil {
		t.Fatalf("EnvelopeFromJSON: %v", err)
	}
	if msg.ChatID != "5511999@s.whatsapp.net" || msg.FromMe || msg.Text() != "mercado 50" {
		t.Fatalf("unexpected envelope: %+v", msg)
	}
}

func TestEnvelopeFromJSONInvalid(t *testing.T) {
	if _, err := EnvelopeFromJSON([]byte(`{"from_me": "yes"}`)); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestReplyToJSON(t *testing.T) {
	body, err := Reply{ChatID: "c1", Text: "📊 total"}.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	var decoded Reply
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.ChatID != "c1" || decoded.Text != "📊 total" {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}
}
