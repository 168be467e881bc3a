package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"despesabot/internal/chat"
	"despesabot/internal/interpret"
)

// Sender posts one reply to a chat.
type Sender interface {
	SendMessage(ctx context.Context, chatID, text string) error
}

// Bot binds the chat transport to the interpretation pipeline and the
// router. One inbound envelope produces at most one reply.
type Bot struct {
	interpreter *interpret.Interpreter
	router      *Router
	sender      Sender
}

func New(interpreter *interpret.Interpreter, router *Router, sender Sender) *Bot {
	return &Bot{interpreter: interpreter, router: router, sender: sender}
}

// HandleMessage processes one inbound envelope end to end. Envelopes
// without plain text (media, reactions) and the bot's own messages are
// ignored without a reply.
func (b *Bot) HandleMessage(ctx context.Context, msg chat.MessageEnvelope) error {
	if msg.FromMe {
		return nil
	}
	raw := msg.Text()
	if raw == "" {
		return nil
	}

	text := strings.ToLower(strings.TrimSpace(raw))
	slog.InfoContext(ctx, "Message received", "chat_id", msg.ChatID)

	interp := b.interpreter.Interpret(ctx, text)
	reply, err := b.router.Route(ctx, text, interp)
	if err != nil {
		return fmt.Errorf("route message: %w", err)
	}

	if err := b.sender.SendMessage(ctx, msg.ChatID, reply); err != nil {
		return fmt.Errorf("send reply: %w", err)
	}
	return nil
}
