// Package bot maps inbound chat messages to exactly one side effect and
// one reply: store a new expense, list stored expenses, report the total,
// or fall back to a fixed default.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"despesabot/internal/core"
	"despesabot/internal/records"
)

// Fixed reply templates. No natural-language generation beyond these.
const (
	replyAdded      = "✅ Despesa de *R$%s* em *%s* adicionada!"
	replyListHeader = "📌 *Suas despesas:*"
	replyListLine   = "💸 *R$%s* - %s (%s)"
	replyNoExpenses = "⚠️ Nenhuma despesa encontrada!"
	replyTotal      = "📊 Seu total de despesas: *R$%s*"
	replyDefault    = "🤖 Não entendi. Tente adicionar uma despesa ou pedir um relatório!"
)

// Router decides which action an interpreted message triggers. The store
// gateway is injected so tests can substitute an in-memory fake.
type Router struct {
	store records.Store
	now   func() time.Time
}

func NewRouter(store records.Store) *Router {
	return &Router{store: store, now: time.Now}
}

// Route dispatches one message. Exactly one branch fires, in priority
// order: detected expense, listing phrase, total phrase, default. A store
// fault propagates to the caller and no reply is produced for the
// message.
func (r *Router) Route(ctx context.Context, text string, interp core.Interpretation) (string, error) {
	if interp.Detected {
		return r.storeExpense(ctx, interp)
	}
	switch {
	case isListRequest(text):
		return r.listExpenses(ctx)
	case isTotalRequest(text):
		return r.reportTotal(ctx)
	}

	slog.DebugContext(ctx, "Message not understood")
	return replyDefault, nil
}

func (r *Router) storeExpense(ctx context.Context, interp core.Interpretation) (string, error) {
	rec := core.ExpenseRecord{
		Amount:    interp.Amount,
		Category:  interp.Category,
		CreatedAt: r.now(),
	}
	if err := r.store.Append(ctx, rec); err != nil {
		return "", fmt.Errorf("append record: %w", err)
	}

	slog.InfoContext(ctx, "Expense recorded",
		"category", rec.Category,
		"amount_cents", rec.Amount.Cents)
	return fmt.Sprintf(replyAdded, core.FormatReais(rec.Amount.Cents), rec.Category), nil
}

func (r *Router) listExpenses(ctx context.Context) (string, error) {
	recs, err := r.store.Scan(ctx)
	if err != nil {
		return "", fmt.Errorf("scan records: %w", err)
	}
	if len(recs) == 0 {
		return replyNoExpenses, nil
	}

	var b strings.Builder
	b.WriteString(replyListHeader)
	b.WriteByte('\n')
	for _, rec := range recs {
		fmt.Fprintf(&b, replyListLine+"\n",
			core.FormatReais(rec.Amount.Cents),
			rec.Category,
			rec.CreatedAt.Format("02/01/2006"))
	}
	return b.String(), nil
}

func (r *Router) reportTotal(ctx context.Context) (string, error) {
	recs, err := r.store.Scan(ctx)
	if err != nil {
		return "", fmt.Errorf("scan records: %w", err)
	}

	var total int64
	for _, rec := range recs {
		total += rec.Amount.Cents
	}
	return fmt.Sprintf(replyTotal, core.FormatReais(total)), nil
}

func isListRequest(text string) bool {
	return text == "listar despesas" || text == "quais as minhas despesas"
}

func isTotalRequest(text string) bool {
	return text == "total" || text == "relatorio financeiro"
}
