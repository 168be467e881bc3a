package interpret

import (
	"context"
	"log/slog"

	"despesabot/internal/core"
)

// Classifier decides whether text that the pattern missed still talks
// about an expense. Implementations never fail from the caller's view;
// they degrade to core.LabelOther instead.
type Classifier interface {
	Classify(ctx context.Context, text string) core.IntentLabel
}

// Interpreter orchestrates extractor and classifier. The pattern match is
// authoritative and cheap, so the classifier is a fallback that only
// gates a second extraction attempt; it never supplies the structured
// data itself.
type Interpreter struct {
	classifier Classifier
}

func NewInterpreter(classifier Classifier) *Interpreter {
	return &Interpreter{classifier: classifier}
}

// Interpret analyzes one normalized message and reports whether it
// contains an expense.
func (i *Interpreter) Interpret(ctx context.Context, text string) core.Interpretation {
	if interp, ok := Extract(text); ok {
		return interp
	}

	label := i.classifier.Classify(ctx, text)
	if label != core.LabelExpense {
		slog.DebugContext(ctx, "No expense detected", "label", string(label))
		return core.Interpretation{}
	}

	// The classifier believes this is an expense; give the pattern one
	// more chance. It may still miss, and then its verdict stands.
	interp, ok := Extract(text)
	if !ok {
		slog.DebugContext(ctx, "Classifier suggested expense but pattern still missed")
		return core.Interpretation{}
	}
	return interp
}
