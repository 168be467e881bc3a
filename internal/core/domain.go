package core

import (
	"errors"
	"strings"
	"time"
)

const (
	// LabelExpense gates a second extraction attempt; the other labels
	// only exist so the classifier has something to rank against.
	LabelExpense  IntentLabel = "despesa"
	LabelQuestion IntentLabel = "pergunta"
	LabelOther    IntentLabel = "outro"
)

type (
	// IntentLabel is the remote classifier's best guess for what a
	// message is about. Closed set: despesa, pergunta, outro.
	IntentLabel string

	Money struct {
		Cents int64
	}

	// ExpenseRecord is one user-reported expenditure as persisted by the
	// record store. Records are append-only; nothing in this system
	// mutates or deletes them.
	ExpenseRecord struct {
		Amount    Money
		Category  string
		CreatedAt time.Time
	}

	// Interpretation is the outcome of analyzing a single message for an
	// embedded expense. The zero value means no expense was detected.
	Interpretation struct {
		Detected bool
		Category string
		Amount   Money
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyCategory = errors.New("empty category")
	ErrZeroTimestamp = errors.New("zero timestamp")
)

// DetectedExpense builds the positive variant of an Interpretation.
func DetectedExpense(category string, amount Money) Interpretation {
	return Interpretation{Detected: true, Category: category, Amount: amount}
}

// CandidateLabels returns the label set sent to the zero-shot classifier.
func CandidateLabels() []string {
	return []string{string(LabelExpense), string(LabelQuestion), string(LabelOther)}
}

// ParseIntentLabel maps a classifier label string onto the closed set.
func ParseIntentLabel(s string) (IntentLabel, bool) {
	switch IntentLabel(s) {
	case LabelExpense, LabelQuestion, LabelOther:
		return IntentLabel(s), true
	}
	return LabelOther, false
}

// Validate checks the structural invariants of a record. The amount is
// deliberately not bounded: zero and very large values are accepted.
func (r ExpenseRecord) Validate() error {
	if strings.TrimSpace(r.Category) == "" {
		return ErrEmptyCategory
	}
	if r.CreatedAt.IsZero() {
		return ErrZeroTimestamp
	}
	return nil
}
