// Package firestore is the Firestore-backed record store. Documents use
// the historical field names of the "despesas" collection (valor,
// categoria, data), so an existing collection keeps working unchanged.
package firestore

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"

	"despesabot/internal/core"
)

type Store struct {
	client     *firestore.Client
	collection string
}

type document struct {
	Valor     float64   `firestore:"valor"`
	Categoria string    `firestore:"categoria"`
	Data      time.Time `firestore:"data"`
}

func New(ctx context.Context, projectID, credentialsFile, collection string) (*Store, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}
	return &Store{client: client, collection: collection}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

// Append implements records.Appender: one document per record, keyed by
// Firestore's auto-generated id.
func (s *Store) Append(ctx context.Context, rec core.ExpenseRecord) error {
	_, _, err := s.client.Collection(s.collection).Add(ctx, document{
		Valor:     rec.Amount.Reais(),
		Categoria: rec.Category,
		Data:      rec.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("add document: %w", err)
	}

	slog.InfoContext(ctx, "Record saved to Firestore",
		"collection", s.collection,
		"category", rec.Category,
		"amount_cents", rec.Amount.Cents)
	return nil
}

// Scan implements records.Scanner with a full collection read. Document
// order is whatever Firestore returns; no ordering is promised.
func (s *Store) Scan(ctx context.Context) ([]core.ExpenseRecord, error) {
	docs, err := s.client.Collection(s.collection).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("read collection: %w", err)
	}

	out := make([]core.ExpenseRecord, 0, len(docs))
	for _, snap := range docs {
		var doc document
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode document %s: %w", snap.Ref.ID, err)
		}
		out = append(out, core.ExpenseRecord{
			Amount:    core.Money{Cents: int64(math.Round(doc.Valor * 100))},
			Category:  doc.Categoria,
			CreatedAt: doc.Data,
		})
	}
	return out, nil
}
