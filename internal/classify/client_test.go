package classify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"despesabot/internal/core"
)

func TestClassifyTopLabelWins(t *testing.T) {
	var gotAuth string
	var gotBody classifyRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"labels": []string{"despesa", "outro", "pergunta"},
			"scores": []float64{0.91, 0.06, 0.03},
		})
	}))
	defer srv.Close()

	c := NewClient(Config{URL: srv.URL, Token: "secret"})
	label := c.Classify(context.Background(), "gastei muito hoje")

	if label != core.LabelExpense {
		t.Fatalf("label = %q, want despesa", label)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("Authorization = %q, want bearer token", gotAuth)
	}
	if gotBody.Inputs != "gastei muito hoje" {
		t.Fatalf("inputs = %q", gotBody.Inputs)
	}
	if len(gotBody.Parameters.CandidateLabels) != 3 {
		t.Fatalf("candidate labels = %v, want the fixed set of 3", gotBody.Parameters.CandidateLabels)
	}
}

func TestClassifyDegradesToOutro(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model loading", http.StatusServiceUnavailable)
		}},
		{"malformed payload", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"labels": "not-a-list"}`))
		}},
		{"empty labels", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"labels": []}`))
		}},
		{"label outside the closed set", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"labels": ["banana"]}`))
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			c := NewClient(Config{URL: srv.URL})
			if label := c.Classify(context.Background(), "oi"); label != core.LabelOther {
				t.Fatalf("label = %q, want outro", label)
			}
		})
	}
}

func TestClassifyUnreachableService(t *testing.T) {
	// Closed server: the connection is refused.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(Config{URL: srv.URL})
	if label := c.Classify(context.Background(), "oi"); label != core.LabelOther {
		t.Fatalf("label = %q, want outro", label)
	}
}
