package report

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/wcharczuk/go-chart/v2"

	"despesabot/internal/core"
)

// CategoryTotal is one bar of the spending chart.
type CategoryTotal struct {
	Category string
	Total    core.Money
}

// SumByCategory aggregates records into per-category totals, sorted by
// category name so the chart is stable across renders.
func SumByCategory(recs []core.ExpenseRecord) []CategoryTotal {
	byCategory := make(map[string]int64)
	for _, rec := range recs {
		byCategory[rec.Category] += rec.Amount.Cents
	}

	totals := make([]CategoryTotal, 0, len(byCategory))
	for category, cents := range byCategory {
		totals = append(totals, CategoryTotal{Category: category, Total: core.Money{Cents: cents}})
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Category < totals[j].Category
	})
	return totals
}

// RenderBarChart draws the per-category totals as a PNG bar chart.
func RenderBarChart(totals []CategoryTotal) ([]byte, error) {
	if len(totals) == 0 {
		return nil, fmt.Errorf("render chart: no data")
	}

	bars := make([]chart.Value, 0, len(totals))
	for _, t := range totals {
		bars = append(bars, chart.Value{
			Label: t.Category,
			Value: t.Total.Reais(),
		})
	}

	graph := chart.BarChart{
		Title:    "Gastos por Categoria",
		Width:    800,
		Height:   400,
		BarWidth: 60,
		Bars:     bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return buf.Bytes(), nil
}
