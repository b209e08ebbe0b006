package table

import (
	"fmt"
	"math"
	"sort"
	"strings"

	pretty "github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/tensorplex-labs/topsis/internal/topsis"
)

const maxBarWidth = 40

// Summary renders the alternatives of t ordered by rank, with a bar scaled
// to each score.
func Summary(t *Table, res *topsis.Result) (string, error) {
	if err := checkResult(t, res); err != nil {
		return "", err
	}

	order := make([]int, len(t.Rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return res.Ranks[order[a]] < res.Ranks[order[b]]
	})

	w := pretty.NewWriter()
	w.SetStyle(pretty.StyleLight)
	w.AppendHeader(pretty.Row{topsis.RankColumn, t.Header[0], topsis.ScoreColumn, ""})
	w.SetColumnConfigs([]pretty.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})

	for _, idx := range order {
		score := res.Scores[idx]
		w.AppendRow(pretty.Row{res.Ranks[idx], t.Rows[idx][0], FormatScore(score, 6), scoreBar(score)})
	}

	return w.Render(), nil
}

func scoreBar(score float64) string {
	if math.IsNaN(score) {
		return "n/a"
	}
	barWidth := int(math.Round(score * maxBarWidth))
	if barWidth <= 0 {
		return "▏"
	}
	return strings.Repeat("█", min(barWidth, maxBarWidth))
}

// SavedMessage is printed after a successful run.
func SavedMessage(path string) string {
	return fmt.Sprintf("Results saved to %s", path)
}
