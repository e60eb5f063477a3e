package backtest

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Summary renders a human-readable run summary.
func Summary(res *Result) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("-", 40) + "\n")
	b.WriteString("Backtest Complete\n")
	fmt.Fprintf(&b, "Symbol:       %s\n", res.Symbol)
	if !res.Start.IsZero() {
		fmt.Fprintf(&b, "Period:       %s to %s\n",
			res.Start.Format("2006-01-02"), res.End.Format("2006-01-02"))
	}
	fmt.Fprintf(&b, "Final Equity: $%.2f\n", res.FinalEquity)
	fmt.Fprintf(&b, "PnL:          $%.2f (%s)\n", res.PnL, pctString(res.PnLPct))
	fmt.Fprintf(&b, "Max Drawdown: %.2f%%\n", res.MaxDrawdown*100)
	fmt.Fprintf(&b, "Total Trades: %d\n", res.TotalTrades)
	b.WriteString(strings.Repeat("-", 40))
	return b.String()
}

// WriteMarkdown writes the run summary as a markdown report.
func WriteMarkdown(res *Result, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	var b strings.Builder
	b.WriteString("# Backtest Report\n\n")
	fmt.Fprintf(&b, "- **Symbol**: %s\n", res.Symbol)
	if !res.Start.IsZero() {
		fmt.Fprintf(&b, "- **Period**: %s to %s\n",
			res.Start.Format("2006-01-02"), res.End.Format("2006-01-02"))
	}
	fmt.Fprintf(&b, "- **Final Equity**: $%.2f\n", res.FinalEquity)
	fmt.Fprintf(&b, "- **PnL**: $%.2f (%s)\n", res.PnL, pctString(res.PnLPct))
	fmt.Fprintf(&b, "- **Max Drawdown**: %.2f%%\n", res.MaxDrawdown*100)
	fmt.Fprintf(&b, "- **Total Trades**: %d\n", res.TotalTrades)
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// WriteTradesCSV writes every fill of the run as one CSV row.
func WriteTradesCSV(res *Result, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"timestamp", "side", "size", "price", "notional"}); err != nil {
		return err
	}
	for _, t := range res.Trades {
		rec := []string{
			t.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
			string(t.Side),
			formatF(t.Size),
			formatF(t.Price),
			fmt.Sprintf("%.2f", t.Size*t.Price),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

func pctString(pct float64) string {
	if math.IsNaN(pct) {
		return "undefined"
	}
	return fmt.Sprintf("%.2f%%", pct)
}

func formatF(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
