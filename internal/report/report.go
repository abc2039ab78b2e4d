// Package report renders run results for the terminal. Rendering only:
// every number here is computed elsewhere.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/5H5KN5/active-learning-simulator/internal/evaluate"
	"github.com/5H5KN5/active-learning-simulator/internal/runner"
	"github.com/5H5KN5/active-learning-simulator/internal/store"
)

// Colors used in the report.
var (
	colorPrimary = lipgloss.Color("62")  // Purple
	colorMuted   = lipgloss.Color("241") // Gray
	colorSuccess = lipgloss.Color("78")  // Green
	colorWarn    = lipgloss.Color("214") // Orange
	colorError   = lipgloss.Color("203") // Red
)

// Title style for section headers.
var Title = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorPrimary).
	MarginTop(1)

// Header style for table column headers.
var Header = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorMuted)

// Good style for healthy metric values.
var Good = lipgloss.NewStyle().Foreground(colorSuccess)

// Bad style for failures.
var Bad = lipgloss.NewStyle().Foreground(colorError)

// Muted style for secondary text.
var Muted = lipgloss.NewStyle().Foreground(colorMuted)

// reasonStyle colors a terminal reason: early stopping green, forced
// termination orange.
func reasonStyle(reason string) lipgloss.Style {
	switch reason {
	case "stopping rule":
		return Good
	case "iteration limit":
		return lipgloss.NewStyle().Foreground(colorWarn)
	default:
		return Muted
	}
}

// Outcomes renders a per-dataset result table.
func Outcomes(outcomes []runner.Outcome) string {
	var b strings.Builder

	b.WriteString(Title.Render("Runs"))
	b.WriteString("\n")
	b.WriteString(Header.Render(fmt.Sprintf("%-20s %6s %9s %8s %10s  %s",
		"DATASET", "ITERS", "SCREENED", "RECALL", "WORK SAVE", "REASON")))
	b.WriteString("\n")

	for _, out := range outcomes {
		if out.Err != nil {
			b.WriteString(fmt.Sprintf("%-20s %s\n", out.Dataset, Bad.Render("error: "+out.Err.Error())))
			continue
		}
		res := out.Result
		reason := res.Reason.String()
		b.WriteString(fmt.Sprintf("%-20s %6d %9d %8.3f %10.3f  %s\n",
			res.Dataset,
			res.Iterations,
			res.Screened,
			res.FinalRecall(),
			res.FinalWorkSave(),
			reasonStyle(reason).Render(reason)))
	}

	return b.String()
}

// Summary renders cross-run aggregate metrics.
func Summary(sum evaluate.Summary) string {
	var b strings.Builder

	b.WriteString(Title.Render(fmt.Sprintf("Aggregate (%d runs)", sum.Runs)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("recall     min %s  mean %s\n",
		Good.Render(fmt.Sprintf("%.3f", sum.MinRecall)),
		Good.Render(fmt.Sprintf("%.3f", sum.MeanRecall))))
	b.WriteString(fmt.Sprintf("work save  min %s  mean %s\n",
		Good.Render(fmt.Sprintf("%.3f", sum.MinWorkSave)),
		Good.Render(fmt.Sprintf("%.3f", sum.MeanWorkSave))))

	return b.String()
}

// Records renders stored run summaries, newest first.
func Records(records []store.RunRecord) string {
	if len(records) == 0 {
		return Muted.Render("no stored runs") + "\n"
	}

	var b strings.Builder
	b.WriteString(Header.Render(fmt.Sprintf("%-20s %-12s %-12s %8s %10s  %-16s %s",
		"DATASET", "CLASSIFIER", "SELECTOR", "RECALL", "WORK SAVE", "REASON", "WHEN")))
	b.WriteString("\n")

	for _, r := range records {
		b.WriteString(fmt.Sprintf("%-20s %-12s %-12s %8.3f %10.3f  %-16s %s\n",
			r.Dataset,
			r.Classifier,
			r.Selector,
			r.FinalRecall,
			r.FinalWorkSave,
			reasonStyle(r.Reason).Render(fmt.Sprintf("%-16s", r.Reason)),
			Muted.Render(r.CreatedAt.Local().Format("2006-01-02 15:04"))))
	}

	return b.String()
}
