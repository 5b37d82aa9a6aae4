package ui

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"hbsmoke/internal/domain"
)

// Viewer displays a saved smoke report
type Viewer interface {
	View(report *domain.SessionReport) error
}

// ReportViewer displays a saved report in an interactive TUI
type ReportViewer struct{}

// NewReportViewer creates a new ReportViewer
func NewReportViewer() *ReportViewer {
	return &ReportViewer{}
}

// View displays the report's checks with their details
func (rv *ReportViewer) View(report *domain.SessionReport) error {
	if len(report.Checks) == 0 {
		color.Yellow("No checks recorded in the last run")
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	for i, check := range report.Checks {
		list.AddItem(listItemText(i, check), "", 0, nil)
	}
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(detailsView, 0, 2, false)

	meta := report.Meta
	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true).
		SetText(fmt.Sprintf(" %s | %d/%d passed (%s) | ↑↓ navigate, → details, ← back, Ctrl+C exit ",
			meta.BaseURL, meta.Passed, meta.Attempted, FormatRate(meta.SuccessRate, meta.Attempted > 0)))

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(report.Checks) {
			detailsView.SetText(formatCheckDetails(report.Checks[index]))
		}
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(int, string, string, rune) {
		updateDetails()
	})
	updateDetails()

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(layout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func listItemText(index int, check domain.CheckResult) string {
	if check.Passed {
		return fmt.Sprintf("[green]✓[white] [yellow]%d.[white] %s", index+1, check.Name)
	}
	return fmt.Sprintf("[red]✗[white] [yellow]%d.[white] %s", index+1, check.Name)
}

// formatCheckDetails formats a check for display using tview color tags
func formatCheckDetails(check domain.CheckResult) string {
	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)

	if check.Passed {
		fmt.Fprintf(w, "[green]✓ Check: %s[white]\n\n", check.Name)
	} else {
		fmt.Fprintf(w, "[red]✗ Check: %s[white]\n\n", check.Name)
	}

	if check.Info != "" {
		fmt.Fprintf(w, "[cyan]Probe:[white] %s\n", check.Info)
	}
	fmt.Fprintf(w, "[cyan]Elapsed:[white] %s\n", check.Elapsed)

	if check.Error != "" {
		fmt.Fprintf(w, "\n[yellow]Error:[white]\n%s\n", tview.Escape(check.Error))
	}

	w.Flush()
	return builder.String()
}
