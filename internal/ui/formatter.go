package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"hbsmoke/internal/domain"
)

// Title is printed before the checks run
const Title = "=== HANDBALL ACTION REGISTRATION APP - FRONTEND TESTS ==="

// Formatter formats and displays output
type Formatter struct {
	out io.Writer

	cyan   *color.Color
	green  *color.Color
	red    *color.Color
	yellow *color.Color
	white  *color.Color
}

// NewFormatter creates a Formatter writing to stdout
func NewFormatter() *Formatter {
	return NewFormatterWithWriter(os.Stdout)
}

// NewFormatterWithWriter creates a Formatter writing to w
func NewFormatterWithWriter(w io.Writer) *Formatter {
	return &Formatter{
		out:    w,
		cyan:   color.New(color.FgCyan),
		green:  color.New(color.FgGreen),
		red:    color.New(color.FgRed),
		yellow: color.New(color.FgYellow),
		white:  color.New(color.FgWhite),
	}
}

// PrintHeader prints the run banner
func (f *Formatter) PrintHeader(baseURL string) {
	f.cyan.Fprintln(f.out, Title)
	f.white.Fprintf(f.out, "Target: %s\n", baseURL)
}

// PrintCheckStart announces a check before it runs
func (f *Formatter) PrintCheckStart(name string) {
	fmt.Fprintf(f.out, "\n🔍 Testing %s...\n", name)
}

// PrintCheckResult prints the outcome line of a check
func (f *Formatter) PrintCheckResult(result domain.CheckResult) {
	switch {
	case result.Passed:
		f.green.Fprintln(f.out, "✅ Passed")
	case result.Error != "":
		f.red.Fprintf(f.out, "❌ Failed - Error: %s\n", result.Error)
	default:
		f.red.Fprintln(f.out, "❌ Failed")
	}
}

// PrintSummary prints attempted/passed counts and the success rate
func (f *Formatter) PrintSummary(s *domain.Session) {
	fmt.Fprintf(f.out, "\n📊 FRONTEND TEST SUMMARY\n")
	fmt.Fprintf(f.out, "Tests passed: %d/%d\n", s.Passed(), s.Attempted())
	fmt.Fprintf(f.out, "Success rate: %s\n", FormatRate(s.SuccessRate()))

	if s.Success() {
		f.green.Fprintln(f.out, "🎉 All frontend accessibility tests passed!")
	} else {
		f.yellow.Fprintln(f.out, "⚠️ Some frontend tests failed")
	}
}

// PrintReadiness prints the closing lines telling whether browser testing can start
func (f *Formatter) PrintReadiness(success bool, baseURL string, areas []string) {
	if !success {
		f.red.Fprintln(f.out, "\n❌ Frontend has issues that need to be resolved first")
		return
	}
	f.green.Fprintln(f.out, "\n✅ Frontend is ready for browser automation testing")
	fmt.Fprintf(f.out, "🔗 App URL: %s\n", baseURL)
	if len(areas) > 0 {
		fmt.Fprintf(f.out, "📋 Ready to test: %s\n", strings.Join(areas, ", "))
	}
}

// PrintCheckList prints the registered checks
func (f *Formatter) PrintCheckList(checks []domain.Check) {
	if len(checks) == 0 {
		f.yellow.Fprintln(f.out, "No checks found")
		return
	}
	f.green.Fprintf(f.out, "Found %d check(s):\n", len(checks))
	for i, check := range checks {
		connector := "├──"
		if i == len(checks)-1 {
			connector = "└──"
		}
		f.cyan.Fprintf(f.out, "%s %s\n", connector, check.Name)
		if check.Info != "" {
			prefix := "│  "
			if i == len(checks)-1 {
				prefix = "   "
			}
			fmt.Fprintf(f.out, "%s %s\n", prefix, check.Info)
		}
	}
}

// PrintReport prints a saved report as a statistics table followed by its failed checks
func (f *Formatter) PrintReport(report *domain.SessionReport) {
	meta := report.Meta

	fmt.Fprintln(f.out)
	f.cyan.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	f.cyan.Fprintln(f.out, "║                    Smoke Run Statistics                       ║")
	f.cyan.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")

	rate := FormatRate(meta.SuccessRate, meta.Attempted > 0)
	rows := []struct {
		label string
		value string
		c     *color.Color
	}{
		{"Base URL", meta.BaseURL, f.white},
		{"Checks Attempted", fmt.Sprintf("%d", meta.Attempted), f.white},
		{"Checks Passed", fmt.Sprintf("%d", meta.Passed), f.green},
		{"Checks Failed", fmt.Sprintf("%d", meta.Failed), f.red},
		{"Success Rate", rate, f.white},
		{"Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds), f.white},
		{"Timestamp", meta.Timestamp, f.white},
	}

	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────┐")
	for i, row := range rows {
		fmt.Fprintf(f.out, "│ %-31s │ ", row.label)
		row.c.Fprintf(f.out, "%-27s", row.value)
		fmt.Fprintln(f.out, " │")
		if i < len(rows)-1 {
			fmt.Fprintln(f.out, "├─────────────────────────────────┼─────────────────────────────┤")
		}
	}
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Fprintln(f.out)
	failed := report.FailedChecks()
	if len(failed) == 0 {
		f.green.Fprintln(f.out, "✓ All checks passed!")
		return
	}
	f.red.Fprintf(f.out, "✗ %d check(s) failed\n", len(failed))
	for _, c := range failed {
		if c.Error != "" {
			f.red.Fprintf(f.out, "  |_ %s: %s\n", c.Name, c.Error)
		} else {
			f.red.Fprintf(f.out, "  |_ %s\n", c.Name)
		}
	}
}

// PrintHistory prints recorded runs, newest first
func (f *Formatter) PrintHistory(runs []domain.HistoryRun) {
	if len(runs) == 0 {
		f.yellow.Fprintln(f.out, "No recorded runs")
		return
	}

	w := tabwriter.NewWriter(f.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTARTED\tBASE URL\tPASSED\tDURATION\tRESULT")
	for _, r := range runs {
		result := color.GreenString("PASS")
		if !r.Success {
			result = color.RedString("FAIL")
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d/%d\t%s\t%s\n",
			r.ID,
			r.StartedAt.Local().Format(time.DateTime),
			r.BaseURL,
			r.Passed, r.Attempted,
			r.Duration.Round(time.Millisecond),
			result,
		)
	}
	w.Flush()
}

// FormatRate renders a success percentage with one decimal place, or n/a when
// nothing was attempted.
func FormatRate(rate float64, ok bool) string {
	if !ok {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", rate)
}
