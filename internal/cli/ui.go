package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/tabuclique/pkg/pipeline"
	"github.com/matzehuels/tabuclique/pkg/report"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber    = lipgloss.NewStyle().Foreground(colorCyan)
	StyleSuccess   = lipgloss.NewStyle().Foreground(colorGreen)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)
	StyleError     = lipgloss.NewStyle().Foreground(colorRed)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand  = lipgloss.NewStyle().Foreground(colorBlue)
	styleHeader   = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Println(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed detail line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// printStats prints graph statistics on a single line.
func printStats(vertices, edges int, density float64, cached bool) {
	status, statusStyle := iconFresh, styleComputed
	if cached {
		status, statusStyle = iconCached, styleCached
	}
	parts := []string{
		fmt.Sprintf("%d vertices", vertices),
		fmt.Sprintf("%d edges", edges),
		fmt.Sprintf("density %.3f", density),
	}

	line := "  "
	for _, part := range parts {
		line += StyleDim.Render(part) + StyleDim.Render(" · ")
	}
	fmt.Println(line + statusStyle.Render(status))
}

func printNewline() { fmt.Println() }

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// printResult prints the outcome of a single search.
func printResult(res *pipeline.Result) {
	if res.Verification.Valid {
		printSuccess("%s: clique of size %s", res.Instance, StyleNumber.Render(strconv.Itoa(res.Search.Size)))
	} else {
		printWarning("%s: incorrect clique of size %d (%s)", res.Instance, res.Search.Size, res.Verification.Reason)
	}
	printStats(res.Stats.Vertices, res.Stats.Edges, res.Stats.Density, res.CacheHit)
	printKeyValue("Clique", report.Join(res.Search.Clique))
	printKeyValue("Time", report.Seconds(res.Stats.SearchTime)+"s")
	if res.RunID != "" {
		printKeyValue("Run", res.RunID)
	}
}

// =============================================================================
// Batch Summary
// =============================================================================

// renderBatchTable renders one row per batch item and a summary footer.
func renderBatchTable(items []pipeline.BatchItem) string {
	rows := make([][]string, 0, len(items))
	var ok []report.Row
	for _, it := range items {
		if it.Err != nil {
			rows = append(rows, []string{it.Path, "—", "—", "—", "error"})
			continue
		}
		row := it.Result.Row()
		ok = append(ok, row)

		status := "ok"
		switch {
		case !row.Valid:
			status = "invalid"
		case it.Result.CacheHit:
			status = iconCached
		}
		rows = append(rows, []string{
			row.Instance,
			strconv.Itoa(it.Result.Stats.Vertices),
			strconv.Itoa(row.Size),
			report.Seconds(row.Elapsed),
			status,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Instance", "Vertices", "Clique", "Time (s)", "Status").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if col != 4 {
				return lipgloss.NewStyle().Foreground(colorWhite)
			}
			switch rows[row][4] {
			case "error":
				return StyleError
			case "invalid":
				return StyleWarning
			case iconCached:
				return styleCached
			default:
				return StyleSuccess
			}
		})

	s := report.Summarize(ok)
	footer := StyleDim.Render(fmt.Sprintf("%d instances · %d failed · %d invalid · clique %.2f ± %.2f (max %d) · %ss",
		len(items), len(items)-s.Instances, s.Invalid, s.MeanSize, s.StdDevSize, s.MaxSize, report.Seconds(s.TotalTime)))
	return t.Render() + "\n" + footer
}
