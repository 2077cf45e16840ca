package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/tabuclique/pkg/clique"
	"github.com/matzehuels/tabuclique/pkg/pipeline"
)

var (
	barFullStyle  = lipgloss.NewStyle().Foreground(colorCyan)
	barEmptyStyle = lipgloss.NewStyle().Foreground(colorDim)
	sparkStyle    = lipgloss.NewStyle().Foreground(colorGreen)
)

const (
	barWidth   = 40
	sparkWidth = 60
)

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// restartMsg carries the stats of one finished restart.
type restartMsg clique.RestartStats

// doneMsg is sent once the pipeline run returns.
type doneMsg struct {
	res *pipeline.Result
	err error
}

// =============================================================================
// SearchModel - live restart progress
// =============================================================================

// SearchModel is the bubbletea model for `search --interactive`.
type SearchModel struct {
	Instance string
	Restarts int
	Last     clique.RestartStats
	Sizes    []int // per-restart local optimum sizes
	Result   *pipeline.Result
	Err      error
	Done     bool
	Quitting bool

	start  time.Time
	cancel context.CancelFunc
}

// NewSearchModel creates a model; cancel stops the underlying search.
func NewSearchModel(instance string, restarts int, cancel context.CancelFunc) SearchModel {
	return SearchModel{Instance: instance, Restarts: restarts, start: time.Now(), cancel: cancel}
}

func (m SearchModel) Init() tea.Cmd {
	return nil
}

func (m SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Quitting = true
			if m.cancel != nil {
				m.cancel()
			}
			if m.Done {
				return m, tea.Quit
			}
		}
	case restartMsg:
		m.Last = clique.RestartStats(msg)
		m.Sizes = append(m.Sizes, msg.Size)
	case doneMsg:
		m.Result, m.Err, m.Done = msg.res, msg.err, true
		return m, tea.Quit
	}
	return m, nil
}

func (m SearchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Searching " + m.Instance))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("q quit"))
	b.WriteString("\n\n")

	done := len(m.Sizes)
	if m.Result != nil && m.Result.CacheHit {
		done = m.Restarts
	}
	b.WriteString(progressBar(done, m.Restarts))
	b.WriteString(fmt.Sprintf("  %d/%d restarts\n\n", done, m.Restarts))

	b.WriteString(fmt.Sprintf("  %s %s   %s %d   %s %d   %s %d\n",
		StyleDim.Render("best"), StyleNumber.Render(fmt.Sprint(m.Last.Best)),
		StyleDim.Render("last"), m.Last.Size,
		StyleDim.Render("moves"), m.Last.Moves,
		StyleDim.Render("swaps"), m.Last.Swaps))
	if len(m.Sizes) > 0 {
		b.WriteString("  " + sparkStyle.Render(sparkline(m.Sizes, sparkWidth)) + "\n")
	}
	b.WriteString("\n")

	elapsed := time.Since(m.start).Round(100 * time.Millisecond)
	switch {
	case m.Done && m.Err != nil:
		b.WriteString(StyleWarning.Render(fmt.Sprintf("  stopped after %s: %v", elapsed, m.Err)))
	case m.Done:
		b.WriteString(StyleSuccess.Render(fmt.Sprintf("  done in %s", elapsed)))
	case m.Quitting:
		b.WriteString(StyleDim.Render("  finishing current restart..."))
	default:
		b.WriteString(StyleDim.Render(fmt.Sprintf("  %s elapsed", elapsed)))
	}
	b.WriteString("\n")
	return b.String()
}

// progressBar renders done/total as a fixed-width bar.
func progressBar(done, total int) string {
	filled := 0
	if total > 0 {
		filled = min(barWidth, done*barWidth/total)
	}
	return "  " + barFullStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", barWidth-filled))
}

// sparkline renders the last width values scaled between their min and max.
func sparkline(values []int, width int) string {
	if len(values) > width {
		values = values[len(values)-width:]
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	out := make([]rune, len(values))
	for i, v := range values {
		level := 0
		if hi > lo {
			level = (v - lo) * (len(sparkLevels) - 1) / (hi - lo)
		}
		out[i] = sparkLevels[level]
	}
	return string(out)
}

// runInteractive runs the search behind a live progress view and prints the
// result once the view closes. Quitting early keeps the best clique found.
func runInteractive(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	p := tea.NewProgram(NewSearchModel(opts.Instance, opts.Search.Restarts, cancel))
	opts.Search.Progress = func(st clique.RestartStats) { p.Send(restartMsg(st)) }
	go func() {
		res, err := runner.Execute(ctx, opts)
		p.Send(doneMsg{res: res, err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return err
	}
	m := final.(SearchModel)
	if !m.Done {
		// The view was closed before the run returned.
		return ctx.Err()
	}
	if m.Result != nil {
		printResult(m.Result)
	}
	if m.Err != nil && !(m.Quitting && ctx.Err() != nil) {
		return m.Err
	}
	return nil
}
