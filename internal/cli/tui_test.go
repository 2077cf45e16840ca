package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/tabuclique/pkg/clique"
	"github.com/matzehuels/tabuclique/pkg/pipeline"
)

func TestSearchModelUpdate(t *testing.T) {
	cancelled := false
	var m tea.Model = NewSearchModel("k5e.clq", 4, func() { cancelled = true })

	m, _ = m.Update(restartMsg(clique.RestartStats{Restart: 0, Restarts: 4, Size: 3, Best: 3, Improved: true}))
	m, _ = m.Update(restartMsg(clique.RestartStats{Restart: 1, Restarts: 4, Size: 4, Best: 4, Improved: true}))
	sm := m.(SearchModel)
	if len(sm.Sizes) != 2 || sm.Last.Best != 4 {
		t.Fatalf("model = %+v", sm)
	}
	view := sm.View()
	if !strings.Contains(view, "2/4 restarts") || !strings.Contains(view, "Searching k5e.clq") {
		t.Errorf("view:\n%s", view)
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !cancelled || cmd != nil || !m.(SearchModel).Quitting {
		t.Errorf("quit before done should cancel and wait (cancelled=%v)", cancelled)
	}

	res := &pipeline.Result{Search: clique.Result{Size: 4}}
	m, cmd = m.Update(doneMsg{res: res})
	if cmd == nil || !m.(SearchModel).Done || m.(SearchModel).Result != res {
		t.Error("done message should store the result and quit")
	}
}

func TestSparkline(t *testing.T) {
	if got := sparkline([]int{1, 2, 3}, 10); got != "▁▄█" {
		t.Errorf("sparkline = %q", got)
	}
	if got := sparkline([]int{5, 5}, 10); got != "▁▁" {
		t.Errorf("flat sparkline = %q", got)
	}
	if got := []rune(sparkline(make([]int, 100), 60)); len(got) != 60 {
		t.Errorf("sparkline width = %d", len(got))
	}
}

func TestProgressBar(t *testing.T) {
	full := strings.Count(progressBar(5, 10), "█")
	if full != barWidth/2 {
		t.Errorf("half bar has %d filled cells", full)
	}
	if strings.Count(progressBar(0, 0), "░") != barWidth {
		t.Error("zero total should render an empty bar")
	}
}
