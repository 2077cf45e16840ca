package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tabuclique/pkg/clique"
	"github.com/matzehuels/tabuclique/pkg/errors"
	"github.com/matzehuels/tabuclique/pkg/pipeline"
)

const k5MinusEdge = "c K5 without edge 1-2\np edge 5 9\ne 1 3\ne 1 4\ne 1 5\ne 2 3\ne 2 4\ne 2 5\ne 3 4\ne 3 5\ne 4 5\n"

// newTestCLI isolates config and cache directories and silences the logger.
func newTestCLI(t *testing.T) (*CLI, *cobra.Command) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	c := New(&bytes.Buffer{}, LogInfo)
	return c, c.RootCommand()
}

func writeGraph(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, root *cobra.Command, args ...string) error {
	t.Helper()
	root.SetArgs(args)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	return root.ExecuteContext(context.Background())
}

func TestSearchFlagsOverrideConfig(t *testing.T) {
	var f searchFlags
	cmd := &cobra.Command{Use: "x"}
	f.register(cmd)
	if err := cmd.ParseFlags([]string{"--width", "4", "--eligibility", "candidate"}); err != nil {
		t.Fatal(err)
	}

	base := clique.Options{Restarts: 300, Width: 2, Seed: 9}
	o, err := f.options(cmd, base)
	if err != nil {
		t.Fatal(err)
	}
	if o.Restarts != 300 || o.Seed != 9 {
		t.Errorf("unset flags must keep config values: %+v", o)
	}
	if o.Width != 4 || o.Eligibility != clique.EligibilityCandidate {
		t.Errorf("set flags must override: %+v", o)
	}
	if o.Trials != clique.DefaultTrials || o.TabuSize != clique.DefaultTabuSize {
		t.Errorf("defaults not applied: %+v", o)
	}
}

func TestSearchFlagsInvalid(t *testing.T) {
	for _, args := range [][]string{{"--restarts", "-1"}, {"--eligibility", "greedy"}} {
		var f searchFlags
		cmd := &cobra.Command{Use: "x"}
		f.register(cmd)
		if err := cmd.ParseFlags(args); err != nil {
			t.Fatal(err)
		}
		if _, err := f.options(cmd, clique.Options{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("%v: error = %v", args, err)
		}
	}
}

func TestParseVertices(t *testing.T) {
	got, err := parseVertices([]string{"0,5, 12", "3"}, false)
	if err != nil || len(got) != 4 || got[0] != 0 || got[2] != 12 || got[3] != 3 {
		t.Errorf("parseVertices = %v, %v", got, err)
	}
	got, _ = parseVertices([]string{"1,2"}, true)
	if got[0] != 0 || got[1] != 1 {
		t.Errorf("one-based = %v", got)
	}
	if _, err := parseVertices([]string{"1,x"}, false); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad vertex: %v", err)
	}
}

func TestCollectGraphs(t *testing.T) {
	dir := t.TempDir()
	writeGraph(t, dir, "b.clq", k5MinusEdge)
	writeGraph(t, dir, "a.CLQ", k5MinusEdge)
	writeGraph(t, dir, "notes.txt", "x")
	single := writeGraph(t, t.TempDir(), "c.dimacs", k5MinusEdge)

	paths, err := collectGraphs([]string{dir, single})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "a.CLQ"), filepath.Join(dir, "b.clq"), single}
	if strings.Join(paths, "|") != strings.Join(want, "|") {
		t.Errorf("paths = %v, want %v", paths, want)
	}

	if _, err := collectGraphs([]string{filepath.Join(dir, "missing")}); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing: %v", err)
	}
	if _, err := collectGraphs([]string{t.TempDir()}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty dir: %v", err)
	}
}

func TestResolveFormat(t *testing.T) {
	tests := []struct{ format, output, want string }{
		{"dot", "x.svg", "dot"},
		{"", "x.dot", "dot"},
		{"", "x.svg", "svg"},
		{"", "x.png", "svg"},
		{"", "", "svg"},
	}
	for _, tt := range tests {
		if got := resolveFormat(tt.format, tt.output); got != tt.want {
			t.Errorf("resolveFormat(%q, %q) = %q, want %q", tt.format, tt.output, got, tt.want)
		}
	}
	if got := outputPath("", "graphs/brock200_2.clq", "svg"); got != "graphs/brock200_2.svg" {
		t.Errorf("outputPath = %q", got)
	}
	if got := outputPath("out.dot", "g.clq", "dot"); got != "out.dot" {
		t.Errorf("outputPath = %q", got)
	}
}

func TestBatchCommand(t *testing.T) {
	_, root := newTestCLI(t)
	dir := t.TempDir()
	writeGraph(t, dir, "k5e.clq", k5MinusEdge)
	writeGraph(t, dir, "path.clq", "p edge 3 2\ne 1 2\ne 2 3\n")
	writeGraph(t, dir, "broken.clq", "p edge 2 1\ne 1 9\n")
	out := filepath.Join(t.TempDir(), "report.csv")

	if err := run(t, root, "batch", dir, "-o", out, "-r", "3", "--no-cache"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 || lines[0] != "File; Clique; Time (sec)" {
		t.Fatalf("report:\n%s", data)
	}
	if !strings.HasPrefix(lines[1], "k5e.clq; 4; ") || !strings.HasPrefix(lines[2], "path.clq; 2; ") {
		t.Errorf("report rows:\n%s", data)
	}
}

func TestVerifyCommand(t *testing.T) {
	path := writeGraph(t, t.TempDir(), "k5e.clq", k5MinusEdge)

	_, root := newTestCLI(t)
	if err := run(t, root, "verify", path, "1,2,3,4"); err != nil {
		t.Errorf("valid clique: %v", err)
	}
	_, root = newTestCLI(t)
	if err := run(t, root, "verify", path, "--one-based", "1", "2"); !errors.Is(err, errors.ErrCodeVerification) {
		t.Errorf("vertices 1 and 2 are not adjacent: %v", err)
	}
}

func TestRenderCommandDOT(t *testing.T) {
	_, root := newTestCLI(t)
	path := writeGraph(t, t.TempDir(), "k5e.clq", k5MinusEdge)
	out := filepath.Join(t.TempDir(), "k5e.dot")

	if err := run(t, root, "render", path, "-o", out, "-r", "2", "--full"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "graph G {") {
		t.Errorf("DOT output:\n%s", data)
	}
}

func TestRenderBatchTable(t *testing.T) {
	items := []pipeline.BatchItem{
		{Path: "a.clq", Result: &pipeline.Result{
			Instance:     "a.clq",
			Search:       clique.Result{Size: 4, Clique: []int{1, 2, 3, 4}},
			Verification: clique.Verification{Valid: true},
			Stats:        pipeline.Stats{Vertices: 5},
		}},
		{Path: "b.clq", Err: errors.New(errors.ErrCodeInvalidGraph, "line 2: bad edge")},
	}
	got := renderBatchTable(items)
	for _, want := range []string{"a.clq", "b.clq", "error", "2 instances · 1 failed"} {
		if !strings.Contains(got, want) {
			t.Errorf("table missing %q:\n%s", want, got)
		}
	}
}

func TestCompletion(t *testing.T) {
	for shell := range completionShells {
		t.Run(shell, func(t *testing.T) {
			_, root := newTestCLI(t)
			var out bytes.Buffer
			root.SetArgs([]string{"completion", shell})
			root.SetOut(&out)
			root.SetErr(&bytes.Buffer{})
			if err := root.ExecuteContext(context.Background()); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out.String(), appName) {
				t.Errorf("%s script does not mention %s", shell, appName)
			}
		})
	}

	_, root := newTestCLI(t)
	if err := run(t, root, "completion", "tcsh"); err == nil {
		t.Error("unknown shell should be rejected")
	}

	exts, directive := completeGraphFiles(nil, nil, "")
	if directive != cobra.ShellCompDirectiveFilterFileExt || len(exts) != 3 || exts[0] != "clq" {
		t.Errorf("completeGraphFiles() = %v, %v", exts, directive)
	}
	if _, directive := completeGraphFiles(nil, []string{"g.clq"}, ""); directive != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("second argument directive = %v", directive)
	}
}
