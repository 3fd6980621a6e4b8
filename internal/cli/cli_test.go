package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/graphedit/pkg/graph"
)

const (
	sampleGraph   = "../../examples/graphs/sample.json"
	connectScript = "../../examples/scripts/connect.toml"
)

// isolate points the config and cache directories at temporary paths so
// tests never read or write the user's files.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
}

// runCLI executes the root command with args and returns what it wrote to
// its output stream.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	want := []string{"replay", "export", "shapes", "edit", "serve", "config", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd == root {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("--config flag not registered")
	}
}

func TestReplayToStdout(t *testing.T) {
	isolate(t)
	out, err := runCLI(t, "replay", sampleGraph, connectScript)
	if err != nil {
		t.Fatalf("replay error: %v", err)
	}
	g, err := graph.Codec{}.Unmarshal([]byte(out))
	if err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(g.Nodes) != 5 {
		t.Errorf("nodes = %d, want 5", len(g.Nodes))
	}
	if len(g.Edges) != 4 {
		t.Errorf("edges = %d, want 4", len(g.Edges))
	}
	i := g.NodeIndex("check")
	if i < 0 || g.Nodes[i].X != 320 || g.Nodes[i].Y != 300 {
		t.Errorf("check not moved to (320, 300): %+v", g.Nodes)
	}
	if g.EdgeIndex("start", "check") < 0 {
		t.Error("edge start -> check not created")
	}
}

func TestReplayToFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "out.json")
	out, err := runCLI(t, "replay", sampleGraph, connectScript, "-o", path)
	if err != nil {
		t.Fatalf("replay error: %v", err)
	}
	if out != "" {
		t.Errorf("replay -o wrote %q to stdout", out)
	}
	g, err := graph.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if len(g.Nodes) != 5 {
		t.Errorf("nodes = %d, want 5", len(g.Nodes))
	}
}

func TestReplayErrors(t *testing.T) {
	isolate(t)
	tests := []struct {
		name string
		args []string
	}{
		{"missing graph", []string{"replay", "nope.json", connectScript}},
		{"missing script", []string{"replay", sampleGraph, "nope.toml"}},
		{"too few args", []string{"replay", sampleGraph}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := runCLI(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestExplicitConfigMustExist(t *testing.T) {
	isolate(t)
	_, err := runCLI(t, "--config", filepath.Join(t.TempDir(), "missing.toml"), "shapes")
	if err == nil {
		t.Fatal("expected error for missing --config file")
	}
}

func TestExportDOT(t *testing.T) {
	isolate(t)
	out, err := runCLI(t, "export", sampleGraph, "--detailed")
	if err != nil {
		t.Fatalf("export error: %v", err)
	}
	for _, want := range []string{"digraph", `"start" -> "parse"`, "Special"} {
		if !strings.Contains(out, want) {
			t.Errorf("export output missing %q:\n%s", want, out)
		}
	}
}

func TestExportUnknownFormat(t *testing.T) {
	isolate(t)
	if _, err := runCLI(t, "export", sampleGraph, "-f", "png"); err == nil {
		t.Error("expected error for format png")
	}
}

func TestExportSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping graphviz render in short mode")
	}
	isolate(t)
	path := filepath.Join(t.TempDir(), "sample.svg")
	if _, err := runCLI(t, "export", sampleGraph, "-f", "svg", "-o", path); err != nil {
		t.Fatalf("export error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if !bytes.Contains(data, []byte("<svg")) {
		t.Error("output is not an SVG document")
	}
}

func TestShapes(t *testing.T) {
	isolate(t)
	out, err := runCLI(t, "shapes")
	if err != nil {
		t.Fatalf("shapes error: %v", err)
	}
	for _, want := range []string{"skinny", "154×54", "#specialChild", "specialEdge", "100×100"} {
		if !strings.Contains(out, want) {
			t.Errorf("shapes output missing %q:\n%s", want, out)
		}
	}
}

func TestConfigInit(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "graphedit.toml")

	if _, err := runCLI(t, "--config", path, "config", "init"); err != nil {
		t.Fatalf("config init error: %v", err)
	}
	if !fileExists(path) {
		t.Fatal("config init did not write the file")
	}
	if _, err := runCLI(t, "--config", path, "config", "init"); err == nil {
		t.Error("second config init should refuse to overwrite")
	}
	if _, err := runCLI(t, "--config", path, "config", "init", "--force"); err != nil {
		t.Errorf("config init --force error: %v", err)
	}

	out, err := runCLI(t, "--config", path, "config")
	if err != nil {
		t.Fatalf("config error: %v", err)
	}
	if !strings.Contains(out, `key_field = "id"`) {
		t.Errorf("config output missing key_field:\n%s", out)
	}
}

func TestConfigPath(t *testing.T) {
	isolate(t)
	out, err := runCLI(t, "config", "path")
	if err != nil {
		t.Fatalf("config path error: %v", err)
	}
	want := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), appName, "config.toml")
	if strings.TrimSpace(out) != want {
		t.Errorf("config path = %q, want %q", strings.TrimSpace(out), want)
	}
}

func TestCachePath(t *testing.T) {
	isolate(t)
	out, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path error: %v", err)
	}
	if strings.TrimSpace(out) != cacheDir() {
		t.Errorf("cache path = %q, want %q", strings.TrimSpace(out), cacheDir())
	}
}

func TestCompletion(t *testing.T) {
	out, err := runCLI(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion error: %v", err)
	}
	if !strings.Contains(out, appName) {
		t.Error("bash completion does not mention the command name")
	}
}
