package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"prproj/internal/testsupport"
)

const tps = testsupport.TicksPerSecond

type cliTestEnv struct {
	configPath  string
	catalogPath string
	projectPath string
	baseDir     string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	cfg := testsupport.NewConfig(t)
	base := testsupport.BaseDir(cfg)
	catalogPath := filepath.Join(base, "catalog.db")
	configPath := testsupport.WriteConfig(t, cfg, `
[logging]
level = "error"

[catalog]
enabled = true
path = "`+catalogPath+`"
`)

	clip := func(title string, in, out int64) testsupport.Clip {
		return testsupport.Clip{
			Title:     title,
			Path:      "/footage/" + title,
			In:        in * tps,
			Out:       out * tps,
			FrameRate: "10584000000",
			Duration:  "2540160000000",
		}
	}
	broken := clip("Gone.mov", 0, 1)
	broken.Omit = testsupport.OmitStream
	markup := testsupport.NewProject().
		Sequence(testsupport.SequenceSpec{ID: 7, Name: "Assembly", Out: 90 * tps, Groups: []string{"10"}}).
		Sequence(testsupport.SequenceSpec{ID: 8, Name: "Broken", Out: tps, Groups: []string{"11"}}).
		VideoTrackGroup("10", 1920, 1080,
			testsupport.Track{Clips: []testsupport.Clip{clip("Interview.mov", 0, 60), clip("Broll.mov", 60, 90)}},
			testsupport.Track{Global: true, Clips: []testsupport.Clip{clip("Title.mov", 10, 20)}},
		).
		VideoTrackGroup("11", 1280, 720, testsupport.Track{Clips: []testsupport.Clip{broken}}).XML()
	projectPath := testsupport.WriteProject(t, base, "edit.prproj", markup, true)

	return &cliTestEnv{
		configPath:  configPath,
		catalogPath: catalogPath,
		projectPath: projectPath,
		baseDir:     base,
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}
