package main

import (
	"context"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/robometrics/internal/config"
)

const fixture = "../../internal/export/testdata/num-robots-2-seed-0.json"

func useConfig(t *testing.T, formats ...string) string {
	t.Helper()
	c := config.DefaultConfig()
	c.OutputDir = filepath.Join(t.TempDir(), "results")
	c.PlotFormats = formats
	prev := cfg
	cfg = c
	t.Cleanup(func() { cfg = prev })
	return c.OutputDir
}

func exportsDir(t *testing.T, names ...string) string {
	t.Helper()
	data, err := os.ReadFile(fixture)
	require.NoError(t, err)
	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0644))
	}
	return dir
}

func testCommand() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	return cmd
}

func TestSignalContextCancelsOnSIGTERM(t *testing.T) {
	ctx, stop := signalContext(context.Background())
	defer stop()

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGTERM))

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context not cancelled by SIGTERM")
	}
}

func TestJunctionWritesHTML(t *testing.T) {
	out := useConfig(t, "html")
	dir := exportsDir(t, "qin-0.5-seed-0.json", "qin-1.0-seed-0.json")

	require.NoError(t, runJunction(testCommand(), []string{dir}))

	assert.FileExists(t, filepath.Join(out, "junction_flow.html"))
	assert.FileExists(t, filepath.Join(out, "junction_summary.json"))
	assert.NoFileExists(t, filepath.Join(out, "junction_flow.svg"))
}

func TestCircleWritesHTML(t *testing.T) {
	out := useConfig(t, "html")
	dir := exportsDir(t, "num-robots-2-seed-0.json", "num-robots-2-seed-1.json")

	require.NoError(t, runCircle(testCommand(), []string{dir}))

	assert.FileExists(t, filepath.Join(out, "circle_makespan.html"))
	assert.NoFileExists(t, filepath.Join(out, "circle_makespan.svg"))
}

func TestWriteConfig(t *testing.T) {
	useConfig(t, "svg", "ascii")
	path := filepath.Join(t.TempDir(), "robometrics.yaml")

	require.NoError(t, writeConfig(testCommand(), []string{path}))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"svg", "ascii"}, loaded.PlotFormats)
	assert.Equal(t, cfg.OutputDir, loaded.OutputDir)
}
