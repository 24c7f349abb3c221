package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsariola/mathtone"
	"github.com/vsariola/mathtone/catalog"
	"github.com/vsariola/mathtone/processor"
	"github.com/vsariola/mathtone/session"
)

func testSession(t *testing.T) session.Session {
	s := session.Default()
	s.Output.Dir = filepath.Join(t.TempDir(), "Results")
	return s
}

func TestRunWritesOneFilePerFormat(t *testing.T) {
	s := testSession(t)
	s.To = []mathtone.NumberFormat{mathtone.Hex, mathtone.Oct}
	s.Output.Midi = true
	s.BaseDuration = 10 * time.Millisecond
	var stdout bytes.Buffer
	require.NoError(t, run(s, catalog.Default(), "pi", &stdout))
	paths := strings.Fields(stdout.String())
	require.Len(t, paths, 4)
	for _, p := range paths {
		assert.FileExists(t, p)
		assert.True(t, strings.HasPrefix(filepath.Base(p), "mono_"), p)
	}
	entries, err := os.ReadDir(s.Output.Dir)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestRunPolyphonicWithTimbre(t *testing.T) {
	s := testSession(t)
	s.Processor = processor.Multi
	s.Timbre = "piano"
	var stdout bytes.Buffer
	require.NoError(t, run(s, catalog.Default(), "12 + 345", &stdout))
	path := strings.TrimSpace(stdout.String())
	assert.True(t, strings.HasPrefix(filepath.Base(path), "poly_"), path)
}

func TestRunTrace(t *testing.T) {
	s := testSession(t)
	s.Output.Wav = false
	s.Output.Trace = true
	s.From = mathtone.Hex
	s.Processor = processor.Reach
	var stdout bytes.Buffer
	require.NoError(t, run(s, catalog.Default(), "1F1", &stdout))
	out := stdout.String()
	assert.Contains(t, out, "OCTAVE_LOW")
	assert.Contains(t, out, "OCTAVE_HIGH")
	assert.NoDirExists(t, s.Output.Dir)
}

func TestRunUnknownTimbre(t *testing.T) {
	s := testSession(t)
	s.Timbre = "kazoo"
	assert.Error(t, run(s, catalog.Default(), "1", &bytes.Buffer{}))
}

func TestRunNothingToPlay(t *testing.T) {
	s := testSession(t)
	var stdout bytes.Buffer
	require.NoError(t, run(s, catalog.Default(), "xyz", &stdout))
	assert.Empty(t, stdout.String())
}

// resetRenderFlags forgets the flags parsed by an earlier test.
func resetRenderFlags() {
	renderFlags = renderOptions{}
	for _, name := range []string{"to", "processor", "midi", "duration", "raw", "output", "wav", "trace", "play"} {
		renderCmd.Flags().Lookup(name).Changed = false
	}
}

func TestLoadSessionFlags(t *testing.T) {
	resetRenderFlags()
	defer resetRenderFlags()
	require.NoError(t, renderCmd.ParseFlags([]string{"--to", "oct,bin", "-k", "multi-reach", "--midi", "--duration", "150ms"}))
	s, err := loadSession(renderCmd)
	require.NoError(t, err)
	assert.Equal(t, []mathtone.NumberFormat{mathtone.Oct, mathtone.Bin}, s.To)
	assert.Equal(t, processor.MultiReach, s.Processor)
	assert.True(t, s.Output.Midi)
	assert.False(t, s.Output.Wav, "explicit outputs replace the session's outputs")
	assert.Equal(t, 150*time.Millisecond, s.BaseDuration)
}

func TestTerminalLimitNotATerminal(t *testing.T) {
	assert.Zero(t, terminalLimit(&bytes.Buffer{}, 300*time.Millisecond))
}

func TestRunTraceCustomTemplate(t *testing.T) {
	defer func() { renderFlags = renderOptions{} }()
	renderFlags.template = filepath.Join(t.TempDir(), "roll.txt")
	require.NoError(t, os.WriteFile(renderFlags.template, []byte("{{range .Sequences}}{{.Title}}:{{.Slots}};{{end}}"), 0644))
	s := testSession(t)
	s.Output.Wav = false
	s.Output.Trace = true
	s.From = mathtone.Hex
	s.To = []mathtone.NumberFormat{mathtone.Hex}
	s.Processor = processor.Reach
	var stdout bytes.Buffer
	require.NoError(t, run(s, catalog.Default(), "1F1", &stdout))
	assert.Contains(t, stdout.String(), "Octave_Low:3;")
	assert.Contains(t, stdout.String(), "Octave_High:3;")
}

func TestRawReplacesSessionOutputs(t *testing.T) {
	resetRenderFlags()
	defer resetRenderFlags()
	dir := filepath.Join(t.TempDir(), "Results")
	require.NoError(t, renderCmd.ParseFlags([]string{"--raw", "-o", dir}))
	s, err := loadSession(renderCmd)
	require.NoError(t, err)
	assert.False(t, s.Output.Wav)
	assert.False(t, s.Output.Midi)
	assert.False(t, s.Output.Play)
	require.NoError(t, run(s, catalog.Default(), "12", &bytes.Buffer{}))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".raw", filepath.Ext(entries[0].Name()))
}
