package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), err
}

func writeItinerary(t *testing.T, dir string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	rows := [][]any{
		{"Time", "Activity", "Note"},
		{"09:00", "Breakfast", "<i>hotel</i>"},
		{"12:00", "Lunch", "Downtown"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	path := filepath.Join(dir, "12月31日.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestRun_NoArguments(t *testing.T) {
	out, err := execute(t)
	require.NoError(t, err)
	assert.Equal(t, usageLine+"\n", out)
}

func TestRun_MissingInput(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "nope.xlsx")

	out, err := execute(t, missing)
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.Contains(t, out, "ERROR: file not found "+missing)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_DefaultOutput(t *testing.T) {
	dir := t.TempDir()
	input := writeItinerary(t, dir)
	want := filepath.Join(dir, "plan_dec31.html")

	out, err := execute(t, input)
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.Contains(t, out, "Generated "+want)

	data, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<title>12月31日</title>")
	assert.Contains(t, string(data), "&lt;i&gt;hotel&lt;/i&gt;")
}

func TestRun_ExplicitOutputAndFlags(t *testing.T) {
	dir := t.TempDir()
	input := writeItinerary(t, dir)
	output := filepath.Join(dir, "page.html")

	out, err := execute(t, "--escape", "raw", input, output)
	require.NoError(t, err)
	assert.Contains(t, out, "Generated "+output)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<i>hotel</i>")

	_, err = os.Stat(filepath.Join(dir, "plan_dec31.html"))
	assert.True(t, os.IsNotExist(err))
}

func TestRun_MalformedWorkbook(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "broken.xlsx")
	require.NoError(t, os.WriteFile(input, []byte("plain text"), 0o644))

	out, err := execute(t, input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot read spreadsheet")
	assert.Empty(t, out)
}

func TestRun_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	input := writeItinerary(t, dir)
	cfgPath := filepath.Join(dir, "tabi.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output_name: day.html\nheading_prefix: 旅行のしおり\n"), 0o644))

	out, err := execute(t, "--config", cfgPath, input)
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, "day.html"))

	data, err := os.ReadFile(filepath.Join(dir, "day.html"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<h1>旅行のしおり · 12月31日</h1>")
}

func TestConfigCommand(t *testing.T) {
	out, err := execute(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "escape: escape")
	assert.Contains(t, out, "output_name: plan_dec31.html")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "tabi dev")
}
