package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BobdaProgrammer/doTile/binding"
	"github.com/BobdaProgrammer/doTile/layout"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.PrimaryWorkspaces, cfg.PrimaryWorkspaces)
	assert.Equal(t, def.Layout, cfg.Layout)
	assert.Equal(t, def.Theme, cfg.Theme)
	assert.Equal(t, binding.DefaultKeys(9), cfg.Bindings.Keys)
	assert.Empty(t, cfg.OnStartup)
}

func TestLoadOverridesFields(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
primary_workspaces: 4
secondary_workspaces: 2
initial_placement: pointer
on_startup: "picom -b"
layout:
  default: monocle
  gap_width: 8
  main_ratio: 0.6
  nmain: 2
  stack_position: bottom
  stack_mode: deck
theming:
  active_color: 0xff0000
  inactive_color: "#00ff00"
  frame_width: [2, 3, 4, 5]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.PrimaryWorkspaces)
	assert.Equal(t, 2, cfg.SecondaryWorkspaces)
	assert.Equal(t, Pointer, cfg.Placement)
	assert.Equal(t, "picom -b", cfg.OnStartup)
	assert.Equal(t, layout.Monocle, cfg.Layout.Default)
	assert.Equal(t, layout.Params{
		Gap: 8, MainRatio: 0.6, NMain: 2,
		StackMode: layout.DeckMode, StackPosition: layout.Bottom,
	}, cfg.Layout.Params)
	assert.Equal(t, uint32(0xff0000), cfg.Theme.ActiveColor)
	assert.Equal(t, uint32(0x00ff00), cfg.Theme.InactiveColor)
	assert.Equal(t, FrameWidth{Top: 2, Right: 3, Bottom: 4, Left: 5}, cfg.Theme.FrameWidth)

	// four workspaces means four function-key switch bindings
	n := 0
	for _, b := range cfg.Bindings.Keys {
		if b.Action.Op == binding.SwitchWorkspace {
			n++
		}
	}
	assert.Equal(t, 4, n)
}

func TestInvalidValuesFallBack(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
primary_workspaces: 0
initial_placement: everywhere
layout:
  default: spiral
  main_ratio: 1.5
  gap_width: -3
  nmain: 3
theming:
  frame_width: [1, 2]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.PrimaryWorkspaces, cfg.PrimaryWorkspaces)
	assert.Equal(t, def.Placement, cfg.Placement)
	assert.Equal(t, def.Layout.Default, cfg.Layout.Default)
	assert.Equal(t, def.Layout.Params.MainRatio, cfg.Layout.Params.MainRatio)
	assert.Equal(t, def.Layout.Params.Gap, cfg.Layout.Params.Gap)
	assert.Equal(t, uint(3), cfg.Layout.Params.NMain, "valid fields next to bad ones still apply")
	assert.Equal(t, def.Theme.FrameWidth, cfg.Theme.FrameWidth)
}

func TestMalformedFileReturnsErrorWithDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", "layout: [unterminated\n")

	cfg, err := Load(path)
	assert.Error(t, err)
	assert.Equal(t, Default().Layout, cfg.Layout)
}

func TestBindingFilesReplaceAndExtend(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, keyBindingsFile, `
- modifiers: [Mod4]
  key: Return
  action: {execute: xterm}
`)
	writeFile(t, dir, keyBindingsExtFile, `
- modifiers: [Mod4]
  key: q
  action: close-client
`)
	writeFile(t, dir, buttonBindingsExtFile, `
- modifiers: [Mod4]
  button: 2
  targets: [window]
  action: toggle-floating
`)

	table := LoadBindings(dir, 9)

	require.Len(t, table.Keys, 2)
	a, ok := table.MatchKey(uint16(binding.Mod4), "Return")
	require.True(t, ok)
	assert.Equal(t, binding.Run("xterm"), a)
	a, ok = table.MatchKey(uint16(binding.Mod4), "q")
	require.True(t, ok)
	assert.Equal(t, binding.CloseClient, a.Op)

	assert.Len(t, table.Buttons, len(binding.DefaultButtons())+1)
	a, ok = table.MatchButton(uint16(binding.Mod4), 2, binding.TargetWindow)
	require.True(t, ok)
	assert.Equal(t, binding.ToggleFloating, a.Op)
}

func TestBrokenBindingFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, keyBindingsFile, `
- key: x
  action: not-an-action
`)

	table := LoadBindings(dir, 9)
	assert.Equal(t, binding.DefaultKeys(9), table.Keys)
}

func TestAutostartScript(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, autostartScript, "#!/bin/sh\n")
	require.NoError(t, os.Chmod(script, 0o755))

	cfg, err := Load(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, script, cfg.OnStartup)
}

func TestParseColor(t *testing.T) {
	for in, want := range map[string]uint32{
		"3200767":  0x30d6ff,
		"0x30d6ff": 0x30d6ff,
		"#141414":  0x141414,
	} {
		got, err := parseColor(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := parseColor("0x1000000")
	assert.Error(t, err)
}
