package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/BobdaProgrammer/doTile/binding"
)

const (
	keyBindingsFile       = "keybindings.yaml"
	keyBindingsExtFile    = "keybindings_ext.yaml"
	buttonBindingsFile    = "buttonbindings.yaml"
	buttonBindingsExtFile = "buttonbindings_ext.yaml"
)

// LoadBindings builds the binding table from dir. keybindings.yaml and
// buttonbindings.yaml replace the built-in tables when present; the _ext
// files are appended to whichever table is in effect.
func LoadBindings(dir string, nworkspaces int) binding.Table {
	table := binding.DefaultTable(nworkspaces)

	if keys, ok := readList[binding.KeyBinding](filepath.Join(dir, keyBindingsFile)); ok {
		table.Keys = keys
	}
	if ext, ok := readList[binding.KeyBinding](filepath.Join(dir, keyBindingsExtFile)); ok {
		table.Keys = append(table.Keys, ext...)
	}

	if buttons, ok := readList[binding.ButtonBinding](filepath.Join(dir, buttonBindingsFile)); ok {
		table.Buttons = buttons
	}
	if ext, ok := readList[binding.ButtonBinding](filepath.Join(dir, buttonBindingsExtFile)); ok {
		table.Buttons = append(table.Buttons, ext...)
	}

	return table
}

func readList[T any](path string) ([]T, bool) {
	list, err := decodeFile[T](path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("binding file not present", "path", path)
		return nil, false
	}
	if err != nil {
		slog.Warn("ignoring binding file", "path", path, "error", err)
		return nil, false
	}
	return list, true
}

func decodeFile[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var list []T
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return list, nil
}
