package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	MinFontSize     = 8
	MaxFontSize     = 48
	DefaultFontSize = 14
)

type EditorOptions struct {
	WordWrap        bool `toml:"word-wrap"`
	ColumnRatio     int  `toml:"column-ratio"`
	SourceFontSize  int  `toml:"source-font-size"`
	TargetFontSize  int  `toml:"target-font-size"`
	BackupOnSave    bool `toml:"backup-on-save"`
	AutosaveSession bool `toml:"autosave-session"`
}

type Config struct {
	Editor    EditorOptions     `toml:"editor"`
	Shortcuts map[string]string `toml:"shortcuts"`
}

// ActionLabels maps every bindable action to its menu label. [shortcuts]
// keys in config.toml must come from this set.
var ActionLabels = map[string]string{
	"file_open":           "Open",
	"file_save":           "Save",
	"file_save_as":        "Save As",
	"file_quit":           "Quit",
	"edit_undo":           "Undo",
	"edit_redo":           "Redo",
	"edit_find":           "Find",
	"op_split":            "Split Segment",
	"op_merge":            "Merge With Next",
	"op_move_up":          "Move Row Up",
	"op_move_down":        "Move Row Down",
	"op_edit_cell":        "Edit Cell",
	"op_delete_empty_row": "Delete Empty Row",
}

func Default() Config {
	return Config{
		Editor: EditorOptions{
			WordWrap:        true,
			ColumnRatio:     50,
			SourceFontSize:  DefaultFontSize,
			TargetFontSize:  DefaultFontSize,
			BackupOnSave:    true,
			AutosaveSession: true,
		},
		Shortcuts: map[string]string{
			"file_open":           "ctrl+o",
			"file_save":           "ctrl+s",
			"file_save_as":        "ctrl+shift+s",
			"file_quit":           "ctrl+q",
			"edit_undo":           "ctrl+z",
			"edit_redo":           "ctrl+shift+z",
			"edit_find":           "ctrl+f",
			"op_split":            "ctrl+enter",
			"op_merge":            "ctrl+m",
			"op_move_up":          "alt+up",
			"op_move_down":        "alt+down",
			"op_edit_cell":        "f2",
			"op_delete_empty_row": "ctrl+d",
		},
	}
}

func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	md, err := toml.Decode(string(data), &userCfg)
	if err != nil {
		return cfg, err
	}

	if userCfg.Editor.ColumnRatio > 0 {
		cfg.Editor.ColumnRatio = userCfg.Editor.ColumnRatio
	}
	if userCfg.Editor.SourceFontSize > 0 {
		cfg.Editor.SourceFontSize = userCfg.Editor.SourceFontSize
	}
	if userCfg.Editor.TargetFontSize > 0 {
		cfg.Editor.TargetFontSize = userCfg.Editor.TargetFontSize
	}
	// defaults for these are true, so presence decides, not the value
	if md.IsDefined("editor", "word-wrap") {
		cfg.Editor.WordWrap = userCfg.Editor.WordWrap
	}
	if md.IsDefined("editor", "backup-on-save") {
		cfg.Editor.BackupOnSave = userCfg.Editor.BackupOnSave
	}
	if md.IsDefined("editor", "autosave-session") {
		cfg.Editor.AutosaveSession = userCfg.Editor.AutosaveSession
	}
	for action, key := range userCfg.Shortcuts {
		if _, ok := ActionLabels[action]; !ok {
			return cfg, fmt.Errorf("config: unknown action %q in [shortcuts]", action)
		}
		cfg.Shortcuts[action] = key
	}

	cfg.Editor.ColumnRatio = clampRatio(cfg.Editor.ColumnRatio)
	cfg.Editor.SourceFontSize = clampFontSize(cfg.Editor.SourceFontSize)
	cfg.Editor.TargetFontSize = clampFontSize(cfg.Editor.TargetFontSize)

	return cfg, nil
}

func clampFontSize(size int) int {
	if size < MinFontSize {
		return MinFontSize
	}
	if size > MaxFontSize {
		return MaxFontSize
	}
	return size
}

// clampRatio keeps the source column between 10% and 90% of the split.
func clampRatio(pct int) int {
	if pct < 10 {
		return 10
	}
	if pct > 90 {
		return 90
	}
	return pct
}

func ConfigDir() (string, error) {
	if v := os.Getenv("TMXALIGN_CONFIG_HOME"); v != "" {
		return filepath.Join(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "tmxalign"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "tmxalign"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
