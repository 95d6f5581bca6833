package ycmd

import (
	"github.com/tidwall/gjson"
)

// Settings is the configuration surface for one backend instance. It is an
// immutable value; the supervisor compares settings structurally (together
// with the workspace root) to decide whether the held instance can be reused.
type Settings struct {
	// Path is the directory containing the ycmd backend module.
	Path string

	// Python is the interpreter used to run the backend.
	Python string

	// GlobalExtraConf is the path handed to the backend as
	// global_ycm_extra_conf, or empty for none.
	GlobalExtraConf string

	// ConfirmExtraConf controls whether the backend asks before loading
	// per-project extra conf files.
	ConfirmExtraConf bool

	// Debug enables verbose logging of backend traffic.
	Debug bool
}

// DefaultSettings returns settings with the defaults applied.
func DefaultSettings() Settings {
	return Settings{
		Python:           "python3",
		ConfirmExtraConf: true,
	}
}

// Equal reports structural equality. This, not identity, is the restart
// trigger: two settings values with the same fields describe the same
// backend.
func (s Settings) Equal(other Settings) bool {
	return s == other
}

// Valid reports whether the settings are complete enough to launch a backend.
func (s Settings) Valid() bool {
	return s.Path != "" && s.Python != ""
}

// SettingsFromJSON parses an editor-supplied settings object. Recognized keys
// follow the integration's configuration surface:
//
//	ycmd.path, ycmd.python, ycmd.global_extra_config,
//	ycmd.confirm_extra_conf, ycmd.debug
//
// Missing keys keep their defaults.
func SettingsFromJSON(data []byte) Settings {
	s := DefaultSettings()

	if v := gjson.GetBytes(data, `ycmd\.path`); v.Exists() {
		s.Path = v.String()
	}
	if v := gjson.GetBytes(data, `ycmd\.python`); v.Exists() && v.String() != "" {
		s.Python = v.String()
	}
	if v := gjson.GetBytes(data, `ycmd\.global_extra_config`); v.Exists() {
		s.GlobalExtraConf = v.String()
	}
	if v := gjson.GetBytes(data, `ycmd\.confirm_extra_conf`); v.Exists() {
		s.ConfirmExtraConf = v.Bool()
	}
	if v := gjson.GetBytes(data, `ycmd\.debug`); v.Exists() {
		s.Debug = v.Bool()
	}

	return s
}
