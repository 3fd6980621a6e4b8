package editor

import "strings"

// Key names understood by KeyDown.
const (
	KeyDelete    = "delete"
	KeyBackspace = "backspace"
	KeyEscape    = "escape"
	KeyCopy      = "c"
	KeyPaste     = "v"
	KeyUndo      = "z"
)

// Modifiers is the modifier key state of a key press.
type Modifiers struct {
	Ctrl  bool `json:"ctrl,omitempty" toml:"ctrl"`
	Shift bool `json:"shift,omitempty" toml:"shift"`
	Alt   bool `json:"alt,omitempty" toml:"alt"`
	Meta  bool `json:"meta,omitempty" toml:"meta"`
}

// command reports whether the platform command modifier is held.
func (m Modifiers) command() bool { return m.Ctrl || m.Meta }

// ParseKey splits a chord such as "ctrl+c" into its key and modifiers.
func ParseKey(chord string) (string, Modifiers) {
	var mods Modifiers
	parts := strings.Split(strings.ToLower(strings.TrimSpace(chord)), "+")
	for _, p := range parts[:len(parts)-1] {
		switch p {
		case "ctrl", "control":
			mods.Ctrl = true
		case "shift":
			mods.Shift = true
		case "alt", "option":
			mods.Alt = true
		case "meta", "cmd", "command", "super":
			mods.Meta = true
		}
	}
	key := parts[len(parts)-1]
	switch key {
	case "del":
		key = KeyDelete
	case "esc":
		key = KeyEscape
	}
	return key, mods
}

// KeyDown handles a key press. Unbound keys are ignored and return nil.
func (e *Editor) KeyDown(key string, mods Modifiers) error {
	switch strings.ToLower(key) {
	case KeyDelete, KeyBackspace:
		return e.Delete()
	case KeyEscape:
		e.Cancel()
	case KeyCopy:
		if mods.command() {
			return e.Copy()
		}
	case KeyPaste:
		if mods.command() {
			_, err := e.Paste()
			return err
		}
	case KeyUndo:
		if mods.command() {
			e.Undo()
		}
	}
	return nil
}
