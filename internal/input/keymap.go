package input

import (
	"errors"
	"fmt"
	"maps"
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// ErrInvalidKey is returned for key specs that cannot be parsed.
var ErrInvalidKey = errors.New("invalid key spec")

// Command names bound by the default keymap.
const (
	ActionInsertNewline  = "editor.insertNewline"
	ActionInsertText     = "editor.insertText"
	ActionDeleteCharBack = "editor.deleteCharBack"
	ActionUndo           = "editor.undo"
	ActionRedo           = "editor.redo"
	ActionCursorLeft     = "cursor.left"
	ActionCursorRight    = "cursor.right"
	ActionCursorUp       = "cursor.up"
	ActionCursorDown     = "cursor.down"
	ActionLineStart      = "cursor.lineStart"
	ActionLineEnd        = "cursor.lineEnd"
	ActionToggleLists    = "listedit.toggle"
	ActionSave           = "app.save"
	ActionQuit           = "app.quit"
)

// keyID is a normalized key event used as a map key.
type keyID struct {
	key  tcell.Key
	r    rune
	mods tcell.ModMask
}

func idOf(ev *tcell.EventKey) keyID {
	k, r, m := ev.Key(), ev.Rune(), ev.Modifiers()
	if m&tcell.ModCtrl != 0 && k >= tcell.KeySOH && k <= tcell.KeySUB {
		// Some consoles report Ctrl+letter as the raw control code.
		k = tcell.KeyCtrlA + (k - tcell.KeySOH)
	}
	if k != tcell.KeyRune {
		r = 0
	}
	return keyID{key: k, r: r, mods: m}
}

// Keymap maps key events to command names.
type Keymap struct {
	mu       sync.RWMutex
	bindings map[keyID]string
	specs    map[string]string
}

// NewKeymap creates an empty keymap.
func NewKeymap() *Keymap {
	return &Keymap{
		bindings: make(map[keyID]string),
		specs:    make(map[string]string),
	}
}

// DefaultKeymap returns the keymap used by the interactive editor.
func DefaultKeymap() *Keymap {
	k := NewKeymap()
	for spec, action := range map[string]string{
		"Enter":     ActionInsertNewline,
		"Backspace": ActionDeleteCharBack,
		"Left":      ActionCursorLeft,
		"Right":     ActionCursorRight,
		"Up":        ActionCursorUp,
		"Down":      ActionCursorDown,
		"Home":      ActionLineStart,
		"End":       ActionLineEnd,
		"Ctrl+A":    ActionLineStart,
		"Ctrl+E":    ActionLineEnd,
		"Ctrl+Z":    ActionUndo,
		"Ctrl+Y":    ActionRedo,
		"Ctrl+T":    ActionToggleLists,
		"Ctrl+S":    ActionSave,
		"Ctrl+Q":    ActionQuit,
	} {
		// Specs above are known to parse.
		_ = k.Bind(spec, action)
	}
	return k
}

// Bind maps a key spec to an action name, replacing any existing binding.
func (k *Keymap) Bind(spec, action string) error {
	ev, err := ParseKey(spec)
	if err != nil {
		return err
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	k.bindings[idOf(ev)] = action
	k.specs[spec] = action
	return nil
}

// Unbind removes the binding for a key spec.
func (k *Keymap) Unbind(spec string) error {
	ev, err := ParseKey(spec)
	if err != nil {
		return err
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.bindings, idOf(ev))
	delete(k.specs, spec)
	return nil
}

// Replace swaps in the bindings of other.
func (k *Keymap) Replace(other *Keymap) {
	other.mu.RLock()
	bindings := maps.Clone(other.bindings)
	specs := maps.Clone(other.specs)
	other.mu.RUnlock()

	k.mu.Lock()
	defer k.mu.Unlock()
	k.bindings = bindings
	k.specs = specs
}

// Lookup returns the action for a key event. Unbound printable keys and Tab
// become editor.insertText actions.
func (k *Keymap) Lookup(ev *tcell.EventKey) (Action, bool) {
	k.mu.RLock()
	name, ok := k.bindings[idOf(ev)]
	k.mu.RUnlock()
	if ok {
		return NewAction(name).WithSource(SourceKeyboard), true
	}

	switch {
	case ev.Key() == tcell.KeyRune && ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) == 0:
		return NewAction(ActionInsertText).WithText(string(ev.Rune())).WithSource(SourceKeyboard), true
	case ev.Key() == tcell.KeyTab:
		return NewAction(ActionInsertText).WithText("\t").WithSource(SourceKeyboard), true
	}
	return Action{}, false
}

// Bindings returns the bound key specs in sorted order.
func (k *Keymap) Bindings() []string {
	k.mu.RLock()
	defer k.mu.RUnlock()
	specs := make([]string, 0, len(k.specs))
	for spec := range k.specs {
		specs = append(specs, spec)
	}
	sort.Strings(specs)
	return specs
}

var namedKeys = map[string]tcell.Key{
	"enter":     tcell.KeyEnter,
	"ret":       tcell.KeyEnter,
	"return":    tcell.KeyEnter,
	"backspace": tcell.KeyBackspace,
	"del":       tcell.KeyBackspace,
	"delete":    tcell.KeyDelete,
	"tab":       tcell.KeyTab,
	"esc":       tcell.KeyEscape,
	"escape":    tcell.KeyEscape,
	"up":        tcell.KeyUp,
	"down":      tcell.KeyDown,
	"left":      tcell.KeyLeft,
	"right":     tcell.KeyRight,
	"home":      tcell.KeyHome,
	"end":       tcell.KeyEnd,
	"pgup":      tcell.KeyPgUp,
	"pgdn":      tcell.KeyPgDn,
}

// ParseKey parses a key spec such as "Enter", "Ctrl+Z" or "x" into a
// tcell key event.
func ParseKey(spec string) (*tcell.EventKey, error) {
	if spec == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidKey)
	}
	// The last "+" that is not the final character separates modifiers, so
	// "Alt++" is Alt with a literal plus.
	var modSpec string
	base := spec
	if i := strings.LastIndex(spec[:len(spec)-1], "+"); i >= 0 {
		modSpec, base = spec[:i], spec[i+1:]
	}

	var mods tcell.ModMask
	if modSpec != "" {
		for _, m := range strings.Split(modSpec, "+") {
			switch strings.ToLower(m) {
			case "ctrl", "c":
				mods |= tcell.ModCtrl
			case "alt", "meta", "m":
				mods |= tcell.ModAlt
			case "shift", "s":
				mods |= tcell.ModShift
			default:
				return nil, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidKey, m, spec)
			}
		}
	}

	if k, ok := namedKeys[strings.ToLower(base)]; ok {
		return tcell.NewEventKey(k, 0, mods), nil
	}
	if utf8.RuneCountInString(base) != 1 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKey, spec)
	}
	r, _ := utf8.DecodeRuneInString(base)
	if mods&tcell.ModCtrl != 0 {
		lower := unicode.ToLower(r)
		if lower < 'a' || lower > 'z' {
			return nil, fmt.Errorf("%w: ctrl needs a letter in %q", ErrInvalidKey, spec)
		}
		return tcell.NewEventKey(tcell.KeyCtrlA+tcell.Key(lower-'a'), 0, mods), nil
	}
	return tcell.NewEventKey(tcell.KeyRune, r, mods), nil
}
