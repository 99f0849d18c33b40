package editor

import "kilo/internal/input"

// Action is a named editor command.
type Action uint8

const (
	// ActionNone drops the event without side effects.
	ActionNone Action = iota
	// ActionNoop consumes the key and does nothing else.
	ActionNoop
	ActionInsert
	ActionInsertTab
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionLineStart
	ActionLineEnd
	ActionPageUp
	ActionPageDown
	ActionDeleteForward
	ActionDeleteBackward
	ActionNewline
	ActionSave
	ActionQuit
)

// Keymap binds decoded input events to actions.
type Keymap map[input.Event]Action

// DefaultKeymap returns the standard bindings. The arrow keys also answer to
// their emacs letters, Ctrl-P, Ctrl-N, Ctrl-B and Ctrl-F.
func DefaultKeymap() Keymap {
	return Keymap{
		input.Of(input.Up):    ActionMoveUp,
		input.Of(input.Down):  ActionMoveDown,
		input.Of(input.Left):  ActionMoveLeft,
		input.Of(input.Right): ActionMoveRight,
		input.Ctrl('p'):       ActionMoveUp,
		input.Ctrl('n'):       ActionMoveDown,
		input.Ctrl('b'):       ActionMoveLeft,
		input.Ctrl('f'):       ActionMoveRight,

		input.Of(input.Home): ActionLineStart,
		input.Ctrl('a'):      ActionLineStart,
		input.Of(input.End):  ActionLineEnd,
		input.Ctrl('e'):      ActionLineEnd,

		input.Of(input.PageUp):   ActionPageUp,
		input.Of(input.PageDown): ActionPageDown,

		input.Of(input.Delete):   ActionDeleteForward,
		input.Ctrl('d'):          ActionDeleteForward,
		input.Ctrl('h'):          ActionDeleteBackward,
		input.KeyOf(0x7f, false): ActionDeleteBackward,

		input.Ctrl('m'): ActionNewline,
		input.Ctrl('i'): ActionInsertTab,
		input.Ctrl('s'): ActionSave,
		input.Ctrl('q'): ActionQuit,

		input.KeyOf(input.Escape, false): ActionNoop,
		input.Ctrl('l'):                  ActionNoop,
	}
}

// Lookup resolves ev. Unbound plain keys insert themselves, unbound control
// keys are consumed without effect, and every other unbound event is dropped.
func (k Keymap) Lookup(ev input.Event) Action {
	if a, ok := k[ev]; ok {
		return a
	}
	if ev.Kind != input.Key {
		return ActionNone
	}
	if ev.Ctrl {
		return ActionNoop
	}
	return ActionInsert
}
