package input

import "fmt"

// Kind identifies the type of an input event.
type Kind uint8

const (
	Unidentified Kind = iota
	Key
	Up
	Down
	Left
	Right
	PageUp
	PageDown
	Home
	End
	Delete
	CursorPosition
	Resize
)

var kindNames = [...]string{
	Unidentified:   "Unidentified",
	Key:            "Key",
	Up:             "Up",
	Down:           "Down",
	Left:           "Left",
	Right:          "Right",
	PageUp:         "PageUp",
	PageDown:       "PageDown",
	Home:           "Home",
	End:            "End",
	Delete:         "Delete",
	CursorPosition: "CursorPosition",
	Resize:         "Resize",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Escape is the ESC byte. A lone Escape key press decodes to KeyOf(Escape, false).
const Escape = 0x1b

// Event is one decoded unit of terminal input.
//
// Byte and Ctrl are set for Key events: control bytes 0x01-0x1f arrive as the
// matching lowercase letter with Ctrl set. Row and Col are set for
// CursorPosition events and are 1-based, as the terminal reports them.
type Event struct {
	Kind Kind
	Byte byte
	Ctrl bool
	Row  int
	Col  int
}

// KeyOf returns the Key event for b.
func KeyOf(b byte, ctrl bool) Event {
	return Event{Kind: Key, Byte: b, Ctrl: ctrl}
}

// Ctrl returns the event produced by holding Ctrl and pressing letter.
func Ctrl(letter byte) Event {
	return KeyOf(letter, true)
}

// Of returns an event of kind k carrying no payload.
func Of(k Kind) Event {
	return Event{Kind: k}
}

func (e Event) String() string {
	switch e.Kind {
	case Key:
		switch {
		case e.Ctrl:
			return fmt.Sprintf("Key(Ctrl-%c)", e.Byte-0x20)
		case e.Byte == Escape:
			return "Key(Esc)"
		case e.Byte == 0x7f:
			return "Key(DEL)"
		}
		return fmt.Sprintf("Key(%q)", e.Byte)
	case CursorPosition:
		return fmt.Sprintf("CursorPosition(%d,%d)", e.Row, e.Col)
	}
	return e.Kind.String()
}
