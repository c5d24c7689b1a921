package cover

// Mode is the kind of pointer interaction in progress.
type Mode int

const (
	// ModeIdle means no button is held on the cover
	ModeIdle Mode = iota
	// ModeMoving means the cover follows the pointer
	ModeMoving
	// ModeResizing means one corner follows the pointer
	ModeResizing
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeMoving:
		return "moving"
	case ModeResizing:
		return "resizing"
	default:
		return "unknown"
	}
}

// Session is the state between a primary press and its release.
//
// Corner is only meaningful while resizing and Anchor only while moving;
// the constructors below are the only way the controller builds sessions.
type Session struct {
	Mode   Mode
	Corner Corner
	Anchor Point // press position relative to the window origin
}

func idleSession() Session {
	return Session{Mode: ModeIdle}
}

func movingSession(anchor Point) Session {
	return Session{Mode: ModeMoving, Anchor: anchor}
}

func resizingSession(c Corner) Session {
	return Session{Mode: ModeResizing, Corner: c}
}

// Active reports whether a move or resize is in progress.
func (s Session) Active() bool {
	return s.Mode != ModeIdle
}

func (s Session) String() string {
	switch s.Mode {
	case ModeResizing:
		return "resizing(" + s.Corner.String() + ")"
	default:
		return s.Mode.String()
	}
}
