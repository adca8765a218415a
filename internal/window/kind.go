package window

// Kind is the kind of top-level surface.
type Kind int

const (
	KindLogin Kind = iota
	KindMain
	// KindGame is the dynamic kind loading external content.
	KindGame
)

const (
	LoginLabel = "login"
	MainLabel  = "main"
)

func (k Kind) String() string {
	switch k {
	case KindLogin:
		return "login"
	case KindMain:
		return "main"
	case KindGame:
		return "game"
	default:
		return "unknown"
	}
}

// Reserved reports whether at most one live surface of this kind may exist.
func (k Kind) Reserved() bool {
	return k == KindLogin || k == KindMain
}

// Label is the fixed identifier of a reserved kind, empty otherwise.
func (k Kind) Label() string {
	switch k {
	case KindLogin:
		return LoginLabel
	case KindMain:
		return MainLabel
	default:
		return ""
	}
}

// IsReservedLabel reports whether label belongs to the login or main window.
func IsReservedLabel(label string) bool {
	return label == LoginLabel || label == MainLabel
}

// counterpart is the reserved kind that is retired when k opens.
func (k Kind) counterpart() Kind {
	if k == KindLogin {
		return KindMain
	}
	return KindLogin
}

// State summarizes which reserved surfaces are live.
type State int

const (
	StateNoneOpen State = iota
	StateLoginOpen
	StateMainOpen
	// StateHandoff is the transient state where both reserved surfaces are
	// live because a close has not happened (or failed).
	StateHandoff
)

func (s State) String() string {
	switch s {
	case StateLoginOpen:
		return "login_open"
	case StateMainOpen:
		return "main_open"
	case StateHandoff:
		return "handoff"
	default:
		return "none_open"
	}
}
