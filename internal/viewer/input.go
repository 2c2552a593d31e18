package viewer

// Action is a navigation or decision request from the host.
type Action int

const (
	ActionNone Action = iota
	ActionScrollUp
	ActionScrollDown
	ActionPageUp
	ActionPageDown
	ActionTop
	ActionBottom
	ActionScrollLeft
	ActionScrollRight
	ActionFocusNext
	ActionFocusPrev
	ActionActivate
	ActionConfirm
	ActionCancel
	ActionWheel
	ActionClick
)

var actionNames = map[Action]string{
	ActionNone:        "none",
	ActionScrollUp:    "scroll_up",
	ActionScrollDown:  "scroll_down",
	ActionPageUp:      "page_up",
	ActionPageDown:    "page_down",
	ActionTop:         "top",
	ActionBottom:      "bottom",
	ActionScrollLeft:  "scroll_left",
	ActionScrollRight: "scroll_right",
	ActionFocusNext:   "focus_next",
	ActionFocusPrev:   "focus_prev",
	ActionActivate:    "activate",
	ActionConfirm:     "confirm",
	ActionCancel:      "cancel",
	ActionWheel:       "wheel",
	ActionClick:       "click",
}

// String returns the action name.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// Moves reports whether a moves the viewport.
func (a Action) Moves() bool {
	switch a {
	case ActionScrollUp, ActionScrollDown, ActionPageUp, ActionPageDown,
		ActionTop, ActionBottom, ActionWheel:
		return true
	default:
		return false
	}
}

// HorizontalStep is the number of columns one left/right action scrolls.
const HorizontalStep = 8

// Input is one host event translated into an Action.
type Input struct {
	Action Action
	// Lines is the number of wheel notches for ActionWheel, positive
	// scrolling down. For ActionScrollUp and ActionScrollDown it overrides
	// the default of one line when positive.
	Lines int
	// X and Y are the cell coordinates of an ActionClick.
	X, Y int
}

// Key returns an Input for a non-positional action.
func Key(a Action) Input {
	return Input{Action: a}
}

// Wheel returns an Input for n wheel notches.
func Wheel(n int) Input {
	return Input{Action: ActionWheel, Lines: n}
}

// Click returns an Input for a click at column x, row y.
func Click(x, y int) Input {
	return Input{Action: ActionClick, X: x, Y: y}
}
