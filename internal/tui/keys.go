package tui

// mode is the current input mode; each has its own key handling.
type mode int

const (
	modeList   mode = iota // navigating the list
	modeAdd                // typing a new task
	modeEdit               // inline edit of the selected task
	modeSearch             // typing the search query
)

func (m mode) String() string {
	switch m {
	case modeAdd:
		return "add"
	case modeEdit:
		return "edit"
	case modeSearch:
		return "search"
	default:
		return "list"
	}
}

var helpByMode = map[mode]string{
	modeList:   "a add • space toggle • e edit • d delete • c clear done • s status • f category • / search • t theme • q quit",
	modeAdd:    "enter save • tab category • shift+tab priority • esc back",
	modeEdit:   "enter save • esc cancel • ↑/↓ save and move",
	modeSearch: "enter keep • esc clear",
}
