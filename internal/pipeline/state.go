package pipeline

// State is a pipeline run's position in fetch -> extract -> normalize -> persist.
type State int

// Pipeline states. Failed is absorbing and reachable from the first four.
const (
	Fetching State = iota
	Extracting
	Normalizing
	Persisting
	Done
	Failed
)

var stateNames = [...]string{
	Fetching:    "fetching",
	Extracting:  "extracting",
	Normalizing: "normalizing",
	Persisting:  "persisting",
	Done:        "done",
	Failed:      "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}

	return stateNames[s]
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == Done || s == Failed
}

// next returns the following state on success.
func (s State) next() State {
	if s.Terminal() {
		return s
	}

	return s + 1
}
