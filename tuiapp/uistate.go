package tuiapp

type uiState int

const (
	replayPage uiState = iota // graph and flight table
	helpPage                  // key bindings
)
