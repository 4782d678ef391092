package game

// Status is the lifecycle state of the game.
type Status string

const (
	// StatusNotStarted means no board has ever been installed.
	StatusNotStarted Status = "not_started"
	// StatusLoading means a setup is in flight.
	StatusLoading Status = "loading"
	// StatusReady means a board is installed and playable.
	StatusReady Status = "ready"
)
