package grid

// Level classifies a transient user-visible notice.
type Level int

const (
	LevelSuccess Level = iota
	LevelInfo
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelInfo:
		return "info"
	case LevelError:
		return "error"
	}
	return "unknown"
}

// Notice is a non-blocking notification emitted by the engine after an
// operation settles. Row is the 1-based display position, 0 when the
// notice is not tied to a row.
type Notice struct {
	Level   Level
	Message string
	Row     int
}

// Notifier receives notices. The engine never blocks on it; presentation
// decides how (and how long) to show them.
type Notifier func(Notice)
