package client

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"applytrack/internal/domain/grid"
)

// NewNotifier renders grid notices to the terminal, colored by level.
func NewNotifier(out io.Writer) grid.Notifier {
	success := color.New(color.FgGreen)
	info := color.New(color.FgCyan)
	fail := color.New(color.FgRed)

	return func(n grid.Notice) {
		prefix := ""
		if n.Row > 0 {
			prefix = fmt.Sprintf("row %d: ", n.Row)
		}

		switch n.Level {
		case grid.LevelSuccess:
			success.Fprintf(out, "✓ %s%s\n", prefix, n.Message)
		case grid.LevelError:
			fail.Fprintf(out, "✗ %s%s\n", prefix, n.Message)
		default:
			info.Fprintf(out, "• %s%s\n", prefix, n.Message)
		}
	}
}
