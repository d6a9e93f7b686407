package dragdrop

import (
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger returns a logger suitable for LogDelegate. Timestamps are
// formatted as "HH:MM:SS.ms".
func NewLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          "dragdrop",
	})
}

// LogDelegate reports drag lifecycle events to a logger. Begin and end are
// logged at info level, every move at debug level.
type LogDelegate struct {
	Logger *log.Logger
	// Next, if set, receives every event after it has been logged.
	Next Delegate

	moves int
}

func (d *LogDelegate) DragBegan() {
	d.moves = 0
	d.Logger.Info("drag began")
	if d.Next != nil {
		d.Next.DragBegan()
	}
}

func (d *LogDelegate) Dragging(up bool, maxY, minY float32) {
	d.moves++
	direction := "down"
	if up {
		direction = "up"
	}
	d.Logger.Debug("dragging", "direction", direction, "minY", minY, "maxY", maxY)
	if d.Next != nil {
		d.Next.Dragging(up, maxY, minY)
	}
}

func (d *LogDelegate) DragEnded() {
	d.Logger.Info("drag ended", "moves", d.moves)
	if d.Next != nil {
		d.Next.DragEnded()
	}
}
