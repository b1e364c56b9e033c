package host

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// NewLogger creates the application logger writing to w at the named level.
// Unknown levels fall back to info.
func NewLogger(w io.Writer, level string) *log.Logger {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "streamtasks",
		Level:  lvl,
	})
}
