package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"streamtasks/internal/tasklist"
)

// NoTasks is printed for an empty task list.
const NoTasks = "no tasks"

// Styles holds the terminal styles for the task list.
type Styles struct {
	Done lipgloss.Style
	Due  lipgloss.Style
	User lipgloss.Style
}

// DefaultStyles returns styles bound to renderer.
func DefaultStyles(renderer *lipgloss.Renderer) Styles {
	return Styles{
		Done: renderer.NewStyle().Foreground(lipgloss.Color("2")),
		Due:  renderer.NewStyle().Foreground(lipgloss.Color("3")),
		User: renderer.NewStyle().Bold(true),
	}
}

// Terminal writes the task list as lines of "[x] user - task" to w.
// Styling follows the color support of w.
func Terminal(w io.Writer, tasks tasklist.Tasks) {
	TerminalWithStyles(w, tasks, DefaultStyles(lipgloss.NewRenderer(w)))
}

// TerminalWithStyles is like Terminal with explicit styles.
func TerminalWithStyles(w io.Writer, tasks tasklist.Tasks, styles Styles) {
	items := Items(tasks)
	if len(items) == 0 {
		fmt.Fprintln(w, NoTasks)
		return
	}
	for _, item := range items {
		mark := styles.Due.Render("[ ]")
		if item.Done {
			mark = styles.Done.Render("[x]")
		}
		fmt.Fprintf(w, "%s %s - %s\n", mark, styles.User.Render(item.User), item.Task)
	}
}
