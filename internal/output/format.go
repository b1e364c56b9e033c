// Package output renders task lists for the overlay and the terminal.
package output

import (
	"strings"

	"streamtasks/internal/tasklist"
)

const (
	// InvalidTask replaces a task with no text.
	InvalidTask = "Invalid task"

	// IconDone and IconDue are the overlay images for a task's status.
	IconDone = "checkmarkDone.png"
	IconDue  = "checkmarkDue.png"
)

// Item is one rendered line of the task list.
type Item struct {
	User string `json:"user"`
	Task string `json:"task"`
	Done bool   `json:"done"`
}

// Icon returns the overlay image for the item's status.
func (i Item) Icon() string {
	if i.Done {
		return IconDone
	}
	return IconDue
}

// Items returns the task list as display items ordered by username.
func Items(tasks tasklist.Tasks) []Item {
	users := tasks.Users()
	items := make([]Item, 0, len(users))
	for _, user := range users {
		t := tasks[user]
		items = append(items, Item{
			User: user,
			Task: normalizeTask(t.Task),
			Done: t.Done,
		})
	}
	return items
}

// normalizeTask normalizes task text for display.
// - Newlines are replaced with spaces
// - Empty or whitespace-only text becomes InvalidTask
func normalizeTask(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")

	if strings.TrimSpace(text) == "" {
		return InvalidTask
	}
	return text
}
