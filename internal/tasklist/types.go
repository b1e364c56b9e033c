// Package tasklist holds per-user tasks loaded from the task list JSON document.
package tasklist

import (
	"maps"
	"sort"
)

// Task is a single user's task.
type Task struct {
	Task string `json:"task"`
	Done bool   `json:"done"`
}

// Tasks maps a username to that user's task. Usernames are case-sensitive.
type Tasks map[string]Task

// Clone returns an independent copy of t. The copy is never nil.
func (t Tasks) Clone() Tasks {
	if t == nil {
		return Tasks{}
	}
	return maps.Clone(t)
}

// Users returns the usernames in t, sorted.
func (t Tasks) Users() []string {
	users := make([]string, 0, len(t))
	for user := range t {
		users = append(users, user)
	}
	sort.Strings(users)
	return users
}

// DocumentReader reads the raw contents of a task list document.
// A missing document is reported as an error and treated as an empty list.
type DocumentReader interface {
	ReadDocument(path string) ([]byte, error)
}
