package tasklist

import (
	"fmt"
	"sort"

	"streamtasks/internal/firebot"
)

// Store loads task lists on first use and keeps every change in memory.
// Once a path is cached the document is never read again; changes reach the
// document only through the effects returned by WriteFileEffects.
//
// A Store lives for a single script invocation and is not safe for concurrent use.
type Store struct {
	docs  DocumentReader
	cache map[string]Tasks
}

// NewStore creates a Store that reads documents through docs.
func NewStore(docs DocumentReader) *Store {
	return &Store{
		docs:  docs,
		cache: make(map[string]Tasks),
	}
}

// LoadData caches the document at path unless it is already cached.
// A missing or malformed document loads as an empty list.
func (s *Store) LoadData(path string) {
	if _, ok := s.cache[path]; ok {
		return
	}

	tasks := Tasks{}
	if s.docs != nil {
		if data, err := s.docs.ReadDocument(path); err == nil {
			tasks = Decode(data)
		}
	}
	s.cache[path] = tasks
}

// GetTasks returns a copy of the tasks at path. Changing the copy does not affect the Store.
func (s *Store) GetTasks(path string) Tasks {
	s.LoadData(path)
	return s.cache[path].Clone()
}

// SetTasks replaces the tasks at path with a copy of tasks.
// Nothing is written; use WriteFileEffects for that.
func (s *Store) SetTasks(path string, tasks Tasks) {
	s.cache[path] = tasks.Clone()
}

// WriteFileEffects returns one replace effect per cached path, ordered by path.
func (s *Store) WriteFileEffects() []firebot.Effect {
	paths := make([]string, 0, len(s.cache))
	for path := range s.cache {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	effects := make([]firebot.Effect, 0, len(paths))
	for _, path := range paths {
		effects = append(effects, firebot.ReplaceFile(path, Encode(s.cache[path])))
	}
	return effects
}

// AddTaskForUser sets user's task to text, replacing any task they had.
func (s *Store) AddTaskForUser(path, user, text string) []firebot.Effect {
	tasks := s.GetTasks(path)
	tasks[user] = Task{Task: text, Done: false}
	s.SetTasks(path, tasks)
	return s.withWrites(fmt.Sprintf("@%s your task has been added.", user))
}

// EditUserTask changes the text of user's task and keeps its status.
// A user without a task gets a new one, exactly as AddTaskForUser.
func (s *Store) EditUserTask(path, user, text string) []firebot.Effect {
	tasks := s.GetTasks(path)
	task, ok := tasks[user]
	if !ok {
		return s.AddTaskForUser(path, user, text)
	}
	task.Task = text
	tasks[user] = task
	s.SetTasks(path, tasks)
	return s.withWrites(fmt.Sprintf("@%s your task has been changed.", user))
}

// MarkUserTaskAsDone marks user's task as done.
func (s *Store) MarkUserTaskAsDone(path, user string) []firebot.Effect {
	return s.setDone(path, user, true, fmt.Sprintf("@%s your task is complete.", user))
}

// MarkUserTaskAsNotDone marks user's task as not done.
func (s *Store) MarkUserTaskAsNotDone(path, user string) []firebot.Effect {
	return s.setDone(path, user, false, fmt.Sprintf("@%s back at it again.", user))
}

// RemoveUserTask deletes user's task.
func (s *Store) RemoveUserTask(path, user string) []firebot.Effect {
	tasks := s.GetTasks(path)
	if _, ok := tasks[user]; !ok {
		return []firebot.Effect{firebot.Chat(fmt.Sprintf("@%s has no task.", user))}
	}
	delete(tasks, user)
	s.SetTasks(path, tasks)
	return s.withWrites(fmt.Sprintf("@%s your task has been removed.", user))
}

// RemoveAllTasks empties the list at path. Only the write-back is returned.
func (s *Store) RemoveAllTasks(path string) []firebot.Effect {
	s.SetTasks(path, Tasks{})
	return s.WriteFileEffects()
}

func (s *Store) setDone(path, user string, done bool, message string) []firebot.Effect {
	tasks := s.GetTasks(path)
	task, ok := tasks[user]
	if !ok {
		return []firebot.Effect{firebot.Chat(fmt.Sprintf("@%s you have no task.", user))}
	}
	task.Done = done
	tasks[user] = task
	s.SetTasks(path, tasks)
	return s.withWrites(message)
}

// withWrites returns the chat message followed by the write-back for every cached path.
func (s *Store) withWrites(message string) []firebot.Effect {
	return append([]firebot.Effect{firebot.Chat(message)}, s.WriteFileEffects()...)
}
