package tasklist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotObject is returned by Parse when the document is not a JSON object.
var ErrNotObject = errors.New("task list is not a JSON object")

// Parse decodes a task list document strictly.
// Entries that are not task records are dropped; anything else malformed is an error.
func Parse(data []byte) (Tasks, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Tasks{}, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotObject, err)
	}
	if raw == nil {
		// literal null
		return Tasks{}, nil
	}

	tasks := make(Tasks, len(raw))
	for user, entry := range raw {
		task, ok := decodeTask(entry)
		if !ok {
			continue
		}
		tasks[user] = task
	}
	return tasks, nil
}

// Decode is like Parse but never fails: a malformed document decodes to an empty list.
func Decode(data []byte) Tasks {
	tasks, err := Parse(data)
	if err != nil {
		return Tasks{}
	}
	return tasks
}

// Encode serializes tasks in the document format. A nil list encodes as "{}".
func Encode(tasks Tasks) string {
	if tasks == nil {
		tasks = Tasks{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		// Tasks only holds strings and bools.
		panic(err)
	}
	return string(data)
}

func decodeTask(entry json.RawMessage) (Task, bool) {
	entry = bytes.TrimSpace(entry)
	if len(entry) == 0 || entry[0] != '{' {
		return Task{}, false
	}
	var task Task
	if err := json.Unmarshal(entry, &task); err != nil {
		return Task{}, false
	}
	return task, true
}
