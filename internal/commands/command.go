// Package commands resolves task commands to their handlers.
package commands

import (
	"streamtasks/internal/firebot"
	"streamtasks/internal/tasklist"
)

// Command names understood by the script.
const (
	Main      = "main"
	Add       = "add"
	Edit      = "edit"
	Done      = "done"
	Undo      = "undo"
	Remove    = "remove"
	ClearAll  = "clearAll"
	ClearUser = "clearUser"
)

// Args holds the values a Parser pulled out of a run request.
type Args struct {
	// Sender is the user who sent the chat command.
	Sender string

	// User is a username given as a chat command argument.
	User string
}

// Parser extracts the arguments a handler needs.
// It returns false when the command cannot run.
type Parser func(req *firebot.RunRequest) (Args, bool)

// Handler performs a command against the store and returns the effects for the host.
type Handler func(req *firebot.RunRequest, args Args, store *tasklist.Store) []firebot.Effect

// Descriptor links a command name to its handler and optional parser.
type Descriptor struct {
	Name    string
	Parser  Parser
	Handler Handler
}

// Logger receives diagnostics. *log.Logger from charmbracelet/log satisfies it.
type Logger interface {
	Debug(msg interface{}, keyvals ...interface{})
	Warn(msg interface{}, keyvals ...interface{})
}
