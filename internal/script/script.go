// Package script is the entry point the host invokes once per chat command.
package script

import (
	"github.com/google/uuid"

	"streamtasks/internal/commands"
	"streamtasks/internal/firebot"
	"streamtasks/internal/tasklist"
)

// Modules are the host facilities available to the script.
type Modules struct {
	// FS reads task list documents.
	FS tasklist.DocumentReader

	// Logger receives diagnostics.
	Logger commands.Logger
}

// Observer is told the outcome of every invocation.
type Observer interface {
	ObserveCommand(command string, outcome commands.Outcome, effects []firebot.Effect)
}

// Script runs task commands.
type Script struct {
	registry *commands.Registry
	modules  Modules
	observer Observer
}

// New creates a Script over registry. A nil registry uses commands.DefaultRegistry.
func New(registry *commands.Registry, modules Modules) *Script {
	if registry == nil {
		registry = commands.DefaultRegistry
	}
	if modules.Logger == nil {
		modules.Logger = nopLogger{}
	}
	return &Script{registry: registry, modules: modules}
}

// WithObserver sets an observer for command outcomes.
func (s *Script) WithObserver(o Observer) *Script {
	s.observer = o
	return s
}

// Run resolves and runs the command in req.
// It never fails: problems are logged and yield no effects.
func (s *Script) Run(req *firebot.RunRequest) firebot.ScriptReturnObject {
	id := uuid.NewString()
	s.modules.Logger.Debug("script invoked",
		"invocation", id,
		"command", req.Parameters.Command,
		"args", req.Args(),
	)

	// One store per invocation; nothing is cached between commands.
	store := tasklist.NewStore(s.modules.FS)
	effects, outcome := s.registry.Resolve(req, store, s.modules.Logger)

	chatter := req.Parameters.SendMessagesAs
	for i := range effects {
		if effects[i].IsChat() && effects[i].Chatter == "" {
			effects[i].Chatter = chatter
		}
	}

	s.modules.Logger.Debug("script finished", "invocation", id, "outcome", string(outcome), "effects", len(effects))
	if s.observer != nil {
		s.observer.ObserveCommand(req.Parameters.Command, outcome, effects)
	}

	return firebot.ScriptReturnObject{Success: true, Effects: effects}
}

type nopLogger struct{}

func (nopLogger) Debug(interface{}, ...interface{}) {}
func (nopLogger) Warn(interface{}, ...interface{})  {}
