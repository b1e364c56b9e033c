package commands

import (
	"fmt"
	"sync"

	"streamtasks/internal/firebot"
	"streamtasks/internal/tasklist"
)

// Outcome classifies how a command resolution ended.
type Outcome string

const (
	// OutcomeOK means a handler ran.
	OutcomeOK Outcome = "ok"

	// OutcomeUnhandled means no descriptor matched the command.
	OutcomeUnhandled Outcome = "unhandled"

	// OutcomeRejected means the parser could not extract the arguments.
	OutcomeRejected Outcome = "rejected"
)

// Warnings logged by Resolve. The command name is attached as the "command" key.
const (
	WarnUnhandled = "Unhandled command"
	WarnRejected  = "Command could not be run"
)

// Registry holds command descriptors in registration order.
type Registry struct {
	mu    sync.RWMutex
	descs []Descriptor
	index map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		index: make(map[string]int),
	}
}

// Register adds a descriptor to the registry.
// Returns an error if the name is empty, already registered, or has no handler.
func (r *Registry) Register(d Descriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d.Name == "" {
		return fmt.Errorf("command name required")
	}
	if d.Handler == nil {
		return fmt.Errorf("command %s has no handler", d.Name)
	}
	if _, exists := r.index[d.Name]; exists {
		return fmt.Errorf("command already registered: %s", d.Name)
	}

	r.index[d.Name] = len(r.descs)
	r.descs = append(r.descs, d)
	return nil
}

// Find looks up a descriptor by exact name.
func (r *Registry) Find(name string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.index[name]
	if !ok {
		return Descriptor{}, false
	}
	return r.descs[i], true
}

// Names returns the registered command names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.descs))
	for i, d := range r.descs {
		names[i] = d.Name
	}
	return names
}

// Resolve runs the handler registered for the request's command.
// Unknown commands and rejected arguments are logged as warnings and produce no effects.
// store must be fresh for this request.
func (r *Registry) Resolve(req *firebot.RunRequest, store *tasklist.Store, logger Logger) ([]firebot.Effect, Outcome) {
	name := req.Parameters.Command

	d, ok := r.Find(name)
	if !ok {
		logger.Warn(WarnUnhandled, "command", name)
		return []firebot.Effect{}, OutcomeUnhandled
	}

	var args Args
	if d.Parser != nil {
		args, ok = d.Parser(req)
		if !ok {
			logger.Warn(WarnRejected, "command", name)
			return []firebot.Effect{}, OutcomeRejected
		}
	}

	logger.Debug("running command", "command", name, "sender", args.Sender, "user", args.User)
	return d.Handler(req, args, store), OutcomeOK
}

// DefaultRegistry holds the task commands.
var DefaultRegistry = NewRegistry()

// Register adds a descriptor to the default registry.
func Register(d Descriptor) {
	if err := DefaultRegistry.Register(d); err != nil {
		panic(err)
	}
}
