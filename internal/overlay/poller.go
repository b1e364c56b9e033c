package overlay

import (
	"context"
	"errors"
	"io/fs"
	"sync"
	"time"

	"streamtasks/internal/observability"
	"streamtasks/internal/output"
	"streamtasks/internal/tasklist"
)

// DebugTasks is shown in place of a document that cannot be parsed.
var DebugTasks = tasklist.Tasks{"debugger": {Task: "unbreak task list", Done: false}}

// Snapshot is the rendered state of the document at one point in time.
type Snapshot struct {
	Tasks tasklist.Tasks `json:"tasks"`
	HTML  string         `json:"html"`
}

// Poller rereads the task list document on an interval and tells subscribers when
// the rendered list changes. It never writes the document.
type Poller struct {
	docs     tasklist.DocumentReader
	path     string
	interval time.Duration
	metrics  *observability.Metrics
	logger   Logger

	// refreshMu orders read and publish so a slow read never overwrites a newer snapshot.
	refreshMu sync.Mutex

	mu      sync.RWMutex
	current Snapshot
	loaded  bool
	subs    map[chan Snapshot]struct{}
}

// NewPoller creates a Poller for the document at path.
func NewPoller(docs tasklist.DocumentReader, path string, interval time.Duration, metrics *observability.Metrics, logger Logger) *Poller {
	return &Poller{
		docs:     docs,
		path:     path,
		interval: interval,
		metrics:  metrics,
		logger:   logger,
		subs:     make(map[chan Snapshot]struct{}),
	}
}

// Run refreshes until ctx is done.
func (p *Poller) Run(ctx context.Context) {
	p.Refresh()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Refresh()
		}
	}
}

// Refresh reads the document now and notifies subscribers if the list changed.
func (p *Poller) Refresh() Snapshot {
	p.refreshMu.Lock()
	defer p.refreshMu.Unlock()

	tasks := p.read()
	snap := Snapshot{Tasks: tasks, HTML: output.HTMLString(tasks)}

	p.mu.Lock()
	changed := !p.loaded || snap.HTML != p.current.HTML
	p.current = snap
	p.loaded = true
	var subs []chan Snapshot
	if changed {
		subs = make([]chan Snapshot, 0, len(p.subs))
		for ch := range p.subs {
			subs = append(subs, ch)
		}
	}
	p.mu.Unlock()

	for _, ch := range subs {
		// Subscribers only care about the latest state; drop a stale pending one.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
	return snap
}

// Current returns the latest snapshot, reading the document if nothing has been read yet.
func (p *Poller) Current() Snapshot {
	p.mu.RLock()
	snap, loaded := p.current, p.loaded
	p.mu.RUnlock()
	if !loaded {
		return p.Refresh()
	}
	return snap
}

// Subscribe returns a channel receiving each changed snapshot and a function to unsubscribe.
func (p *Poller) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)
	p.mu.Lock()
	p.subs[ch] = struct{}{}
	p.mu.Unlock()

	return ch, func() {
		p.mu.Lock()
		delete(p.subs, ch)
		p.mu.Unlock()
	}
}

func (p *Poller) read() tasklist.Tasks {
	data, err := p.docs.ReadDocument(p.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			p.observeRead("missing")
			return tasklist.Tasks{}
		}
		p.observeRead("error")
		p.logger.Warn("failed to read task list", "path", p.path, "err", err)
		return tasklist.Tasks{}
	}

	tasks, err := tasklist.Parse(data)
	if err != nil {
		p.observeRead("malformed")
		p.logger.Warn("error parsing task list", "path", p.path, "err", err)
		return DebugTasks.Clone()
	}
	p.observeRead("ok")
	return tasks
}

func (p *Poller) observeRead(result string) {
	if p.metrics != nil {
		p.metrics.DocumentReads.WithLabelValues(result).Inc()
	}
}
