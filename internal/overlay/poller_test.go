package overlay_test

import (
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"streamtasks/internal/overlay"
	"streamtasks/internal/tasklist"
	"streamtasks/internal/testutil"
)

func TestPoller_Documents(t *testing.T) {
	tests := []struct {
		name  string
		setup func(fs *testutil.FakeFS)
		want  tasklist.Tasks
		warns int
	}{
		{name: "missing", setup: func(*testutil.FakeFS) {}, want: tasklist.Tasks{}},
		{
			name:  "valid",
			setup: func(fs *testutil.FakeFS) { fs.SetTasks(docPath, tasklist.Tasks{"a": {Task: "x"}}) },
			want:  tasklist.Tasks{"a": {Task: "x"}},
		},
		{
			name:  "malformed",
			setup: func(fs *testutil.FakeFS) { fs.SetFile(docPath, "{oops") },
			want:  overlay.DebugTasks,
			warns: 1,
		},
		{
			name:  "read error",
			setup: func(fs *testutil.FakeFS) { fs.ReadErr[docPath] = errors.New("permission denied") },
			want:  tasklist.Tasks{},
			warns: 1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fs := testutil.NewFakeFS()
			tc.setup(fs)
			logger := &testutil.RecordingLogger{}
			p := overlay.NewPoller(fs, docPath, time.Hour, nil, logger)

			if got := p.Refresh().Tasks; !reflect.DeepEqual(got, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
			if n := len(logger.Warnings()); n != tc.warns {
				t.Errorf("expected %d warnings, got %d", tc.warns, n)
			}
		})
	}
}

func TestPoller_NotifiesOnlyOnChange(t *testing.T) {
	fs := testutil.NewFakeFS()
	fs.SetTasks(docPath, tasklist.Tasks{"a": {Task: "x"}})
	p := overlay.NewPoller(fs, docPath, time.Hour, nil, &testutil.RecordingLogger{})
	p.Refresh()

	updates, unsubscribe := p.Subscribe()
	defer unsubscribe()

	p.Refresh()
	select {
	case snap := <-updates:
		t.Fatalf("unexpected update for unchanged document: %+v", snap)
	default:
	}

	fs.SetTasks(docPath, tasklist.Tasks{"a": {Task: "x", Done: true}})
	p.Refresh()
	select {
	case snap := <-updates:
		if !snap.Tasks["a"].Done {
			t.Errorf("expected done task in update, got %+v", snap)
		}
	default:
		t.Fatal("expected an update")
	}
}

func TestPoller_NeverWrites(t *testing.T) {
	fs := testutil.NewFakeFS()
	fs.SetFile(docPath, "{oops")
	p := overlay.NewPoller(fs, docPath, time.Hour, nil, &testutil.RecordingLogger{})

	p.Refresh()

	if got, _ := fs.File(docPath); got != "{oops" {
		t.Errorf("document changed to %q", got)
	}
}

func TestPoller_SlowReadDoesNotOverwriteNewerSnapshot(t *testing.T) {
	fs := testutil.NewFakeFS()
	fs.SetTasks(docPath, tasklist.Tasks{"a": {Task: "old"}})

	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	fs.AfterRead = func(string) {
		once.Do(func() {
			close(started)
			<-release
		})
	}
	p := overlay.NewPoller(fs, docPath, time.Hour, nil, &testutil.RecordingLogger{})

	// The first refresh reads "old" and stalls before publishing.
	slow := make(chan struct{})
	go func() {
		p.Refresh()
		close(slow)
	}()
	<-started

	fs.SetTasks(docPath, tasklist.Tasks{"a": {Task: "new"}})
	fresh := make(chan struct{})
	go func() {
		p.Refresh()
		close(fresh)
	}()

	time.Sleep(20 * time.Millisecond)
	close(release)
	<-slow
	<-fresh

	if got := p.Current().Tasks["a"].Task; got != "new" {
		t.Errorf("expected the newer document to win, got %q", got)
	}
}
