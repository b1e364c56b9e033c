package overlay_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"streamtasks/internal/firebot"
	"streamtasks/internal/host"
	"streamtasks/internal/observability"
	"streamtasks/internal/overlay"
	"streamtasks/internal/script"
	"streamtasks/internal/tasklist"
	"streamtasks/internal/testutil"
)

const docPath = "tasklist.json"

type fixture struct {
	fs     *testutil.FakeFS
	chat   *bytes.Buffer
	poller *overlay.Poller
	ts     *httptest.Server
}

func newFixture(t *testing.T, initial tasklist.Tasks) *fixture {
	t.Helper()

	fs := testutil.NewFakeFS()
	if initial != nil {
		fs.SetTasks(docPath, initial)
	}
	logger := &testutil.RecordingLogger{}
	metrics := observability.NewMetrics("test")
	chat := &bytes.Buffer{}

	poller := overlay.NewPoller(fs, docPath, time.Hour, metrics, logger)
	s := script.New(nil, script.Modules{FS: fs, Logger: logger}).WithObserver(metrics)
	srv := overlay.New(
		overlay.Options{Defaults: firebot.Params{Filepath: docPath, SendMessagesAs: "Streamer"}},
		poller, s, host.NewExecutor(fs, chat), metrics, logger,
	)

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return &fixture{fs: fs, chat: chat, poller: poller, ts: ts}
}

func (f *fixture) get(t *testing.T, path string) (int, string) {
	t.Helper()
	res, err := http.Get(f.ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)
	return res.StatusCode, string(body)
}

func (f *fixture) run(t *testing.T, req firebot.RunRequest) (int, firebot.ScriptReturnObject) {
	t.Helper()
	body, _ := json.Marshal(req)
	res, err := http.Post(f.ts.URL+"/v1/run", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /v1/run: %v", err)
	}
	defer res.Body.Close()
	var result firebot.ScriptReturnObject
	_ = json.NewDecoder(res.Body).Decode(&result)
	return res.StatusCode, result
}

func addRequest(user string, words ...string) firebot.RunRequest {
	return firebot.RunRequest{
		Parameters: firebot.Params{Command: "add"},
		Trigger: firebot.Trigger{
			Type: "command",
			Metadata: firebot.Metadata{
				Username:    user,
				UserCommand: &firebot.UserCommand{Trigger: "!task", Args: append([]string{"add"}, words...)},
			},
		},
	}
}

func TestTasksJSON(t *testing.T) {
	f := newFixture(t, tasklist.Tasks{"alice": {Task: "buy milk"}})

	status, body := f.get(t, "/tasklist.json")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if got := tasklist.Decode([]byte(body)); !reflect.DeepEqual(got, tasklist.Tasks{"alice": {Task: "buy milk"}}) {
		t.Errorf("unexpected tasks %v", got)
	}
}

func TestTasksHTML(t *testing.T) {
	f := newFixture(t, tasklist.Tasks{"alice": {Task: "buy milk", Done: true}})

	status, body := f.get(t, "/tasklist.html")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if !strings.Contains(body, `<span class="username">alice</span>`) || !strings.Contains(body, "checkmarkDone.png") {
		t.Errorf("unexpected fragment %q", body)
	}
}

func TestStaticPage(t *testing.T) {
	f := newFixture(t, nil)

	status, body := f.get(t, "/")
	if status != http.StatusOK || !strings.Contains(body, `<div id="root">`) {
		t.Errorf("expected overlay page, got %d %q", status, body)
	}
	if status, _ := f.get(t, "/checkmarkDue.png"); status != http.StatusOK {
		t.Errorf("expected icon, got %d", status)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	f := newFixture(t, nil)

	if status, body := f.get(t, "/healthz"); status != http.StatusOK || !strings.Contains(body, `"ok"`) {
		t.Errorf("unexpected health response %d %q", status, body)
	}

	f.run(t, addRequest("alice", "buy", "milk"))
	_, body := f.get(t, "/metrics")
	if !strings.Contains(body, `test_commands_total{command="add",outcome="ok"} 1`) {
		t.Errorf("expected command counter in metrics:\n%s", body)
	}
}

func TestRun_ExecutesEffects(t *testing.T) {
	f := newFixture(t, nil)

	status, result := f.run(t, addRequest("alice", "buy", "milk"))
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if !result.Success || len(result.Effects) != 2 {
		t.Fatalf("unexpected result %+v", result)
	}
	if got := f.chat.String(); got != "[Streamer] @alice your task has been added.\n" {
		t.Errorf("unexpected chat %q", got)
	}
	if got := f.fs.Tasks(docPath); !reflect.DeepEqual(got, tasklist.Tasks{"alice": {Task: "buy milk"}}) {
		t.Errorf("unexpected document %v", got)
	}
	if got := f.poller.Current().Tasks; !reflect.DeepEqual(got, tasklist.Tasks{"alice": {Task: "buy milk"}}) {
		t.Errorf("expected overlay refreshed, got %v", got)
	}
}

func TestRun_Rejected(t *testing.T) {
	f := newFixture(t, nil)

	status, result := f.run(t, addRequest("", "buy", "milk"))
	if status != http.StatusOK || !result.Success || len(result.Effects) != 0 {
		t.Errorf("expected success with no effects, got %d %+v", status, result)
	}
	if len(f.fs.Paths()) != 0 {
		t.Errorf("expected no writes, got %v", f.fs.Paths())
	}
}

func TestRun_BadRequest(t *testing.T) {
	f := newFixture(t, nil)

	for _, body := range []string{"", "{", `{"parameters":{}}`} {
		res, err := http.Post(f.ts.URL+"/v1/run", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatal(err)
		}
		res.Body.Close()
		if res.StatusCode != http.StatusBadRequest {
			t.Errorf("body %q: expected 400, got %d", body, res.StatusCode)
		}
	}
}

// post sends body to /v1/run with the given headers and returns the status.
func (f *fixture) post(t *testing.T, body string, headers map[string]string) int {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, f.ts.URL+"/v1/run", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST /v1/run: %v", err)
	}
	res.Body.Close()
	return res.StatusCode
}

func TestRun_RejectsUnsafeRequests(t *testing.T) {
	initial := tasklist.Tasks{"alice": {Task: "buy milk"}}
	clearAll := `{"parameters":{"command":"clearAll"}}`

	tests := []struct {
		name    string
		body    string
		headers map[string]string
		want    int
	}{
		{
			name:    "text/plain body",
			body:    clearAll,
			headers: map[string]string{"Content-Type": "text/plain"},
			want:    http.StatusUnsupportedMediaType,
		},
		{
			name:    "no content type",
			body:    clearAll,
			headers: map[string]string{},
			want:    http.StatusUnsupportedMediaType,
		},
		{
			name:    "foreign origin",
			body:    clearAll,
			headers: map[string]string{"Content-Type": "application/json", "Origin": "https://evil.example"},
			want:    http.StatusForbidden,
		},
		{
			name:    "null origin",
			body:    clearAll,
			headers: map[string]string{"Content-Type": "application/json", "Origin": "null"},
			want:    http.StatusForbidden,
		},
		{
			name:    "other file",
			body:    `{"parameters":{"command":"clearAll","filepath":"/home/streamer/.ssh/authorized_keys"}}`,
			headers: map[string]string{"Content-Type": "application/json"},
			want:    http.StatusForbidden,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, initial)

			if got := f.post(t, tc.body, tc.headers); got != tc.want {
				t.Errorf("expected %d, got %d", tc.want, got)
			}
			if got := f.fs.Paths(); !reflect.DeepEqual(got, []string{docPath}) {
				t.Errorf("expected no new files, got %v", got)
			}
			if got := f.fs.Tasks(docPath); !reflect.DeepEqual(got, initial) {
				t.Errorf("expected document untouched, got %v", got)
			}
		})
	}
}

func TestRun_AllowsSameOrigin(t *testing.T) {
	f := newFixture(t, tasklist.Tasks{"alice": {Task: "buy milk"}})

	body := `{"parameters":{"command":"clearAll","filepath":"` + docPath + `"}}`
	headers := map[string]string{"Content-Type": "application/json; charset=utf-8", "Origin": f.ts.URL}
	if got := f.post(t, body, headers); got != http.StatusOK {
		t.Fatalf("expected 200, got %d", got)
	}
	if got := f.fs.Tasks(docPath); len(got) != 0 {
		t.Errorf("expected cleared document, got %v", got)
	}
}

func TestWebSocket_RejectsForeignOrigin(t *testing.T) {
	f := newFixture(t, nil)

	url := "ws" + strings.TrimPrefix(f.ts.URL, "http") + "/ws"
	_, res, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": []string{"https://evil.example"}})
	if err == nil {
		t.Fatal("expected handshake to fail")
	}
	if res == nil || res.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403, got %v", res)
	}

	conn, _, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": []string{f.ts.URL}})
	if err != nil {
		t.Fatalf("same-origin dial: %v", err)
	}
	conn.Close()
}

func TestWebSocket_PushesChanges(t *testing.T) {
	f := newFixture(t, tasklist.Tasks{"alice": {Task: "buy milk"}})

	url := "ws" + strings.TrimPrefix(f.ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var snap overlay.Snapshot
	if err := conn.ReadJSON(&snap); err != nil {
		t.Fatalf("read initial snapshot: %v", err)
	}
	if _, ok := snap.Tasks["alice"]; !ok {
		t.Fatalf("unexpected initial snapshot %+v", snap)
	}

	f.run(t, addRequest("bob", "walk", "dog"))

	if err := conn.ReadJSON(&snap); err != nil {
		t.Fatalf("read update: %v", err)
	}
	if snap.Tasks["bob"].Task != "walk dog" || !strings.Contains(snap.HTML, "walk dog") {
		t.Errorf("unexpected update %+v", snap)
	}
}
