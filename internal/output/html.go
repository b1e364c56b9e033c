package output

import (
	"bytes"
	"html/template"
	"io"

	"streamtasks/internal/tasklist"
)

var listTemplate = template.Must(template.New("list").Parse(
	`<div class="list">` +
		`{{range .}}<li class="taskItem"><img class="taskIcon" src="{{.Icon}}" />` +
		`<span class="username">{{.User}}</span> - <span class="taskText">{{.Task}}</span></li>{{end}}` +
		`</div>`))

// HTML writes the task list as the overlay's list fragment.
func HTML(w io.Writer, tasks tasklist.Tasks) error {
	return listTemplate.Execute(w, Items(tasks))
}

// HTMLString is like HTML but returns the fragment.
func HTMLString(tasks tasklist.Tasks) string {
	var buf bytes.Buffer
	// Executing a parsed template into a buffer cannot fail for these fields.
	_ = HTML(&buf, tasks)
	return buf.String()
}
