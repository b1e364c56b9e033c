package commands

import (
	"strings"

	"streamtasks/internal/firebot"
)

// CommandSender parses the username of the chat message sender.
func CommandSender(req *firebot.RunRequest) (Args, bool) {
	sender := req.Trigger.Metadata.Username
	if sender == "" {
		return Args{}, false
	}
	return Args{Sender: sender}, true
}

// ArgAsUser returns a parser that reads a username from word index of the chat command.
func ArgAsUser(index int) Parser {
	return func(req *firebot.RunRequest) (Args, bool) {
		words := req.Args()
		if index < 0 || index >= len(words) {
			return Args{}, false
		}
		user := CleanUserName(words[index])
		if user == "" {
			return Args{}, false
		}
		return Args{User: user}, true
	}
}

// CleanUserName trims whitespace and a single leading "@" mention marker.
func CleanUserName(raw string) string {
	raw = strings.TrimSpace(raw)
	return strings.TrimPrefix(raw, "@")
}

// TaskText joins the chat command words after the command keyword.
func TaskText(req *firebot.RunRequest) string {
	words := req.Args()
	if len(words) < 2 {
		return ""
	}
	return strings.Join(words[1:], " ")
}
