package firebot

const (
	// ChatEffect sends a chat message.
	ChatEffect = "firebot:chat"

	// FileWriterEffect writes text to a file.
	FileWriterEffect = "firebot:filewriter"

	// WriteModeReplace replaces the file contents.
	WriteModeReplace = "replace"
)

// Effect is a declarative instruction the host executes on the script's behalf.
// Type selects which of the remaining fields are meaningful.
type Effect struct {
	Type string `json:"type"`

	// Chat effects.
	Message string `json:"message,omitempty"`
	Chatter string `json:"chatter,omitempty"`

	// File writer effects.
	Filepath  string `json:"filepath,omitempty"`
	WriteMode string `json:"writeMode,omitempty"`
	Text      string `json:"text,omitempty"`
}

// Chat returns a chat message effect.
func Chat(message string) Effect {
	return Effect{Type: ChatEffect, Message: message}
}

// ReplaceFile returns a file writer effect that replaces the contents of path with text.
func ReplaceFile(path, text string) Effect {
	return Effect{
		Type:      FileWriterEffect,
		Filepath:  path,
		WriteMode: WriteModeReplace,
		Text:      text,
	}
}

// IsChat reports whether e is a chat message effect.
func (e Effect) IsChat() bool { return e.Type == ChatEffect }

// IsFileWrite reports whether e is a file writer effect.
func (e Effect) IsFileWrite() bool { return e.Type == FileWriterEffect }
