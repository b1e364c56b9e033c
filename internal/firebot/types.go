// Package firebot defines the shapes exchanged with the Firebot custom script host.
package firebot

// Params are the script parameters configured on the host for one command.
type Params struct {
	// Command is the task action this invocation should run.
	Command string `json:"command"`

	// CommandHelpText is the help text shown in chat.
	CommandHelpText string `json:"commandHelpText"`

	// Filepath is the JSON file the task list is saved to.
	Filepath string `json:"filepath"`

	// SendMessagesAs selects the chat account ("Streamer" or "Bot").
	SendMessagesAs string `json:"sendMessagesAs"`
}

// UserCommand is the chat command that fired the trigger.
// Args[0] is the command keyword itself.
type UserCommand struct {
	Trigger string   `json:"trigger"`
	Args    []string `json:"args"`
}

// Metadata describes who fired the trigger and with which words.
type Metadata struct {
	Username    string       `json:"username,omitempty"`
	UserCommand *UserCommand `json:"userCommand,omitempty"`
}

// Trigger is the host event that started the script.
type Trigger struct {
	Type     string   `json:"type"`
	Metadata Metadata `json:"metadata"`
}

// RunRequest is everything the host hands the script for one invocation.
type RunRequest struct {
	Parameters Params  `json:"parameters"`
	Trigger    Trigger `json:"trigger"`
}

// Args returns the chat command words, or nil when the trigger carries no chat command.
func (r *RunRequest) Args() []string {
	if r == nil || r.Trigger.Metadata.UserCommand == nil {
		return nil
	}
	return r.Trigger.Metadata.UserCommand.Args
}

// ScriptReturnObject is the result handed back to the host.
type ScriptReturnObject struct {
	Success      bool     `json:"success"`
	ErrorMessage string   `json:"errorMessage,omitempty"`
	Effects      []Effect `json:"effects"`
}

// Manifest describes the script to the host.
type Manifest struct {
	Name           string `json:"name" yaml:"name"`
	Description    string `json:"description" yaml:"description"`
	Author         string `json:"author" yaml:"author"`
	Version        string `json:"version" yaml:"version"`
	FirebotVersion string `json:"firebotVersion" yaml:"firebotVersion"`
}

// Parameter is one entry of the script's parameter schema.
type Parameter struct {
	Name                 string   `json:"-" yaml:"name"`
	Type                 string   `json:"type" yaml:"type"`
	Options              []string `json:"options,omitempty" yaml:"options,omitempty"`
	Default              string   `json:"default,omitempty" yaml:"default,omitempty"`
	Description          string   `json:"description" yaml:"description"`
	SecondaryDescription string   `json:"secondaryDescription" yaml:"secondaryDescription"`
}
