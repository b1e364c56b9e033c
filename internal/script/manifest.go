package script

import (
	"streamtasks/internal/commands"
	"streamtasks/internal/firebot"
)

// Parameter names.
const (
	ParamCommand         = "command"
	ParamCommandHelpText = "commandHelpText"
	ParamFilepath        = "filepath"
	ParamSendMessagesAs  = "sendMessagesAs"
)

// DefaultHelpText is the default chat help text.
const DefaultHelpText = "Add your task item with `add`. Other sub-commands are: edit, done, undo, remove."

// Manifest describes the script to the host.
func Manifest() firebot.Manifest {
	return firebot.Manifest{
		Name:           "Local Task List",
		Description:    "Playing with task lists",
		Author:         "thefrankfreeman",
		Version:        "1.0",
		FirebotVersion: "5",
	}
}

// DefaultParameters returns the script's parameter schema in display order.
// The command options are the names in registry.
func DefaultParameters(registry *commands.Registry) []firebot.Parameter {
	if registry == nil {
		registry = commands.DefaultRegistry
	}
	return []firebot.Parameter{
		{
			Name:                 ParamCommand,
			Type:                 "enum",
			Options:              registry.Names(),
			Default:              commands.Add,
			Description:          "Task Action",
			SecondaryDescription: "Choose which task action to run",
		},
		{
			Name:                 ParamCommandHelpText,
			Type:                 "string",
			Default:              DefaultHelpText,
			Description:          "Chat help text",
			SecondaryDescription: "Write your own help text to display in chat, or use the default one.",
		},
		{
			Name:                 ParamFilepath,
			Type:                 "filepath",
			Description:          "Save File",
			SecondaryDescription: "Pick the save file that the task list will be saved to",
		},
		{
			Name:                 ParamSendMessagesAs,
			Type:                 "enum",
			Options:              []string{"Streamer", "Bot"},
			Default:              "Streamer",
			Description:          "Chat as",
			SecondaryDescription: "Choose from which account to send messages",
		},
	}
}

// ParameterMap returns the parameter schema keyed by name, the shape the host expects.
func ParameterMap(registry *commands.Registry) map[string]firebot.Parameter {
	params := DefaultParameters(registry)
	out := make(map[string]firebot.Parameter, len(params))
	for _, p := range params {
		out[p.Name] = p
	}
	return out
}
