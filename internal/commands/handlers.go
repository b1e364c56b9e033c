package commands

import (
	"streamtasks/internal/firebot"
	"streamtasks/internal/tasklist"
)

func init() {
	Register(Descriptor{Name: Main, Handler: ShowHelp})
	Register(Descriptor{Name: Add, Parser: CommandSender, Handler: AddTaskForSender})
	Register(Descriptor{Name: Edit, Parser: CommandSender, Handler: EditSenderTask})
	Register(Descriptor{Name: Done, Parser: CommandSender, Handler: MarkSenderTaskAsDone})
	Register(Descriptor{Name: Undo, Parser: CommandSender, Handler: MarkSenderTaskAsNotDone})
	Register(Descriptor{Name: Remove, Parser: CommandSender, Handler: RemoveSenderTask})
	Register(Descriptor{Name: ClearAll, Handler: RemoveAllTasks})
	Register(Descriptor{Name: ClearUser, Parser: ArgAsUser(1), Handler: RemoveUserTask})
}

// ShowHelp replies with the configured help text. It never writes the task list.
func ShowHelp(req *firebot.RunRequest, _ Args, _ *tasklist.Store) []firebot.Effect {
	if req.Parameters.CommandHelpText == "" {
		return []firebot.Effect{}
	}
	return []firebot.Effect{firebot.Chat(req.Parameters.CommandHelpText)}
}

// AddTaskForSender adds the sender's task.
func AddTaskForSender(req *firebot.RunRequest, args Args, store *tasklist.Store) []firebot.Effect {
	return store.AddTaskForUser(req.Parameters.Filepath, args.Sender, TaskText(req))
}

// EditSenderTask changes the text of the sender's task.
func EditSenderTask(req *firebot.RunRequest, args Args, store *tasklist.Store) []firebot.Effect {
	return store.EditUserTask(req.Parameters.Filepath, args.Sender, TaskText(req))
}

// MarkSenderTaskAsDone marks the sender's task as done.
func MarkSenderTaskAsDone(req *firebot.RunRequest, args Args, store *tasklist.Store) []firebot.Effect {
	return store.MarkUserTaskAsDone(req.Parameters.Filepath, args.Sender)
}

// MarkSenderTaskAsNotDone marks the sender's task as not done.
func MarkSenderTaskAsNotDone(req *firebot.RunRequest, args Args, store *tasklist.Store) []firebot.Effect {
	return store.MarkUserTaskAsNotDone(req.Parameters.Filepath, args.Sender)
}

// RemoveSenderTask removes the sender's task.
func RemoveSenderTask(req *firebot.RunRequest, args Args, store *tasklist.Store) []firebot.Effect {
	return store.RemoveUserTask(req.Parameters.Filepath, args.Sender)
}

// RemoveAllTasks removes every task.
func RemoveAllTasks(req *firebot.RunRequest, _ Args, store *tasklist.Store) []firebot.Effect {
	return store.RemoveAllTasks(req.Parameters.Filepath)
}

// RemoveUserTask removes the task of the user named in the chat command.
func RemoveUserTask(req *firebot.RunRequest, args Args, store *tasklist.Store) []firebot.Effect {
	return store.RemoveUserTask(req.Parameters.Filepath, args.User)
}
