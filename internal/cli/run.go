package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"streamtasks/internal/exitcode"
	"streamtasks/internal/firebot"
	"streamtasks/internal/host"
	"streamtasks/internal/script"
)

type runOptions struct {
	user    string
	file    string
	as      string
	trigger string
	request string
	dryRun  bool
}

func newRunCmd(a *app) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run <command> [words...]",
		Short: "Run a task command as the host would",
		Long: `Run a task command as the host would and carry out its effects.

The words are the chat command: the first one is the command keyword, e.g.
  streamtasks run --user alice add buy milk
  streamtasks run clearUser @bob

With --request, a JSON run request is read from the given file ("-" for stdin) instead.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.request == "" && len(args) == 0 {
				return fmt.Errorf("command required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, a, &opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.user, "user", "u", "", "Username of the chat message sender")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Task list file (default from config)")
	cmd.Flags().StringVar(&opts.as, "as", "", "Chat account for messages (Streamer or Bot)")
	cmd.Flags().StringVar(&opts.trigger, "trigger", "!task", "Chat command trigger")
	cmd.Flags().StringVar(&opts.request, "request", "", `Read a JSON run request from a file ("-" for stdin)`)
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the effects instead of carrying them out")
	return cmd
}

func runRun(cmd *cobra.Command, a *app, opts *runOptions, args []string) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	var req firebot.RunRequest
	if opts.request != "" {
		if err := readRequest(a, opts.request, &req); err != nil {
			return withCode(exitcode.UserError, err)
		}
	} else {
		req = buildRequest(opts, args)
	}

	p := &req.Parameters
	if opts.file != "" {
		p.Filepath = opts.file
	}
	if opts.as != "" {
		p.SendMessagesAs = opts.as
	}
	if p.Filepath == "" {
		p.Filepath = cfg.Filepath
	}
	if p.SendMessagesAs == "" {
		p.SendMessagesAs = cfg.SendMessagesAs
	}
	if p.CommandHelpText == "" {
		p.CommandHelpText = cfg.CommandHelpText
	}

	fs := host.FileSystem{}
	s := script.New(nil, script.Modules{FS: fs, Logger: a.logger(cfg)})
	result := s.Run(&req)

	out := cmd.OutOrStdout()
	if opts.dryRun {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	if err := host.NewExecutor(fs, out).Execute(result.Effects); err != nil {
		return withCode(exitcode.IOError, err)
	}
	return nil
}

// buildRequest turns the chat words into a run request. args[0] is the command keyword.
func buildRequest(opts *runOptions, args []string) firebot.RunRequest {
	return firebot.RunRequest{
		Parameters: firebot.Params{Command: args[0]},
		Trigger: firebot.Trigger{
			Type: "command",
			Metadata: firebot.Metadata{
				Username: opts.user,
				UserCommand: &firebot.UserCommand{
					Trigger: opts.trigger,
					Args:    args,
				},
			},
		},
	}
}

func readRequest(a *app, path string, req *firebot.RunRequest) error {
	var r io.Reader
	if path == "-" {
		r = a.env.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open request: %w", err)
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(req); err != nil {
		return fmt.Errorf("invalid run request: %w", err)
	}
	if req.Parameters.Command == "" {
		return fmt.Errorf("invalid run request: parameters.command is required")
	}
	return nil
}
