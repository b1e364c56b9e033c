package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"streamtasks/internal/exitcode"
	"streamtasks/internal/host"
	"streamtasks/internal/output"
	"streamtasks/internal/tasklist"
)

func newListCmd(a *app) *cobra.Command {
	var file string
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the task list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if file == "" {
				file = cfg.Filepath
			}

			tasks := tasklist.Tasks{}
			data, err := host.FileSystem{}.ReadDocument(file)
			switch {
			case err == nil:
				tasks, err = tasklist.Parse(data)
				if err != nil {
					return withCode(exitcode.IOError, fmt.Errorf("%s: %w", file, err))
				}
			case errors.Is(err, fs.ErrNotExist):
				// no tasks yet
			default:
				return withCode(exitcode.IOError, err)
			}

			out := cmd.OutOrStdout()
			switch format {
			case "text":
				output.Terminal(out, tasks)
			case "html":
				if err := output.HTML(out, tasks); err != nil {
					return withCode(exitcode.IOError, err)
				}
				fmt.Fprintln(out)
			case "json":
				fmt.Fprintln(out, tasklist.Encode(tasks))
			default:
				return withCode(exitcode.UserError, fmt.Errorf("unknown format: %s", format))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Task list file (default from config)")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, html or json")
	return cmd
}
