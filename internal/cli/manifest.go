package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"streamtasks/internal/exitcode"
	"streamtasks/internal/firebot"
	"streamtasks/internal/script"
)

type manifestDoc struct {
	Manifest   firebot.Manifest    `json:"manifest" yaml:"manifest"`
	Parameters []firebot.Parameter `json:"-" yaml:"parameters"`

	// The host keys parameters by name.
	ParameterMap map[string]firebot.Parameter `json:"parameters" yaml:"-"`
}

func newManifestCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Print the script manifest and default parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc := manifestDoc{
				Manifest:     script.Manifest(),
				Parameters:   script.DefaultParameters(nil),
				ParameterMap: script.ParameterMap(nil),
			}

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(doc)
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(doc); err != nil {
					return err
				}
				return enc.Close()
			default:
				return withCode(exitcode.UserError, fmt.Errorf("unknown format: %s", format))
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Output format: json or yaml")
	return cmd
}
