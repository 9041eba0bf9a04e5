package cli

import (
	"fmt"
	"strings"

	"github.com/diwise/eventity/pkg/eventity/types"
	"github.com/spf13/cobra"
)

func NewPatchCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "patch <entity-id> <field>=<value>...",
		Short: "Append one batch of patches to an entity",
		Long: `Append one batch of patches to an entity. Every patch in the batch gets
the same timestamp. Values are parsed as JSON; anything that is not valid
JSON is sent as a string.

Example:
  eventity-cli patch car speed=42 name=volvo 'tags=["a","b"]'`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			patches, err := parsePatches(args[1:])
			if err != nil {
				return err
			}

			err = opts.client().Patch(cmd.Context(), args[0], patches)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "appended %d patch(es) to %s\n", len(patches), args[0])
			return nil
		},
	}
}

func parsePatches(args []string) ([]types.Patch, error) {
	patches := make([]types.Patch, 0, len(args))

	for _, arg := range args {
		field, raw, ok := strings.Cut(arg, "=")
		if !ok || field == "" {
			return nil, fmt.Errorf("invalid patch %q: expected <field>=<value>", arg)
		}

		value := types.Value{}
		if err := value.UnmarshalJSON([]byte(raw)); err != nil {
			value = types.String(raw)
		}

		patches = append(patches, types.Patch{Field: field, Value: value})
	}

	return patches, nil
}
