package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/diwise/eventity/pkg/eventity/types"
	"github.com/spf13/cobra"
)

// ViewOptions holds flags for the view command.
type ViewOptions struct {
	*RootOptions
	From  int64
	To    int64
	Alias string
}

func NewViewCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ViewOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "view <entity-id> <field>:<projection>[:<separator>]...",
		Short: "Evaluate views over the field logs of an entity",
		Long: `Evaluate views over the field logs of an entity and print the results as
a JSON object keyed by field name, or by --alias when a single view is given.

Projections: Latest, Collect, Avg, Sum, Concat, All, Any, None.
Concat takes the separator after a second colon.

Example:
  eventity-cli view car speed:Avg name:Concat:, --from 1700000000000`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			views, err := parseViews(args[1:])
			if err != nil {
				return err
			}

			if opts.Alias != "" {
				if len(views) != 1 {
					return fmt.Errorf("--alias can only be used with a single view")
				}
				views[0].Alias = &opts.Alias
			}

			fromSet, toSet := cmd.Flags().Changed("from"), cmd.Flags().Changed("to")
			if fromSet || toSet {
				r := &types.Range{From: opts.From, To: opts.To}
				for i := range views {
					views[i].Range = r
				}
			}

			result, err := opts.client().Query(cmd.Context(), args[0], views)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().Int64Var(&opts.From, "from", 0, "earliest timestamp to include, in unix milliseconds")
	cmd.Flags().Int64Var(&opts.To, "to", maxTimestamp, "latest timestamp to include, in unix milliseconds")
	cmd.Flags().StringVar(&opts.Alias, "alias", "", "label for the result of a single view")

	return cmd
}

const maxTimestamp int64 = 1<<63 - 1

func parseViews(args []string) ([]types.View, error) {
	views := make([]types.View, 0, len(args))

	for _, arg := range args {
		parts := strings.SplitN(arg, ":", 3)
		if len(parts) < 2 || parts[0] == "" {
			return nil, fmt.Errorf("invalid view %q: expected <field>:<projection>", arg)
		}

		kind, err := types.ParseProjectionKind(parts[1])
		if err != nil {
			return nil, err
		}

		projection := types.NewProjection(kind)
		if kind == types.Concat {
			if len(parts) != 3 {
				return nil, fmt.Errorf("invalid view %q: Concat requires a separator", arg)
			}
			projection = types.NewConcat(parts[2])
		} else if len(parts) == 3 {
			return nil, fmt.Errorf("invalid view %q: only Concat takes a separator", arg)
		}

		views = append(views, types.View{Field: parts[0], Projection: projection})
	}

	return views, nil
}
