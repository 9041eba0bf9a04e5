// Package cli holds the commands of the eventity command line client.
package cli

import (
	"github.com/diwise/eventity/pkg/eventity/client"
	"github.com/spf13/cobra"
)

const DefaultServiceURL string = "http://localhost:8080"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ServiceURL string
	Debug      bool

	newClient func(url string, debug bool) client.EventityClient
}

func (o *RootOptions) client() client.EventityClient {
	return o.newClient(o.ServiceURL, o.Debug)
}

// NewRootCommand creates the root command. newClient is used to connect to
// the service when a subcommand runs.
func NewRootCommand(serviceURL string, newClient func(url string, debug bool) client.EventityClient) *cobra.Command {
	opts := &RootOptions{newClient: newClient}

	cmd := &cobra.Command{
		Use:   "eventity-cli",
		Short: "Append patches to and query views of entities in an eventity service",
	}

	cmd.PersistentFlags().StringVar(&opts.ServiceURL, "url", serviceURL, "base url of the eventity service")
	cmd.PersistentFlags().BoolVar(&opts.Debug, "debug", false, "log failed requests")

	cmd.AddCommand(NewPatchCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewViewCommand(opts))

	return cmd
}

func NewEventityClient(url string, debug bool) client.EventityClient {
	enabled := "false"
	if debug {
		enabled = "true"
	}
	return client.NewEventityClient(url, client.Debug(enabled))
}
