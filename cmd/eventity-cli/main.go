package main

import (
	"context"
	"fmt"
	"os"

	"github.com/diwise/eventity/internal/pkg/presentation/cli"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
)

func main() {
	ctx := context.Background()

	serviceURL := env.GetVariableOrDefault(ctx, "EVENTITY_URL", cli.DefaultServiceURL)

	cmd := cli.NewRootCommand(serviceURL, cli.NewEventityClient)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err.Error())
		os.Exit(1)
	}
}
