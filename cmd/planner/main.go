// Planner is the device-side companion of the trip planner.
//
// It drives trip creation, opens invite links, confirms guests, and remembers
// which trip this device is tracking. The serve command exposes the same
// operations as a local JSON API for the app's presentation layer.
//
// Usage:
//
//	planner [command] [flags]
//
// Configuration comes from the environment (and an optional .env file);
// PLANNER_API_URL is required.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "planner",
		Short: "Plan trips and confirm invitations",
		Long: `A client for the trip planner API.

Create a trip and invite guests, open planner:// links, confirm attendance,
and keep track of the trip this device is bound to.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(
		newServeCmd(),
		newCreateCmd(),
		newOpenCmd(),
		newConfirmCmd(),
		newBindCmd(),
		newCurrentCmd(),
		newRemoveCmd(),
		newMigrateCmd(),
	)
	return root
}
