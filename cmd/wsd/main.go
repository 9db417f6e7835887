package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "wsd",
		Short:   "WhatsApp Sync Diff - split chat exports into new and already-synced messages",
		Version: version,
	}

	rootCmd.AddCommand(diffCmd())
	rootCmd.AddCommand(syncCmd())
	rootCmd.AddCommand(groupsCmd())
	rootCmd.AddCommand(doctorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
