package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wsd/internal/config"
	"wsd/internal/export"
	"wsd/internal/store"
)

const (
	gColorReset = "\033[0m"
	gColorBlue  = "\033[1;34m"
	gColorDim   = "\033[2m"
)

func groupsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "List known groups and their last sync",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			groups := st.LoadGroups()
			if len(groups) == 0 {
				fmt.Println("No groups yet. Run 'wsd sync --group <name>' to create one.")
				return nil
			}

			for _, g := range groups {
				synced := "never synced"
				if g.LastSyncedAt != nil {
					synced = export.FormatDateTimeLocal(*g.LastSyncedAt)
				}
				fmt.Printf("%s%s%s  %s\n", gColorBlue, g.Name, gColorReset, synced)
				if g.LastSyncedMessagePreview != "" {
					fmt.Printf("  %s%s%s\n", gColorDim, g.LastSyncedMessagePreview, gColorReset)
				}
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Register a group without syncing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			g, err := st.AddGroup(args[0])
			if err != nil {
				return fmt.Errorf("add group: %w", err)
			}
			fmt.Printf("%s (%s)\n", g.Name, g.ID)
			return nil
		},
	})

	return cmd
}

func openStore() (*store.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}
