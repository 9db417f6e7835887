package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"wsd/internal/config"
	"wsd/internal/export"
	"wsd/internal/render"
	"wsd/internal/store"
)

func syncCmd() *cobra.Command {
	var groupFlag, override string

	cmd := &cobra.Command{
		Use:   "sync [export.txt]",
		Short: "Advance a group's checkpoint to the newest message in an export",
		Long: `Diff the export against the group's stored checkpoint and, if anything
is new, move the checkpoint to the newest message. The group is created
on first sync. Refuses to run when the diff is empty.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			file, err := resolveExport(cfg, args)
			if err != nil {
				return err
			}
			content, err := os.ReadFile(file.Path)
			if err != nil {
				return fmt.Errorf("read export: %w", err)
			}
			msgs := export.Parse(string(content))

			st, err := store.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			var group store.Group
			if groupFlag != "" {
				group, err = st.AddGroup(groupFlag)
				if err != nil {
					return fmt.Errorf("add group: %w", err)
				}
			} else {
				suggested, ok := store.SuggestGroup(filepath.Base(file.Path), st.LoadGroups())
				if !ok {
					return fmt.Errorf("no group matched %s; pass --group", file.Path)
				}
				group = suggested
			}

			cut := export.ResolveCutoff(override, "", storedCheckpoint(st, &group))
			for _, w := range cut.Warnings {
				fmt.Fprintln(os.Stderr, render.Warning(w))
			}

			report := export.BuildReport(msgs, cut.Ptr())
			if report.Summary.NewCount == 0 {
				return fmt.Errorf("nothing new to sync for %q", group.Name)
			}

			last := report.New[len(report.New)-1]
			if err := st.SetCheckpoint(group.Name, last.Timestamp); err != nil {
				return fmt.Errorf("save checkpoint: %w", err)
			}
			preview := export.Preview(last, cfg.PreviewLength)
			if err := st.UpdateGroupSync(group.ID, last.Timestamp, preview); err != nil {
				return fmt.Errorf("update group: %w", err)
			}

			fmt.Printf("Synced %q: %d messages through %s\n",
				group.Name, report.Summary.NewCount, export.FormatDateTimeLocal(last.Timestamp))
			return nil
		},
	}

	cmd.Flags().StringVar(&groupFlag, "group", "", "Group name (created if missing)")
	cmd.Flags().StringVar(&override, "override", "", "Cutoff override for the diff")

	return cmd
}
