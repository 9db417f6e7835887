package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"wsd/internal/config"
	"wsd/internal/export"
	"wsd/internal/render"
	"wsd/internal/scan"
	"wsd/internal/store"
	"wsd/internal/tui"
)

func diffCmd() *cobra.Command {
	var groupFlag, override, since string
	var copyNew, attachmentsOnly, plain bool

	cmd := &cobra.Command{
		Use:   "diff [export.txt]",
		Short: "Split a chat export into new and already-synced messages",
		Long: `Parse a WhatsApp chat export and partition it around the last synced
checkpoint. Without an argument the newest .txt under the exports root
is used.

The cutoff is resolved in order: --override, --since, then the stored
checkpoint for the matched group. Invalid values fall through to the
next source with a warning.`,
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

			group, err := matchGroup(st, groupFlag, file.Path)
			if err != nil {
				return err
			}

			cut := export.ResolveCutoff(override, since, storedCheckpoint(st, group))

			// Interactive when stdout is a terminal; plain text for pipes.
			if term.IsTerminal(int(os.Stdout.Fd())) && !plain && !copyNew && !attachmentsOnly {
				return tui.Run(tui.Session{
					Cfg:      cfg,
					Store:    st,
					File:     file,
					Messages: msgs,
					Group:    group,
					Override: override,
				})
			}

			report := export.BuildReport(msgs, cut.Ptr())
			for _, w := range cut.Warnings {
				fmt.Fprintln(os.Stderr, render.Warning(w))
			}

			out := export.FormatMessages(report.New)
			if attachmentsOnly {
				out = export.FormatFilenames(report.New)
			}
			if out != "" {
				fmt.Println(out)
			}

			if copyNew && out != "" {
				if err := clipboard.WriteAll(out); err != nil {
					fmt.Fprintln(os.Stderr, render.Warning("clipboard unavailable: "+err.Error()))
				} else {
					fmt.Fprintln(os.Stderr, "Copied to clipboard.")
				}
			}

			fmt.Fprintln(os.Stderr, render.Summary(report, cut))
			return nil
		},
	}

	cmd.Flags().StringVar(&groupFlag, "group", "", "Group to diff against (id or exact name)")
	cmd.Flags().StringVar(&override, "override", "", "Cutoff override, native ([25/02/26, 7:03:37 PM]) or 2026-02-25T19:03")
	cmd.Flags().StringVar(&since, "since", "", "Lower-priority cutoff (YYYY-MM-DDTHH:MM)")
	cmd.Flags().BoolVar(&copyNew, "copy", false, "Copy the output to the clipboard")
	cmd.Flags().BoolVar(&attachmentsOnly, "attachments", false, "Print attachment filenames instead of messages")
	cmd.Flags().BoolVar(&plain, "plain", false, "Plain output even on a terminal")

	return cmd
}

// resolveExport picks the export file: an explicit argument wins,
// otherwise the newest .txt under the exports root.
func resolveExport(cfg *config.Config, args []string) (scan.ExportFile, error) {
	if len(args) == 1 {
		info, err := os.Stat(args[0])
		if err != nil {
			return scan.ExportFile{}, fmt.Errorf("export not found: %s", args[0])
		}
		return scan.ExportFile{Path: args[0], Mtime: info.ModTime(), Size: info.Size()}, nil
	}
	return scan.Newest(cfg.ExportsRoot)
}

// matchGroup resolves --group explicitly, or suggests one from the export
// filename. A nil group means nothing matched.
func matchGroup(st *store.Store, flag, path string) (*store.Group, error) {
	groups := st.LoadGroups()
	if flag != "" {
		g, ok := store.FindGroup(groups, flag)
		if !ok {
			return nil, fmt.Errorf("unknown group: %s", flag)
		}
		return &g, nil
	}
	if g, ok := store.SuggestGroup(filepath.Base(path), groups); ok {
		return &g, nil
	}
	return nil, nil
}

func storedCheckpoint(st *store.Store, group *store.Group) *time.Time {
	if group == nil {
		return nil
	}
	if t, ok := store.CheckpointTime(st.LoadCheckpoints(), group.Name); ok {
		return &t
	}
	return nil
}
