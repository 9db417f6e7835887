package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wsd/internal/config"
	"wsd/internal/scan"
	"wsd/internal/store"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: verify the exports root, store, and show stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			fmt.Println("=== Exports ===")
			checkDir("Root", cfg.ExportsRoot)
			files, err := scan.Exports(cfg.ExportsRoot)
			if err != nil {
				fmt.Printf("  scan error: %v\n", err)
			} else {
				fmt.Printf("  .txt exports: %d\n", len(files))
				if len(files) > 0 {
					fmt.Printf("  Newest: %s (%s)\n", files[0].Path, files[0].Mtime.Format("2006-01-02 15:04"))
				}
			}

			fmt.Println("\n=== Store ===")
			fmt.Printf("  Path: %s\n", cfg.DBPath)
			if _, err := os.Stat(cfg.DBPath); os.IsNotExist(err) {
				fmt.Println("  Status: NOT FOUND (created on first diff)")
				return nil
			}

			st, err := store.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			checkpoints := st.LoadCheckpoints()
			groups := st.LoadGroups()
			fmt.Printf("  Checkpoints: %d\n", len(checkpoints))
			fmt.Printf("  Groups:      %d\n", len(groups))

			orphans := 0
			for name := range checkpoints {
				if _, ok := store.FindGroup(groups, name); !ok {
					orphans++
				}
			}
			if orphans > 0 {
				fmt.Printf("  Status: %d checkpoints without a group entry\n", orphans)
			} else {
				fmt.Println("  Status: OK")
			}

			if info, err := os.Stat(cfg.DBPath); err == nil {
				sizeKB := float64(info.Size()) / 1024
				fmt.Printf("\n=== Store Size: %.1f KB ===\n", sizeKB)
			}

			return nil
		},
	}
}

func checkDir(name, path string) {
	if info, err := os.Stat(path); err != nil {
		fmt.Printf("  %s: %s (NOT FOUND)\n", name, path)
	} else if !info.IsDir() {
		fmt.Printf("  %s: %s (NOT A DIRECTORY)\n", name, path)
	} else {
		fmt.Printf("  %s: %s (OK)\n", name, path)
	}
}
