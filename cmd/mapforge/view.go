package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samdwyer/mapforge/internal/level"
	"github.com/samdwyer/mapforge/internal/ui"
)

var playHistory bool

func init() {
	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "Show a level in the terminal",
		Long: `Generate a level and open the interactive viewer.

Keys: tab switches between level, build history and pattern gallery;
arrows step through frames; space toggles playback; q quits.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode := level.ViewLevel
			if playHistory {
				mode = level.ViewHistory
			}
			return runViewer(cmd, mode)
		},
	}
	viewCmd.Flags().BoolVar(&playHistory, "history", false, "Start with build history playback")

	rootCmd.AddCommand(viewCmd)
}

func runViewer(cmd *cobra.Command, mode level.ViewMode) error {
	gen := &level.Generator{Logger: log, Snapshots: true}
	res, err := gen.Generate(cmd.Context(), params())
	if err != nil {
		return err
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	v := level.NewViewer(screen, res, mode)
	defer v.Close()
	return v.Run(cmd.Context())
}
