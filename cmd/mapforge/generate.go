package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/samdwyer/mapforge/internal/level"
)

var showStages bool

func init() {
	genCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a level and print it as ASCII",
		Long: `Generate one level and print the map, the spawn list and the map fingerprint.

Examples:
  mapforge generate --seed 42
  mapforge generate --recipe bsp --stages`,
		RunE: runGenerate,
	}
	genCmd.Flags().BoolVar(&showStages, "stages", false, "Print the stage names of the chain")

	rootCmd.AddCommand(genCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	gen := &level.Generator{Logger: log}
	res, err := gen.Generate(cmd.Context(), params())
	if err != nil {
		return err
	}
	printResult(cmd.OutOrStdout(), res)
	return nil
}

func printResult(w io.Writer, res *level.Result) {
	fmt.Fprintf(w, "recipe %s  seed %d  run %s\n", res.Recipe, res.Seed, res.RunID)
	if showStages {
		for i, s := range res.Stages {
			fmt.Fprintf(w, "  %2d %s\n", i, s)
		}
	}
	fmt.Fprint(w, res.Map.String())
	sx, sy := res.Start()
	fmt.Fprintf(w, "start (%d,%d)  fingerprint %016x\n", sx, sy, res.Map.Fingerprint())
	if res.Roster != nil {
		fmt.Fprintf(w, "spawns %d  %s\n", res.Roster.Len(), res.Roster.Summary())
		for _, e := range res.Roster.Entities() {
			if room := res.Map.RoomIndexAt(e.X, e.Y); room >= 0 {
				fmt.Fprintf(w, "  (%d,%d) %s room %d\n", e.X, e.Y, e.Key, room)
			} else {
				fmt.Fprintf(w, "  (%d,%d) %s\n", e.X, e.Y, e.Key)
			}
		}
	}
}
