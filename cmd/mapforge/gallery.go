package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samdwyer/mapforge/internal/level"
)

var (
	printGallery bool
	chunkSize    int
)

func init() {
	galleryCmd := &cobra.Command{
		Use:   "gallery",
		Short: "Show the wave function collapse patterns of a level",
		RunE:  runGallery,
	}
	galleryCmd.Flags().BoolVar(&printGallery, "print", false, "Print the pages as ASCII instead of opening the viewer")
	galleryCmd.Flags().IntVar(&chunkSize, "chunk", 8, "Pattern size in tiles (--print only)")

	rootCmd.AddCommand(galleryCmd)
}

func runGallery(cmd *cobra.Command, _ []string) error {
	if !printGallery {
		return runViewer(cmd, level.ViewGallery)
	}
	if chunkSize < 2 {
		return fmt.Errorf("chunk size must be at least 2, got %d", chunkSize)
	}

	res, err := (&level.Generator{Logger: log}).Generate(cmd.Context(), params())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	pages := res.Gallery(chunkSize)
	for i, p := range pages {
		fmt.Fprintf(out, "page %d/%d\n%s", i+1, len(pages), p.String())
	}
	return nil
}
